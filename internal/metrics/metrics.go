// Package metrics declares the backend's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_http_requests_total",
			Help: "Total number of API requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pantry_http_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPRequestsThrottled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantry_http_requests_throttled_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	IngredientsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pantry_ingredients_stored",
			Help: "Number of ingredients currently stored",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_cache_lookups_total",
			Help: "List cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)
