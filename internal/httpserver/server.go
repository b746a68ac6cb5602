// Package httpserver serves an ingredient collection over a Firebase
// Realtime Database compatible REST surface.
package httpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tinytelemetry/pantry/internal/firebase"
	"github.com/tinytelemetry/pantry/internal/metrics"
	"github.com/tinytelemetry/pantry/internal/model"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds server options. Zero values select defaults.
type Config struct {
	Addr       string
	Collection string
	// RateLimit is the sustained requests per second; zero disables limiting.
	RateLimit float64
	RateBurst int
}

// Server provides the REST API over an ingredient store.
type Server struct {
	addr       string
	collection string
	store      model.IngredientStore
	logger     *zap.Logger
	limiter    *rate.Limiter
	newID      func() string
	server     *http.Server
	ctx        context.Context
	cancel     context.CancelFunc
	startTime  time.Time
}

// NewServer creates a new API server.
func NewServer(cfg Config, store model.IngredientStore, logger *zap.Logger) *Server {
	addr := cfg.Addr
	if addr == "" {
		addr = fmt.Sprintf("127.0.0.1:%d", model.DefaultAPIPort)
	}
	collection := cfg.Collection
	if collection == "" {
		collection = model.DefaultCollection
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = int(cfg.RateLimit) + 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:       addr,
		collection: collection,
		store:      store,
		logger:     logger,
		limiter:    limiter,
		newID:      NewID,
		ctx:        ctx,
		cancel:     cancel,
		startTime:  time.Now(),
	}
}

// NewID returns a time-ordered id, so listing by id lists in creation order.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Handler builds the gin engine with every route and middleware installed.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.observe())
	if s.limiter != nil {
		r.Use(s.rateLimit())
	}

	r.GET("/api/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	listPath := "/" + s.collection + ".json"
	r.GET(listPath, s.handleList)
	r.POST(listPath, s.handleCreate)
	r.DELETE("/"+s.collection+"/:file", s.handleDelete)

	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.addr = listener.Addr().String()
	s.startTime = time.Now()
	s.refreshStoredGauge(s.ctx)

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("api server stopped", zap.Error(err))
		}
	}()
	s.logger.Info("api server listening", zap.String("addr", s.addr))
	return nil
}

// Addr returns the listen address; after Start it is the bound address.
func (s *Server) Addr() string {
	return s.addr
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	count, err := s.store.CountIngredients(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read health metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"uptime":      time.Since(s.startTime).String(),
		"ingredients": count,
	})
}

func (s *Server) handleList(c *gin.Context) {
	orderBy, hasOrderBy := c.GetQuery("orderBy")
	equalTo, hasEqualTo := c.GetQuery("equalTo")

	var title string
	if hasEqualTo && !hasOrderBy {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderBy must be defined when other query parameters are defined"})
		return
	}
	if hasOrderBy {
		if key := firebase.ParseQuotedParam(orderBy); key != "title" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Index not defined, add \".indexOn\": \"%s\", for path \"/%s\", to the rules", key, s.collection),
			})
			return
		}
		if hasEqualTo {
			title = firebase.ParseQuotedParam(equalTo)
		}
	}

	list, err := s.store.ListIngredients(c.Request.Context(), title)
	if err != nil {
		s.logger.Error("list ingredients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ingredients"})
		return
	}

	c.JSON(http.StatusOK, firebase.EncodeList(list))
}

func (s *Server) handleCreate(c *gin.Context) {
	var in model.NewIngredient
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if err := in.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := s.newID()
	if err := s.store.CreateIngredient(c.Request.Context(), id, in); err != nil {
		s.logger.Error("create ingredient", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store ingredient"})
		return
	}
	s.refreshStoredGauge(c.Request.Context())

	c.JSON(http.StatusOK, firebase.Created{Name: id})
}

func (s *Server) handleDelete(c *gin.Context) {
	file := c.Param("file")
	id, ok := strings.CutSuffix(file, ".json")
	if !ok || id == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if err := s.store.DeleteIngredient(c.Request.Context(), id); err != nil {
		s.logger.Error("delete ingredient", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete ingredient"})
		return
	}
	s.refreshStoredGauge(c.Request.Context())

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte("null"))
}

func (s *Server) refreshStoredGauge(ctx context.Context) {
	if n, err := s.store.CountIngredients(ctx); err == nil {
		metrics.IngredientsStored.Set(float64(n))
	}
}
