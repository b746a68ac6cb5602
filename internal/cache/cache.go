// Package cache puts a Redis read-through cache in front of an ingredient store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tinytelemetry/pantry/internal/metrics"
	"github.com/tinytelemetry/pantry/internal/model"
	"go.uber.org/zap"
)

const defaultPrefix = "pantry:"

// Store caches list results per title filter. Every write bumps a
// generation counter, so cached lists from before the write are never read
// again and simply expire. If a bump fails the cache is bypassed until a
// later bump succeeds.
type Store struct {
	next   model.IngredientStore
	rdb    redis.UniversalClient
	ttl    time.Duration
	prefix string
	logger *zap.Logger

	stale atomic.Bool
}

// New wraps next. A ttl of zero keeps entries until the next write.
func New(next model.IngredientStore, rdb redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		prefix: defaultPrefix,
		logger: logger,
	}
}

func (s *Store) genKey() string { return s.prefix + "gen" }

func (s *Store) listKey(gen int64, title string) string {
	return fmt.Sprintf("%slist:%d:%s", s.prefix, gen, title)
}

func (s *Store) generation(ctx context.Context) (int64, error) {
	gen, err := s.rdb.Get(ctx, s.genKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// ListIngredients serves from Redis when possible. Redis failures are
// logged and the call falls through to the wrapped store.
func (s *Store) ListIngredients(ctx context.Context, title string) ([]model.Ingredient, error) {
	if s.stale.Load() && !s.invalidate(ctx) {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return s.next.ListIngredients(ctx, title)
	}

	gen, err := s.generation(ctx)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("cache generation lookup failed", zap.Error(err))
		return s.next.ListIngredients(ctx, title)
	}

	key := s.listKey(gen, title)
	data, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var list []model.Ingredient
		if jerr := json.Unmarshal(data, &list); jerr == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return list, nil
		}
		metrics.CacheLookups.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	list, err := s.next.ListIngredients(ctx, title)
	if err != nil {
		return nil, err
	}

	if encoded, jerr := json.Marshal(list); jerr == nil {
		if serr := s.rdb.Set(ctx, key, encoded, s.ttl).Err(); serr != nil {
			s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(serr))
		}
	}
	return list, nil
}

// CountIngredients is not cached.
func (s *Store) CountIngredients(ctx context.Context) (int64, error) {
	return s.next.CountIngredients(ctx)
}

// CreateIngredient writes through and invalidates cached lists.
func (s *Store) CreateIngredient(ctx context.Context, id string, in model.NewIngredient) error {
	if err := s.next.CreateIngredient(ctx, id, in); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// DeleteIngredient writes through and invalidates cached lists.
func (s *Store) DeleteIngredient(ctx context.Context, id string) error {
	if err := s.next.DeleteIngredient(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// invalidate bumps the generation and reports whether it succeeded.
func (s *Store) invalidate(ctx context.Context) bool {
	if err := s.rdb.Incr(ctx, s.genKey()).Err(); err != nil {
		s.stale.Store(true)
		s.logger.Warn("cache invalidation failed", zap.Error(err))
		return false
	}
	s.stale.Store(false)
	return true
}

var _ model.IngredientStore = (*Store)(nil)
