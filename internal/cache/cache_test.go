package cache

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinytelemetry/pantry/internal/model"
	"go.uber.org/zap/zaptest"
)

type countingStore struct {
	items     map[string]model.NewIngredient
	listCalls int
}

func newCountingStore() *countingStore {
	return &countingStore{items: map[string]model.NewIngredient{}}
}

func (s *countingStore) ListIngredients(_ context.Context, title string) ([]model.Ingredient, error) {
	s.listCalls++
	list := []model.Ingredient{}
	for id, in := range s.items {
		if title == "" || in.Title == title {
			list = append(list, in.WithID(id))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *countingStore) CountIngredients(context.Context) (int64, error) {
	return int64(len(s.items)), nil
}

func (s *countingStore) CreateIngredient(_ context.Context, id string, in model.NewIngredient) error {
	s.items[id] = in
	return nil
}

func (s *countingStore) DeleteIngredient(_ context.Context, id string) error {
	delete(s.items, id)
	return nil
}

func newTestCache(t *testing.T) (*Store, *countingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	backing := newCountingStore()
	return New(backing, rdb, time.Minute, zaptest.NewLogger(t)), backing, mr
}

func TestListIsCached(t *testing.T) {
	ctx := context.Background()
	c, backing, _ := newTestCache(t)
	require.NoError(t, backing.CreateIngredient(ctx, "a", model.NewIngredient{Title: "Salt", Amount: 1}))

	first, err := c.ListIngredients(ctx, "")
	require.NoError(t, err)
	second, err := c.ListIngredients(ctx, "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, backing.listCalls)
}

func TestFiltersAreCachedSeparately(t *testing.T) {
	ctx := context.Background()
	c, backing, _ := newTestCache(t)
	require.NoError(t, backing.CreateIngredient(ctx, "a", model.NewIngredient{Title: "Salt", Amount: 1}))
	require.NoError(t, backing.CreateIngredient(ctx, "b", model.NewIngredient{Title: "Pepper", Amount: 1}))

	salt, err := c.ListIngredients(ctx, "Salt")
	require.NoError(t, err)
	all, err := c.ListIngredients(ctx, "")
	require.NoError(t, err)

	assert.Len(t, salt, 1)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, backing.listCalls)
}

func TestWritesInvalidate(t *testing.T) {
	ctx := context.Background()
	c, backing, _ := newTestCache(t)

	_, err := c.ListIngredients(ctx, "")
	require.NoError(t, err)

	require.NoError(t, c.CreateIngredient(ctx, "a", model.NewIngredient{Title: "Salt", Amount: 1}))
	list, err := c.ListIngredients(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []model.Ingredient{{ID: "a", Title: "Salt", Amount: 1}}, list)

	require.NoError(t, c.DeleteIngredient(ctx, "a"))
	list, err = c.ListIngredients(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.Equal(t, 3, backing.listCalls)
}

func TestRedisDownFallsThrough(t *testing.T) {
	ctx := context.Background()
	c, backing, mr := newTestCache(t)
	require.NoError(t, backing.CreateIngredient(ctx, "a", model.NewIngredient{Title: "Salt", Amount: 1}))
	mr.SetError("LOADING redis is loading")

	list, err := c.ListIngredients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, c.CreateIngredient(ctx, "b", model.NewIngredient{Title: "Pepper", Amount: 2}))
	n, err := c.CountIngredients(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestFailedInvalidationBypassesCacheUntilRecovered(t *testing.T) {
	ctx := context.Background()
	c, backing, mr := newTestCache(t)

	list, err := c.ListIngredients(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	mr.SetError("LOADING redis is loading")
	require.NoError(t, c.CreateIngredient(ctx, "a", model.NewIngredient{Title: "Salt", Amount: 1}))
	mr.SetError("")

	list, err = c.ListIngredients(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Salt", list[0].Title)

	calls := backing.listCalls
	_, err = c.ListIngredients(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, calls, backing.listCalls, "cache serves again once the generation is bumped")
}
