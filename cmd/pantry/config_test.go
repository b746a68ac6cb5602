package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tinytelemetry/pantry/internal/duckdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.APIPort)
	assert.Equal(t, "127.0.0.1:3000", cfg.APIAddr)
	assert.Equal(t, "ingredients", cfg.Collection)
	assert.Equal(t, filepath.Join(home, ".local", "share", "pantry", "pantry.duckdb"), cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.QueryTimeout)
	assert.Zero(t, cfg.RateLimit)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(home, ".local", "state", "pantry", "pantry.log"), cfg.LogFile)
	assert.Empty(t, cfg.ConfigPath)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PANTRY_RATE_LIMIT", "5")

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
api-port: 8080
collection: groceries
db-path: ~/data/pantry.duckdb
redis-addr: localhost:6379
cache-ttl: 1m
`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.APIAddr)
	assert.Equal(t, "groceries", cfg.Collection)
	assert.Equal(t, filepath.Join(home, "data", "pantry.duckdb"), cfg.DBPath)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5.0, cfg.RateLimit)
	assert.Equal(t, path, cfg.ConfigPath)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cases := map[string]string{
		"port":       "PANTRY_API_PORT=70000",
		"rate":       "PANTRY_RATE_LIMIT=-1",
		"collection": "PANTRY_COLLECTION=a/b",
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			k, v, _ := strings.Cut(kv, "=")
			t.Setenv(k, v)
			_, err := loadConfig("")
			assert.Error(t, err)
		})
	}
}

func TestSeedStore(t *testing.T) {
	ctx := context.Background()
	store, err := duckdb.NewStore(ctx, "", nil)
	require.NoError(t, err)
	defer store.Close()

	n, err := seedStore(ctx, store, "")
	require.NoError(t, err)
	assert.Zero(t, n)

	path := filepath.Join(t.TempDir(), "seed.yml")
	require.NoError(t, os.WriteFile(path, []byte("ingredients:\n  - title: Apple\n    amount: 2\n  - title: Salt\n    amount: 1\n"), 0o644))

	n, err = seedStore(ctx, store, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = seedStore(ctx, store, path)
	require.NoError(t, err)
	assert.Zero(t, n, "a non-empty store is left alone")

	_, err = seedStore(ctx, store, filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
