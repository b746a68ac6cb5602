package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tinytelemetry/pantry/internal/cache"
	"github.com/tinytelemetry/pantry/internal/duckdb"
	"github.com/tinytelemetry/pantry/internal/httpserver"
	"github.com/tinytelemetry/pantry/internal/logging"
	"github.com/tinytelemetry/pantry/internal/model"
	"github.com/tinytelemetry/pantry/internal/seed"

	"github.com/charmbracelet/lipgloss"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// runServer serves the ingredient collection until SIGINT or SIGTERM.
func runServer(cfg appConfig) error {
	logger, cleanupLogger, err := logging.New(cfg.logging())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer cleanupLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize DuckDB store
	dbStore, err := duckdb.NewStore(ctx, cfg.DBPath, logger, cfg.QueryTimeout)
	if err != nil {
		return fmt.Errorf("failed to initialize DuckDB: %w", err)
	}
	defer dbStore.Close()

	var store model.IngredientStore = dbStore

	// Cache filter results in Redis when configured.
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, cache calls will fall through", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		store = cache.New(store, rdb, cfg.CacheTTL, logger)
	}

	seeded, err := seedStore(ctx, store, cfg.SeedFile)
	if err != nil {
		return err
	}
	if seeded > 0 {
		logger.Info("seeded ingredients", zap.Int("count", seeded), zap.String("file", cfg.SeedFile))
	}

	apiServer := httpserver.NewServer(httpserver.Config{
		Addr:       cfg.APIAddr,
		Collection: cfg.Collection,
		RateLimit:  cfg.RateLimit,
		RateBurst:  cfg.RateBurst,
	}, store, logger)
	if err := apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	printStartupBanner(cfg, apiServer.Addr(), seeded)

	// Use errgroup for concurrent goroutine lifecycle management.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case sig := <-sigCh:
			fmt.Println("\nShutting down gracefully...")
			logger.Info("shutdown requested", zap.String("signal", sig.String()))
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		if err := apiServer.Stop(); err != nil {
			return fmt.Errorf("stopping API server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		return err
	}
	return nil
}

// seedStore loads path into an empty store. An empty path seeds nothing.
func seedStore(ctx context.Context, store model.IngredientStore, path string) (int, error) {
	if path == "" {
		return 0, nil
	}
	items, err := seed.Load(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load seed file: %w", err)
	}
	n, err := seed.Apply(ctx, store, items, httpserver.NewID)
	if err != nil {
		return 0, fmt.Errorf("failed to seed store: %w", err)
	}
	return n, nil
}

func printStartupBanner(cfg appConfig, addr string, seeded int) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	row := func(on bool, label, value string) string {
		mark := dot
		if on {
			mark = check
		}
		return fmt.Sprintf("    %s  %-14s %s", mark, label, value)
	}

	separator := dim.Render("    ─────────────────────────────────")

	lines := []string{
		"",
		cyan.Bold(true).Render("    Pantry"),
		"    " + dim.Render("v"+version),
		"",
		separator,
		"",
		bold.Render("    Gateway"),
		"",
		row(true, "HTTP API", cyan.Render("http://"+addr+"/"+cfg.Collection+".json")),
		row(true, "Metrics", cyan.Render("http://"+addr+"/metrics")),
	}
	if cfg.RateLimit > 0 {
		lines = append(lines, row(true, "Rate limit", dim.Render(fmt.Sprintf("%g/s burst %d", cfg.RateLimit, cfg.RateBurst))))
	} else {
		lines = append(lines, row(false, "Rate limit", dim.Render("disabled")))
	}

	lines = append(lines, "", bold.Render("    Storage"), "",
		row(true, "Storage", dim.Render(shortenPath(cfg.DBPath))))
	if cfg.RedisAddr != "" {
		lines = append(lines, row(true, "Cache", dim.Render(cfg.RedisAddr)))
	} else {
		lines = append(lines, row(false, "Cache", dim.Render("disabled")))
	}
	if cfg.SeedFile != "" {
		lines = append(lines, row(true, "Seed", dim.Render(fmt.Sprintf("%s (%d added)", shortenPath(cfg.SeedFile), seeded))))
	}

	lines = append(lines, "", bold.Render("    Config"), "")
	if cfg.ConfigPath != "" {
		lines = append(lines, row(true, "Config File", dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, row(false, "Config File", dim.Render("default (no file)")))
	}
	if cfg.LogFile != "" {
		lines = append(lines, row(true, "Log File", dim.Render(shortenPath(cfg.LogFile))))
	}

	lines = append(lines, "", separator, "",
		"    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"), "")

	fmt.Println(strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
