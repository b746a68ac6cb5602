package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tinytelemetry/pantry/internal/auth"
	"github.com/tinytelemetry/pantry/internal/firebase"
	"github.com/tinytelemetry/pantry/internal/logging"
	"github.com/tinytelemetry/pantry/internal/search"
	"github.com/tinytelemetry/pantry/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var backendURL string
	var offline bool
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/pantry/config.yml)")
	flag.StringVar(&backendURL, "backend", "", "override backend base URL")
	flag.BoolVar(&offline, "offline", false, "keep ingredients in memory without a backend")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Pantry CLI - Ingredient Client\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	_ = godotenv.Load()

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	if offline {
		cfg.Offline = true
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig) error {
	// The terminal belongs to the UI, so logs only ever go to a file.
	logger := zap.NewNop()
	if cfg.LogFile != "" {
		fileLogger, cleanup, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer cleanup()
		logger = fileLogger
	}

	endpoint, err := firebase.NewEndpoint(cfg.BackendURL, cfg.Collection)
	if err != nil {
		return err
	}
	mode, err := search.ParseMode(cfg.SearchMode)
	if err != nil {
		return err
	}

	logger.Info("starting",
		zap.String("backend", endpoint.BaseURL),
		zap.String("collection", endpoint.Collection),
		zap.String("search_mode", string(mode)),
		zap.Bool("offline", cfg.Offline),
	)

	session := auth.Default()
	ingredients := tui.NewIngredientsPage(tui.IngredientsConfig{
		Endpoint:       endpoint,
		SearchDelay:    cfg.SearchDelay,
		SearchMode:     mode,
		RequestTimeout: cfg.RequestTimeout,
		Offline:        cfg.Offline,
		Logger:         logger,
	})
	app := tui.NewApp(session, ingredients, tui.NewAuthPage(session))

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
