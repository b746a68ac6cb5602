package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tinytelemetry/pantry/internal/logging"
	"github.com/tinytelemetry/pantry/internal/model"
	"github.com/tinytelemetry/pantry/internal/search"

	"github.com/spf13/viper"
)

const (
	defaultCollection  = model.DefaultCollection
	defaultSearchDelay = model.DefaultSearchDelay
	defaultSearchMode  = model.DefaultSearchMode
	defaultLogLevel    = model.DefaultLogLevel
)

// cliConfig holds only TUI-relevant configuration.
type cliConfig struct {
	BackendURL     string        `mapstructure:"backend-url"`
	Collection     string        `mapstructure:"collection"`
	SearchDelay    time.Duration `mapstructure:"search-delay"`
	SearchMode     string        `mapstructure:"search-mode"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	Offline        bool          `mapstructure:"offline"`
	LogLevel       string        `mapstructure:"log-level"`
	LogFile        string        `mapstructure:"log-file"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("PANTRY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("backend-url", "http://"+net.JoinHostPort("127.0.0.1", strconv.Itoa(model.DefaultAPIPort)))
	v.SetDefault("collection", defaultCollection)
	v.SetDefault("search-delay", defaultSearchDelay)
	v.SetDefault("search-mode", defaultSearchMode)
	v.SetDefault("request-timeout", 0)
	v.SetDefault("offline", false)
	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("log-file", logging.DefaultFile("pantry-tui"))

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "pantry", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	if _, err := search.ParseMode(cfg.SearchMode); err != nil {
		return cfg, err
	}
	if cfg.SearchDelay <= 0 {
		return cfg, fmt.Errorf("invalid search-delay: %s", cfg.SearchDelay)
	}
	if strings.HasPrefix(cfg.LogFile, "~/") {
		cfg.LogFile = filepath.Join(home, cfg.LogFile[2:])
	}

	return cfg, nil
}
