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

	"github.com/spf13/viper"
)

const (
	defaultBindHost     = "127.0.0.1"
	defaultAPIPort      = model.DefaultAPIPort
	defaultCollection   = model.DefaultCollection
	defaultQueryTimeout = 30 * time.Second
	defaultRateBurst    = 20
	defaultCacheTTL     = 5 * time.Minute
	defaultLogLevel     = model.DefaultLogLevel
	defaultLogFormat    = "console"
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	APIPort       int           `mapstructure:"api-port"`
	APIAddr       string        `mapstructure:"api-addr"`
	Collection    string        `mapstructure:"collection"`
	DBPath        string        `mapstructure:"db-path"`
	QueryTimeout  time.Duration `mapstructure:"query-timeout"`
	RateLimit     float64       `mapstructure:"rate-limit"`
	RateBurst     int           `mapstructure:"rate-burst"`
	RedisAddr     string        `mapstructure:"redis-addr"`
	RedisPassword string        `mapstructure:"redis-password"`
	RedisDB       int           `mapstructure:"redis-db"`
	CacheTTL      time.Duration `mapstructure:"cache-ttl"`
	SeedFile      string        `mapstructure:"seed-file"`
	LogLevel      string        `mapstructure:"log-level"`
	LogFormat     string        `mapstructure:"log-format"`
	LogFile       string        `mapstructure:"log-file"`
	ConfigPath    string        `mapstructure:"-"` // not from config file
}

func (c appConfig) logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Format: c.LogFormat, File: c.LogFile}
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	defaultDBPath := filepath.Join(home, ".local", "share", "pantry", "pantry.duckdb")

	v := viper.New()
	v.SetEnvPrefix("PANTRY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-port", defaultAPIPort)
	v.SetDefault("api-addr", "")
	v.SetDefault("collection", defaultCollection)
	v.SetDefault("db-path", defaultDBPath)
	v.SetDefault("query-timeout", defaultQueryTimeout)
	v.SetDefault("rate-limit", 0)
	v.SetDefault("rate-burst", defaultRateBurst)
	v.SetDefault("redis-addr", "")
	v.SetDefault("redis-password", "")
	v.SetDefault("redis-db", 0)
	v.SetDefault("cache-ttl", defaultCacheTTL)
	v.SetDefault("seed-file", "")
	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("log-format", defaultLogFormat)
	v.SetDefault("log-file", logging.DefaultFile("pantry"))

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		defaultConfigPath := filepath.Join(home, ".config", "pantry", "config.yml")
		v.SetConfigFile(defaultConfigPath)
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
	cfg.ConfigPath = v.ConfigFileUsed()
	if _, err := os.Stat(cfg.ConfigPath); err != nil {
		cfg.ConfigPath = ""
	}

	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return cfg, fmt.Errorf("invalid api-port: %d", cfg.APIPort)
	}
	if cfg.RateLimit < 0 {
		return cfg, fmt.Errorf("invalid rate-limit: %v", cfg.RateLimit)
	}
	if cfg.RateLimit > 0 && cfg.RateBurst <= 0 {
		return cfg, fmt.Errorf("invalid rate-burst: %d", cfg.RateBurst)
	}
	if strings.ContainsAny(cfg.Collection, "/.") || cfg.Collection == "" {
		return cfg, fmt.Errorf("invalid collection: %q", cfg.Collection)
	}

	// Expand ~ in paths
	cfg.DBPath = expandHome(home, cfg.DBPath)
	cfg.SeedFile = expandHome(home, cfg.SeedFile)
	cfg.LogFile = expandHome(home, cfg.LogFile)

	if cfg.APIAddr == "" {
		cfg.APIAddr = net.JoinHostPort(defaultBindHost, strconv.Itoa(cfg.APIPort))
	}

	return cfg, nil
}

func expandHome(home, path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
