// Package config provides configuration management for the application.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"showsync/internal/constants"
)

const (
	defaultConfigFile   = "config.json"
	defaultDatabasePath = "./showsync.db"

	// Video key played when no official trailer exists. The original
	// product shipped with this fallback; set FALLBACK_TRAILER_KEY=""
	// to surface "no trailer available" instead.
	defaultFallbackTrailerKey = "dQw4w9WgXcQ"
)

// Config holds the application configuration.
// It supports loading from environment variables and JSON files;
// environment variables take precedence.
type Config struct {
	// Server-held catalog secret, never exposed to callers
	TMDBAPIKey string `json:"TMDB_API_KEY"`

	// Secret used to sign first-party bearer tokens
	JWTSecret string `json:"JWT_SECRET"`

	// Base URL of the first-party account/bookmark service
	AccountServiceURL string `json:"ACCOUNT_SERVICE_URL"`

	// Trailer fallback policy; empty disables the fallback
	FallbackTrailerKey string `json:"FALLBACK_TRAILER_KEY"`

	// Storage settings
	DatabasePath string        `json:"DATABASE_PATH"`
	CacheSize    int           `json:"CACHE_SIZE"`
	CacheTTL     time.Duration `json:"CACHE_TTL"`

	// Search input settling window in milliseconds
	SearchDebounceMS int `json:"SEARCH_DEBOUNCE_MS"`
}

// Load reads configuration from environment variables and an optional JSON
// file. Returns an error if the configuration is invalid.
func Load() (*Config, error) {
	cfg := &Config{
		CacheSize:          constants.DefaultCacheSize,
		CacheTTL:           time.Duration(constants.DefaultCacheTTL) * time.Hour,
		DatabasePath:       getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
		FallbackTrailerKey: defaultFallbackTrailerKey,
		SearchDebounceMS:   int(constants.DefaultSearchDebounce / time.Millisecond),
	}

	configFile := getEnvOrDefault("CONFIG_FILE", defaultConfigFile)
	if err := cfg.loadFromFile(configFile); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Environment wins over file values
	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("TMDB_API_KEY"); v != "" {
		c.TMDBAPIKey = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("ACCOUNT_SERVICE_URL"); v != "" {
		c.AccountServiceURL = v
	}
	if v, ok := os.LookupEnv("FALLBACK_TRAILER_KEY"); ok {
		c.FallbackTrailerKey = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
}

func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, c)
}

// Validate checks the configuration and fills defaults for optional fields.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.CacheSize <= 0 {
		c.CacheSize = constants.DefaultCacheSize
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = time.Duration(constants.DefaultCacheTTL) * time.Hour
	}
	if c.SearchDebounceMS <= 0 {
		c.SearchDebounceMS = int(constants.DefaultSearchDebounce / time.Millisecond)
	}
	return nil
}

// SearchDebounce returns the settling window as a duration.
func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
