// Package common provides shared utilities for FundTrack
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for FundTrack
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Clients     ClientsConfig   `toml:"clients"`
	Auth        AuthConfig      `toml:"auth"`
	Cache       CacheConfig     `toml:"cache"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds persistence configuration. Backend selects between the
// SurrealDB backend ("surrealdb") and the in-memory backend ("memory").
type StorageConfig struct {
	Backend   string `toml:"backend"`
	Address   string `toml:"address"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	NAVFeed NAVFeedConfig `toml:"navfeed"`
}

// NAVFeedConfig holds configuration for the external NAV lookup service.
// The service authenticates with two request headers: the API key and the
// API host.
type NAVFeedConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	APIHost   string `toml:"api_host"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *NAVFeedConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// AuthConfig holds authentication configuration for JWT issuance.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "168h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 168 * time.Hour
	}
	return d
}

// CacheConfig holds the refresh result cache configuration.
type CacheConfig struct {
	TTL string `toml:"ttl"` // duration string, default "24h"
}

// GetTTL parses and returns the cache TTL duration.
func (c *CacheConfig) GetTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// SchedulerConfig holds the periodic refresh scheduler configuration.
type SchedulerConfig struct {
	Interval    string `toml:"interval"`     // duration string, default "60m"
	IdleTimeout string `toml:"idle_timeout"` // duration string, default "24h"; 0 disables
}

// GetInterval parses and returns the refresh interval.
func (c *SchedulerConfig) GetInterval() time.Duration {
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 60 * time.Minute
	}
	return d
}

// GetIdleTimeout parses and returns the idle timeout after which a user's
// recurring refresh job is cancelled.
func (c *SchedulerConfig) GetIdleTimeout() time.Duration {
	d, err := time.ParseDuration(c.IdleTimeout)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
		},
		Storage: StorageConfig{
			Backend:   "surrealdb",
			Address:   "ws://localhost:8000",
			Namespace: "fundtrack",
			Database:  "fundtrack",
			Username:  "root",
			Password:  "root",
		},
		Clients: ClientsConfig{
			NAVFeed: NAVFeedConfig{
				BaseURL:   "https://latest-mutual-fund-nav.p.rapidapi.com",
				APIHost:   "latest-mutual-fund-nav.p.rapidapi.com",
				RateLimit: 5,
				Timeout:   "30s",
			},
		},
		Auth: AuthConfig{
			JWTSecret:   "dev-jwt-secret-change-in-production",
			TokenExpiry: "168h",
		},
		Cache: CacheConfig{
			TTL: "24h",
		},
		Scheduler: SchedulerConfig{
			Interval:    "60m",
			IdleTimeout: "24h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FUNDTRACK_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FUNDTRACK_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FUNDTRACK_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FUNDTRACK_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if backend := os.Getenv("FUNDTRACK_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = backend
	}
	if addr := os.Getenv("FUNDTRACK_STORAGE_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}

	if v := os.Getenv("FUNDTRACK_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("FUNDTRACK_TOKEN_EXPIRY"); v != "" {
		config.Auth.TokenExpiry = v
	}

	// RAPIDAPI_* are the names the NAV feed provider documents; the
	// FUNDTRACK_* forms take precedence.
	if v := os.Getenv("RAPIDAPI_KEY"); v != "" {
		config.Clients.NAVFeed.APIKey = v
	}
	if v := os.Getenv("RAPIDAPI_HOST"); v != "" {
		config.Clients.NAVFeed.APIHost = v
	}
	if v := os.Getenv("FUNDTRACK_NAVFEED_API_KEY"); v != "" {
		config.Clients.NAVFeed.APIKey = v
	}
	if v := os.Getenv("FUNDTRACK_NAVFEED_API_HOST"); v != "" {
		config.Clients.NAVFeed.APIHost = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
