// Package config loads the application configuration: file paths for the
// static tables, server settings, and optional cache/storage backends.
// Everything has a compiled-in default so the binary runs with no config
// file at all.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// App is the top-level configuration.
type App struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Data   DataConfig   `yaml:"data"`
}

// ServerConfig configures the HTTP API surface. Timeouts are stored as
// integer seconds so plain YAML numerals work in the config file.
type ServerConfig struct {
	Addr                string  `yaml:"addr"`
	ReadTimeoutSecs     int     `yaml:"read_timeout_secs"`
	WriteTimeoutSecs    int     `yaml:"write_timeout_secs"`
	ShutdownTimeoutSecs int     `yaml:"shutdown_timeout_secs"`
	RateLimitRPS        float64 `yaml:"rate_limit_rps"`
	RateLimitBurst      int     `yaml:"rate_limit_burst"`
}

// ReadTimeout returns the read timeout as a time.Duration.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSecs) * time.Second
}

// WriteTimeout returns the write timeout as a time.Duration.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSecs) * time.Second
}

// ShutdownTimeout returns the graceful shutdown budget as a time.Duration.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSecs) * time.Second
}

// RedisConfig configures the optional result cache.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	TTLSecs int    `yaml:"ttl_secs"`
}

// TTL returns the cache TTL as a time.Duration.
func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLSecs) * time.Second
}

// DataConfig points at the static tables. Empty paths mean compiled-in
// defaults; PostgresDSN switches the verified database to SQL loading.
type DataConfig struct {
	VerifiedPath string `yaml:"verified_path"`
	CountryPath  string `yaml:"country_path"`
	PatternPath  string `yaml:"pattern_path"`
	PostgresDSN  string `yaml:"postgres_dsn"`
}

// Default returns the built-in configuration.
func Default() App {
	return App{
		Server: ServerConfig{
			Addr:                ":8090",
			ReadTimeoutSecs:     5,
			WriteTimeoutSecs:    10,
			ShutdownTimeoutSecs: 10,
			RateLimitRPS:        20,
			RateLimitBurst:      40,
		},
		Redis: RedisConfig{
			Enabled: false,
			Addr:    "localhost:6379",
			TTLSecs: 600,
		},
	}
}

// Load reads configuration from a YAML file layered over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (App, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return App{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return App{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return App{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks bounds on the loaded configuration.
func (a App) Validate() error {
	if a.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if a.Server.RateLimitRPS <= 0 {
		return fmt.Errorf("server.rate_limit_rps must be positive, got %.1f", a.Server.RateLimitRPS)
	}
	if a.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("server.rate_limit_burst must be positive, got %d", a.Server.RateLimitBurst)
	}
	if a.Redis.Enabled && a.Redis.Addr == "" {
		return fmt.Errorf("redis.addr required when redis.enabled")
	}
	if a.Redis.TTLSecs < 0 {
		return fmt.Errorf("redis.ttl_secs must not be negative")
	}
	return nil
}
