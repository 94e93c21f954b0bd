// Package config holds the service configuration and its loader.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// PostgresDSN is the lib/pq connection string of the ATS database.
	PostgresDSN string `koanf:"postgres_dsn"`

	DBMaxOpenConns           int `koanf:"db_max_open_conns"`
	DBMaxIdleConns           int `koanf:"db_max_idle_conns"`
	DBConnMaxLifetimeMinutes int `koanf:"db_conn_max_lifetime_minutes"`
	QueryTimeoutSeconds      int `koanf:"query_timeout_seconds"`
	ShutdownTimeoutSeconds   int `koanf:"shutdown_timeout_seconds"`

	// AllowedOrigins is the comma separated CORS origin list.
	AllowedOrigins string `koanf:"allowed_origins"`

	// MetricsEnabled toggles Prometheus recording. /internal/metrics is
	// served either way.
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                 "info",
		LogFormat:                "text",
		Addr:                     ":8080",
		DBMaxOpenConns:           20,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeMinutes: 30,
		QueryTimeoutSeconds:      15,
		ShutdownTimeoutSeconds:   5,
		AllowedOrigins:           "*",
		MetricsEnabled:           true,
	}
}

func (c *Config) ConnMaxLifetime() time.Duration {
	return time.Duration(c.DBConnMaxLifetimeMinutes) * time.Minute
}

func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// Validate reports the first invalid field wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.PostgresDSN) == "":
		return fmt.Errorf("%w: postgres_dsn must not be empty", ErrInvalidConfig)
	case c.DBMaxOpenConns <= 0:
		return fmt.Errorf("%w: db_max_open_conns must be positive", ErrInvalidConfig)
	case c.DBMaxIdleConns < 0 || c.DBMaxIdleConns > c.DBMaxOpenConns:
		return fmt.Errorf("%w: db_max_idle_conns must be within [0, db_max_open_conns]", ErrInvalidConfig)
	case c.QueryTimeoutSeconds < 0:
		return fmt.Errorf("%w: query_timeout_seconds must not be negative", ErrInvalidConfig)
	}
	return nil
}
