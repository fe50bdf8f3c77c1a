// Package config loads the service configuration from an optional
// config.yaml and the environment.
//
// Every key can be overridden with a BESTCDMX_ variable, dots replaced by
// underscores (listing.debounce_window becomes BESTCDMX_LISTING_DEBOUNCE_WINDOW).
// DATABASE_URL and PORT are still honoured for existing deployments.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "BESTCDMX"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Listing   ListingConfig   `mapstructure:"listing"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required,numeric"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// DatabaseConfig selects the SQL driver and pool limits. Driver is
// "postgres" (lib/pq) or "pgx" (pgx stdlib).
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required"`
	Driver          string        `mapstructure:"driver" validate:"oneof=postgres pgx"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout" validate:"gt=0"`
}

type ListingConfig struct {
	DebounceWindow time.Duration `mapstructure:"debounce_window" validate:"gt=0"`
}

type CatalogConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval" validate:"gt=0"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
	Caller bool   `mapstructure:"caller"`
}

// RateLimitConfig is a per-IP request budget for the HTTP API.
type RateLimitConfig struct {
	Disabled bool          `mapstructure:"disabled"`
	Requests int           `mapstructure:"requests" validate:"gte=1"`
	Window   time.Duration `mapstructure:"window" validate:"gt=0"`
}

var defaults = map[string]any{
	"server.port":             "3003",
	"server.read_timeout":     "15s",
	"server.write_timeout":    "15s",
	"server.idle_timeout":     "60s",
	"server.shutdown_timeout": "30s",
	"server.allowed_origins":  []string{"http://localhost:3000"},

	"database.url":               "",
	"database.driver":            "postgres",
	"database.max_open_conns":    10,
	"database.max_idle_conns":    0,
	"database.conn_max_lifetime": "5m",
	"database.query_timeout":     "10s",

	"listing.debounce_window":  "300ms",
	"catalog.refresh_interval": "1h",

	"logging.level":  "info",
	"logging.format": "json",
	"logging.caller": false,

	"rate_limit.disabled": false,
	"rate_limit.requests": 120,
	"rate_limit.window":   "1m",
}

// Load reads config.yaml from dir if present, applies environment overrides
// and validates the result. A missing file is not an error.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database.url", envPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("bind database.url: %w", err)
	}
	if err := v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("bind server.port: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
