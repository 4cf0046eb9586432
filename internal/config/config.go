// Package config provides configuration management for the Pitch Predictor application.
package config

import (
	"fmt"

	"github.com/yourusername/pitch-predictor/internal/models"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig         `mapstructure:"app" validate:"required"`
	Dataset    DatasetConfig     `mapstructure:"dataset" validate:"required"`
	Database   DatabaseConfig    `mapstructure:"database"`
	Server     ServerConfig      `mapstructure:"server" validate:"required"`
	Prediction PredictionConfig  `mapstructure:"prediction" validate:"required"`
	Metrics    MetricsConfig     `mapstructure:"metrics" validate:"required"`
	Teams      map[string]string `mapstructure:"teams"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatasetConfig represents the historical match dataset source.
// Source selects the backend: "file" reads a CSV from Path, "http" fetches
// a CSV from URL, "postgres" reads rows from Table using the database
// configuration.
type DatasetConfig struct {
	Source        string `mapstructure:"source" validate:"required,datasetsource"`
	Path          string `mapstructure:"path"`
	URL           string `mapstructure:"url" validate:"omitempty,url"`
	APIKey        string `mapstructure:"api_key"`
	Table         string `mapstructure:"table"`
	ReloadEnabled bool   `mapstructure:"reload_enabled"`
	ReloadCron    string `mapstructure:"reload_cron" validate:"omitempty,cronspec"`
}

// DatabaseConfig represents database connection configuration. Only
// required when the dataset source is "postgres".
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// ServerConfig represents the prediction API server configuration
type ServerConfig struct {
	Port               int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	HealthPort         int      `mapstructure:"health_port" validate:"omitempty,min=1,max=65535"`
	CORSAllowOrigins   []string `mapstructure:"cors_allow_origins"`
	RateLimitEnabled   bool     `mapstructure:"rate_limit_enabled"`
	RateLimitPerSecond float64  `mapstructure:"rate_limit_per_second" validate:"omitempty,gt=0"`
	RateLimitBurst     int      `mapstructure:"rate_limit_burst" validate:"omitempty,gt=0"`
}

// PredictionConfig represents the scoring engine parameters. The defaults
// are the documented heuristics: a side needs min_matches head-to-head
// games before that history is trusted, otherwise recent form over a
// doubled lookback substitutes, and thin samples compress probabilities
// into the [cap_min, cap_max] confidence band.
type PredictionConfig struct {
	MinMatches      int     `mapstructure:"min_matches" validate:"required,gt=0"`
	Lookback        int     `mapstructure:"lookback" validate:"required,gt=0"`
	CapMin          float64 `mapstructure:"cap_min" validate:"gte=0"`
	CapMax          float64 `mapstructure:"cap_max" validate:"required,gt=0,lte=100"`
	CacheEnabled    bool    `mapstructure:"cache_enabled"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"omitempty,gt=0"`
	CacheMaxSize    int     `mapstructure:"cache_max_size" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// CompetitorCodes builds the code map from the teams section, falling back
// to the built-in mapping when the section is absent.
func (c *Config) CompetitorCodes() *models.CodeMap {
	if len(c.Teams) == 0 {
		return models.DefaultCodeMap()
	}
	return models.NewCodeMap(c.Teams)
}
