// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Token signing secret for bearer tokens
	TokenSecret   string        `env:"TOKEN_SECRET,required"`
	TokenValidity time.Duration `env:"TOKEN_VALIDITY" envDefault:"24h"`

	// Object store for uploaded report files (S3-compatible)
	BlobEndpoint  string `env:"BLOB_ENDPOINT,required"`
	BlobAccessKey string `env:"BLOB_ACCESS_KEY,required"`
	BlobSecretKey string `env:"BLOB_SECRET_KEY,required"`
	BlobBucket    string `env:"BLOB_BUCKET" envDefault:"report-uploads"`
	BlobUseSSL    bool   `env:"BLOB_USE_SSL" envDefault:"false"`

	// External text-generation API for health insights
	InsightURL     string        `env:"INSIGHT_URL" envDefault:""`
	InsightAPIKey  string        `env:"INSIGHT_API_KEY" envDefault:""`
	InsightTimeout time.Duration `env:"INSIGHT_TIMEOUT" envDefault:"5s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Bounded timeout for store operations
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"3s"`

	// Rate limiting for the auth endpoints (per IP)
	RateLimitAuthEnabled bool `env:"RATE_LIMIT_AUTH_ENABLED" envDefault:"true"`
	RateLimitAuthRPS     int  `env:"RATE_LIMIT_AUTH_RPS" envDefault:"5"`
	RateLimitAuthBurst   int  `env:"RATE_LIMIT_AUTH_BURST" envDefault:"10"`

	// Maximum size of an uploaded report file in bytes (default 16MB)
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"16777216"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
