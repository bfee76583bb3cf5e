// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/api"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/exchange"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/telemetry"
)

const (
	defaultExchangeTimeout  = 5 * time.Second
	defaultExchangeCacheTTL = 12 * time.Hour
)

// Config holds all configuration for the application.
type Config struct {
	APIURL     string
	APITimeout time.Duration

	// SessionDB is a SQLite path or a postgres:// URL.
	SessionDB string

	LogLevel  string
	LogFormat string

	BaseCurrency models.Currency

	ExchangeRateBaseURL  string
	ExchangeRateTimeout  time.Duration
	ExchangeRateCacheTTL time.Duration

	TelemetryExporter telemetry.Exporter
	ServiceName       string

	exporterErr error
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:               strings.TrimSpace(os.Getenv("BUDGETBOX_API_URL")),
		APITimeout:           durationEnv("BUDGETBOX_API_TIMEOUT", api.DefaultTimeout),
		SessionDB:            strings.TrimSpace(os.Getenv("BUDGETBOX_SESSION_DB")),
		LogLevel:             os.Getenv("LOG_LEVEL"),
		LogFormat:            strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))),
		BaseCurrency:         models.Currency(strings.ToUpper(strings.TrimSpace(os.Getenv("BUDGETBOX_BASE_CURRENCY")))),
		ExchangeRateBaseURL:  strings.TrimSpace(os.Getenv("EXCHANGE_RATE_BASE_URL")),
		ExchangeRateTimeout:  durationEnv("EXCHANGE_RATE_TIMEOUT", defaultExchangeTimeout),
		ExchangeRateCacheTTL: durationEnv("EXCHANGE_RATE_CACHE_TTL", defaultExchangeCacheTTL),
		ServiceName:          strings.TrimSpace(os.Getenv("OTEL_SERVICE_NAME")),
	}

	if cfg.SessionDB == "" {
		cfg.SessionDB = defaultSessionDB()
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}
	if cfg.BaseCurrency == "" {
		cfg.BaseCurrency = models.DefaultCurrency
	}
	if cfg.ExchangeRateBaseURL == "" {
		cfg.ExchangeRateBaseURL = exchange.DefaultBaseURL
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = telemetry.DefaultServiceName
	}
	cfg.TelemetryExporter, cfg.exporterErr = telemetry.ParseExporter(os.Getenv("OTEL_EXPORTER"))

	// Validate required configuration.
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.APIURL == "" {
		errs = append(errs, "BUDGETBOX_API_URL is required")
	} else if u, err := url.Parse(c.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, "BUDGETBOX_API_URL must be an http or https URL")
	}

	if c.LogFormat != "console" && c.LogFormat != "json" {
		errs = append(errs, "LOG_FORMAT must be console or json")
	}

	if !c.BaseCurrency.Valid() {
		errs = append(errs, fmt.Sprintf("BUDGETBOX_BASE_CURRENCY %s is not supported", c.BaseCurrency))
	}

	if c.exporterErr != nil {
		errs = append(errs, "OTEL_EXPORTER must be none, stdout, otlp-http or otlp-grpc")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// durationEnv parses a duration variable, falling back for empty, invalid
// or non-positive values.
func durationEnv(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func defaultSessionDB() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".budgetbox", "session.db")
	}
	return filepath.Join(home, ".config", "budgetbox", "session.db")
}
