package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/telemetry"
)

var configVars = []string{
	"BUDGETBOX_API_URL",
	"BUDGETBOX_API_TIMEOUT",
	"BUDGETBOX_SESSION_DB",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"BUDGETBOX_BASE_CURRENCY",
	"EXCHANGE_RATE_BASE_URL",
	"EXCHANGE_RATE_TIMEOUT",
	"EXCHANGE_RATE_CACHE_TTL",
	"OTEL_EXPORTER",
	"OTEL_SERVICE_NAME",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range configVars {
		t.Setenv(name, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads all config from env", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BUDGETBOX_API_URL", "http://localhost:8000/api")
		t.Setenv("BUDGETBOX_API_TIMEOUT", "30s")
		t.Setenv("BUDGETBOX_SESSION_DB", "postgres://localhost/budgetbox")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "JSON")
		t.Setenv("BUDGETBOX_BASE_CURRENCY", "eur")
		t.Setenv("OTEL_EXPORTER", "otlp-grpc")
		t.Setenv("OTEL_SERVICE_NAME", "budgetbox-cli")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "http://localhost:8000/api", cfg.APIURL)
		require.Equal(t, 30*time.Second, cfg.APITimeout)
		require.Equal(t, "postgres://localhost/budgetbox", cfg.SessionDB)
		require.Equal(t, "debug", cfg.LogLevel)
		require.Equal(t, "json", cfg.LogFormat)
		require.Equal(t, models.CurrencyEUR, cfg.BaseCurrency)
		require.Equal(t, telemetry.ExporterOTLPGRPC, cfg.TelemetryExporter)
		require.Equal(t, "budgetbox-cli", cfg.ServiceName)
	})

	t.Run("applies defaults", func(t *testing.T) {
		clearEnv(t)
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("BUDGETBOX_API_URL", "https://budgetbox.example.com/api")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, 15*time.Second, cfg.APITimeout)
		require.Equal(t, filepath.Join(home, ".config", "budgetbox", "session.db"), cfg.SessionDB)
		require.Equal(t, "console", cfg.LogFormat)
		require.Equal(t, models.CurrencyGBP, cfg.BaseCurrency)
		require.Equal(t, "https://api.frankfurter.app", cfg.ExchangeRateBaseURL)
		require.Equal(t, 5*time.Second, cfg.ExchangeRateTimeout)
		require.Equal(t, 12*time.Hour, cfg.ExchangeRateCacheTTL)
		require.Equal(t, telemetry.ExporterNone, cfg.TelemetryExporter)
		require.Equal(t, "budgetbox", cfg.ServiceName)
	})

	t.Run("loads exchange config from env", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BUDGETBOX_API_URL", "http://localhost:8000/api")
		t.Setenv("EXCHANGE_RATE_BASE_URL", "https://rates.example.com")
		t.Setenv("EXCHANGE_RATE_TIMEOUT", "3s")
		t.Setenv("EXCHANGE_RATE_CACHE_TTL", "1h")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "https://rates.example.com", cfg.ExchangeRateBaseURL)
		require.Equal(t, 3*time.Second, cfg.ExchangeRateTimeout)
		require.Equal(t, time.Hour, cfg.ExchangeRateCacheTTL)
	})

	t.Run("uses defaults for invalid durations", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BUDGETBOX_API_URL", "http://localhost:8000/api")
		t.Setenv("BUDGETBOX_API_TIMEOUT", "soon")
		t.Setenv("EXCHANGE_RATE_TIMEOUT", "invalid")
		t.Setenv("EXCHANGE_RATE_CACHE_TTL", "-5m")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, 15*time.Second, cfg.APITimeout)
		require.Equal(t, 5*time.Second, cfg.ExchangeRateTimeout)
		require.Equal(t, 12*time.Hour, cfg.ExchangeRateCacheTTL)
	})
}

func TestLoadValidation(t *testing.T) {
	t.Run("fails when BUDGETBOX_API_URL is missing", func(t *testing.T) {
		clearEnv(t)

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "BUDGETBOX_API_URL is required")
	})

	t.Run("fails when BUDGETBOX_API_URL is not http", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BUDGETBOX_API_URL", "ftp://files.example.com")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "must be an http or https URL")
	})

	t.Run("fails for unsupported currency", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BUDGETBOX_API_URL", "http://localhost:8000/api")
		t.Setenv("BUDGETBOX_BASE_CURRENCY", "JPY")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "BUDGETBOX_BASE_CURRENCY JPY is not supported")
	})

	t.Run("fails with multiple validation errors", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOG_FORMAT", "xml")
		t.Setenv("OTEL_EXPORTER", "zipkin")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "configuration validation failed")
		require.Contains(t, err.Error(), "BUDGETBOX_API_URL is required")
		require.Contains(t, err.Error(), "LOG_FORMAT must be console or json")
		require.Contains(t, err.Error(), "OTEL_EXPORTER must be none, stdout, otlp-http or otlp-grpc")
	})
}
