// Package main is the entry point for the budgetbox command line client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/api"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/cli"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/config"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/database"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/exchange"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/logger"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/repository"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/session"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/telemetry"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const shutdownTimeout = 5 * time.Second

func main() {
	build := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Println(build.String())
		return
	}
	os.Exit(run(build))
}

// run wires the client and executes the command line. It returns the process
// exit code.
func run(build cli.BuildInfo) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to load config")
		return 1
	}

	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	if err := logger.InitHashSalt(); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to initialize log hash salt")
		return 1
	}

	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Exporter:       cfg.TelemetryExporter,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: build.Version,
	})
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to set up telemetry")
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Log.Warn().Err(err).Msg("Failed to flush telemetry")
		}
	}()

	db, err := database.Open(ctx, cfg.SessionDB, database.WithTracerProvider(providers.TracerProvider))
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to open session store")
		return 1
	}
	defer func() { _ = db.Close() }()

	if err := database.RunMigrations(ctx, db); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to run migrations")
		return 1
	}

	client, err := api.New(api.Config{
		BaseURL:        cfg.APIURL,
		Timeout:        cfg.APITimeout,
		TracerProvider: providers.TracerProvider,
		MeterProvider:  providers.MeterProvider,
	})
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to create API client")
		return 1
	}

	sess := session.New(client, repository.NewSessionRepository(db, db.Driver))
	if _, err := sess.Restore(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to restore session")
	}

	app := &cli.App{
		API:          client,
		Session:      sess,
		Rates:        exchange.NewCachedService(exchange.NewFrankfurterClient(cfg.ExchangeRateBaseURL, cfg.ExchangeRateTimeout, nil), cfg.ExchangeRateCacheTTL),
		BaseCurrency: cfg.BaseCurrency,
		Build:        build,
	}

	logger.Log.Debug().Str("api_url", cfg.APIURL).Str("session_db", cfg.SessionDB).Msg("Starting budgetbox")

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, cli.ErrorStyle.Render("Error: "+err.Error()))
		return 1
	}
	return 0
}
