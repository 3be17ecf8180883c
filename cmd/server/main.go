// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

// Package main is the entry point for the Dinewise recommendation server.
//
// Startup order:
//
//  1. Environment: an optional .env file is loaded with godotenv
//  2. Configuration: defaults, then config.yaml, then environment (koanf v2)
//  3. Logging: zerolog, bridged to slog for the supervisor
//  4. Database: DuckDB or SQLite
//  5. Engine: recommend.Engine over the database
//  6. Supervisor: batch jobs and the HTTP server under suture
//
// # Configuration
//
// Environment variables use the upper-cased koanf path with "_" separators,
// for example:
//
//	DATABASE_DRIVER=sqlite
//	DATABASE_PATH=/data/dinewise.db
//	SERVER_PORT=8080
//	BATCH_SIMILARITY_INTERVAL=24h
//	RECOMMEND_PREFERENCE_BOOST=0.2
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor context. In-flight requests get
// server.shutdown_timeout to finish; a running batch job is abandoned and
// leaves the previous similarity table in place.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tomtom215/dinewise/internal/api"
	"github.com/tomtom215/dinewise/internal/config"
	"github.com/tomtom215/dinewise/internal/database"
	"github.com/tomtom215/dinewise/internal/logging"
	"github.com/tomtom215/dinewise/internal/supervisor"
	"github.com/tomtom215/dinewise/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn().Err(err).Msg("Failed to load .env file")
	}

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Dinewise stopped")
}

func run(cfg *config.Config) error {
	logging.Info().
		Str("version", version).
		Str("db_driver", cfg.Database.Driver).
		Str("db_path", cfg.Database.Path).
		Msg("Starting Dinewise")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	logger := logging.Logger()
	engine, err := initRecommend(db, cfg, logger, tree)
	if err != nil {
		return err
	}

	handler := api.NewHandler(engine, db, api.HandlerConfig{
		RequestTimeout:  cfg.Server.RequestTimeout,
		AdminRunTimeout: cfg.Batch.RunTimeout,
		Version:         version,
	})
	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Server.CORSOrigins
	mwConfig.RateLimitRequests = cfg.Server.RateLimitRequests
	mwConfig.RateLimitWindow = cfg.Server.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.Server.RateLimitDisabled
	router := api.NewRouter(handler, api.NewChiMiddleware(mwConfig))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Serving HTTP")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		logging.Warn().Int("count", len(report)).Msg("Services did not stop within the shutdown timeout")
	}
	return nil
}
