// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

// Package main is the entry point for the GameEdge Intelligence server.
//
// GameEdge Intelligence is a customer-analytics backend for sports-betting
// platforms. It ingests transactional and behavioral betting data, computes
// RFM customer-value scores, clusters customers, predicts churn, synthesizes
// named segments, and serves the results over an HTTP API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered load from defaults, optional YAML, environment (Koanf v2)
//  2. Logging: zerolog, console or JSON output
//  3. Analytics engine: RFM weights validated fatally before anything opens
//  4. Database: embedded DuckDB with schema creation (+ optional mock seed)
//  5. Run ledger: Badger-backed analysis run history
//  6. Event pipeline (optional): embedded NATS JetStream bet ingestion
//  7. Bulk importer (optional): checksummed dataset loads
//  8. HTTP server: REST API with Swagger documentation
//  9. Supervisor tree: data / messaging / analysis / api layers
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest wins):
// environment variables, an optional config file (CONFIG_FILE or
// ./config.yaml), then built-in defaults. See internal/config for the full
// environment-variable surface.
//
// Minimal development run (in-memory DuckDB, in-memory ledger, demo data):
//
//	export SEED_MOCK_DATA=true
//	export ANALYSIS_ON_STARTUP=true
//	./intelligence
//
// Production run with persistence and the bet-event pipeline:
//
//	export DUCKDB_PATH=/data/intelligence.duckdb
//	export RUNLEDGER_PATH=/data/runledger
//	export EVENTS_ENABLED=true
//	export NATS_STORE_DIR=/data/nats
//	export LOG_FORMAT=json
//	./intelligence
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: the HTTP listener
// drains in-flight requests, the event pipeline drains its consumers and
// stops the embedded broker, and the stores close last.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "github.com/gameedge/intelligence/docs" // generated swagger docs
	"github.com/gameedge/intelligence/internal/analytics"
	"github.com/gameedge/intelligence/internal/api"
	"github.com/gameedge/intelligence/internal/config"
	"github.com/gameedge/intelligence/internal/database"
	"github.com/gameedge/intelligence/internal/events"
	"github.com/gameedge/intelligence/internal/importer"
	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/metrics"
	"github.com/gameedge/intelligence/internal/runledger"
	"github.com/gameedge/intelligence/internal/supervisor"
	"github.com/gameedge/intelligence/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		// Default logger: config (and with it the log format) never loaded.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Bool("events_enabled", cfg.Events.Enabled).
		Msg("Starting GameEdge Intelligence")
	metrics.SetAppInfo(api.Version, runtime.Version())

	// The engine rejects invalid RFM weights at construction. This happens
	// before any store opens: a weight misconfiguration must never be
	// normalized away, and there is nothing to clean up yet.
	engineCfg := analytics.DefaultConfig()
	engineCfg.RecencyWeight = cfg.Analysis.RecencyWeight
	engineCfg.FrequencyWeight = cfg.Analysis.FrequencyWeight
	engineCfg.MonetaryWeight = cfg.Analysis.MonetaryWeight
	engineCfg.ModelSource = cfg.Analysis.ChurnModelSource
	engine, err := analytics.NewEngine(engineCfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid analytics configuration")
	}

	db, err := database.New(&cfg.Database, cfg.Analysis.WindowDays)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if cfg.Database.SeedMockData {
		logging.Info().Msg("Mock data seeding enabled (SEED_MOCK_DATA=true)")
		if err := db.SeedMockData(context.Background()); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed mock data")
		}
	}

	ledger, err := runledger.Open(&cfg.Ledger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open run ledger")
	}
	defer func() {
		if err := ledger.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing run ledger")
		}
	}()

	orchestrator := analytics.NewOrchestrator(engine, db, db, ledger)
	handler := api.NewHandler(db, orchestrator, engine, ledger, cfg)

	// Context for graceful shutdown; canceled by the signal handler below.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The bet-event pipeline is opt-in: constructing it spins up nothing,
	// the supervisor starts the broker later.
	var pipeline *events.Pipeline
	if cfg.Events.Enabled {
		pipeline, err = events.NewPipeline(&cfg.Events, db)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to build bet-event pipeline")
		}
		handler.SetPipeline(pipeline)
		logging.Info().Int("port", cfg.Events.NATSPort).Msg("Bet-event pipeline enabled")
	}

	if cfg.Import.Enabled {
		// The importer shares the ledger's Badger instance for checksum
		// persistence, so identical payloads short-circuit across restarts
		// whenever the ledger itself is persistent.
		im := importer.NewImporter(&cfg.Import, db, importer.NewBadgerChecksums(ledger.DB()))
		handler.SetImporter(im)
		logging.Info().Msg("Bulk importer enabled")
	}

	router := api.NewRouter(handler, api.NewChiMiddleware(&cfg.API))
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Bridge zerolog to slog for sutureslog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewLedgerGCService(ledger, 0, logging.Logger()))
	if pipeline != nil {
		tree.AddMessagingService(services.NewPipelineService(pipeline, cfg.Server.ShutdownTimeout))
	}
	tree.AddAnalysisService(services.NewAnalysisService(handler, services.AnalysisServiceConfig{
		RunOnStartup: cfg.Analysis.RunOnStartup,
		RunInterval:  cfg.Analysis.RunInterval,
		RunTimeout:   cfg.Analysis.RunTimeout,
	}, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	start := time.Now()
	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain the channel until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Dur("uptime", time.Since(start)).Msg("Application stopped gracefully")
}
