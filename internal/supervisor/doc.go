// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

/*
Package supervisor provides process supervision for the analytics server
using suture v4.

This package implements a hierarchical supervisor tree that manages the
lifecycle of all long-running services. It provides Erlang/OTP-style
supervision with automatic restart, failure isolation, and graceful
shutdown.

# Overview

The supervisor tree organizes services into four layers for failure
isolation:

	RootSupervisor ("intelligence")
	├── DataSupervisor ("data-layer")
	│   └── LedgerGCService (Badger value-log GC)
	├── MessagingSupervisor ("messaging-layer")
	│   └── PipelineService (embedded NATS + bet consumers, if EVENTS_ENABLED)
	├── AnalysisSupervisor ("analysis-layer")
	│   └── AnalysisService (periodic full analysis runs)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

This hierarchy ensures that:
  - A crashing bet consumer restarts without dropping HTTP connections
  - A wedged analysis run never takes the pipeline down with it
  - Ledger maintenance failures don't impact API availability

# Restart Behavior

The supervisor uses a failure counter with exponential decay:

 1. Each service failure increments the counter
 2. The counter decays exponentially over time (FailureDecay seconds)
 3. When the counter exceeds FailureThreshold, the supervisor enters backoff
 4. During backoff, restarts are delayed by FailureBackoff

Defaults match suture's production values: threshold 5, decay 30s,
backoff 15s, shutdown timeout 10s.

# Service Interface

All services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return behavior:
  - Return nil: service stopped cleanly, will not be restarted
  - Return error: service crashed, will be restarted
  - Context canceled: shutdown requested, return promptly

# Usage

Setup in main:

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddDataService(services.NewLedgerGCService(ledger, 0))
	tree.AddMessagingService(services.NewPipelineService(pipeline, cfg.Server.ShutdownTimeout))
	tree.AddAnalysisService(services.NewAnalysisService(handler, &cfg.Analysis))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# What Is Not Supervised

DuckDB is intentionally not supervised: it is an embedded library, not a
long-running service, and its connection pool is owned by the database
package. A crash inside DuckDB would require a process restart anyway.

The Badger ledger itself is likewise unsupervised; only its periodic GC
loop runs as a service.

# Debugging Shutdown Issues

If services don't stop within the timeout:

	report, err := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    log.Printf("Service didn't stop: %v", svc)
	}

Common causes are goroutines ignoring context cancellation and blocked
network I/O without deadlines.

# See Also

  - internal/supervisor/services: service wrappers
  - github.com/thejerf/suture/v4: underlying library
*/
package supervisor
