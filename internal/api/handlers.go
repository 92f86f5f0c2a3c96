// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package api

import (
	"sync/atomic"
	"time"

	"github.com/gameedge/intelligence/internal/analytics"
	"github.com/gameedge/intelligence/internal/cache"
	"github.com/gameedge/intelligence/internal/config"
	"github.com/gameedge/intelligence/internal/database"
	"github.com/gameedge/intelligence/internal/events"
	"github.com/gameedge/intelligence/internal/importer"
	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/middleware"
	"github.com/gameedge/intelligence/internal/runledger"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, cache invalidation (this file)
//   - handlers_analysis.go: analysis trigger, RFM scores, churn, engine status
//   - handlers_segments.go: segment listing, detail, rule-based creation
//   - handlers_customers.go: customer detail and recommendations
//   - handlers_bets.go: bet ingestion (pipeline publish or direct insert)
//   - handlers_feedback.go: feedback ingestion and sentiment trends
//   - handlers_dashboard.go: aggregated dashboard statistics
//   - handlers_import.go: bulk import trigger and status
//   - handlers_health.go: health and readiness probes
type Handler struct {
	db           *database.DB
	orchestrator *analytics.Orchestrator
	engine       *analytics.Engine
	ledger       *runledger.Ledger
	config       *config.Config
	pipeline     *events.Pipeline   // NATS bet-event pipeline (optional)
	importer     *importer.Importer // bulk import runner (optional)
	cache        *cache.Cache
	perfMon      *middleware.PerformanceMonitor
	startTime    time.Time

	// analyzing guards the synchronous analysis trigger: one run at a time.
	analyzing atomic.Bool
}

// NewHandler creates an API handler with the core dependencies.
//
// The read cache is sized from cfg.Cache; a nil cfg falls back to a
// 5-minute TTL and 1024 entries so tests can construct handlers without
// loading configuration. Optional dependencies (the event pipeline and the
// bulk importer) are attached after construction via SetPipeline and
// SetImporter because both require infrastructure that starts later.
func NewHandler(db *database.DB, orch *analytics.Orchestrator, engine *analytics.Engine, ledger *runledger.Ledger, cfg *config.Config) *Handler {
	ttl := 5 * time.Minute
	maxEntries := 1024
	if cfg != nil {
		if cfg.Cache.TTL > 0 {
			ttl = cfg.Cache.TTL
		}
		if cfg.Cache.MaxEntries > 0 {
			maxEntries = cfg.Cache.MaxEntries
		}
	}

	return &Handler{
		db:           db,
		orchestrator: orch,
		engine:       engine,
		ledger:       ledger,
		config:       cfg,
		startTime:    time.Now(),
		cache:        cache.New("api", ttl, maxEntries),
		perfMon:      middleware.NewPerformanceMonitor(1000),
	}
}

// SetPipeline attaches the bet-event pipeline. Call once during startup,
// after the pipeline has been constructed; a nil pipeline leaves bet
// ingestion on the direct-insert path.
func (h *Handler) SetPipeline(p *events.Pipeline) {
	h.pipeline = p
}

// SetImporter attaches the bulk importer. Call once during startup; when
// nil the import endpoint reports the feature as unavailable.
func (h *Handler) SetImporter(im *importer.Importer) {
	h.importer = im
}

// ClearCache invalidates all cached read-endpoint responses.
//
// Called after each completed analysis run so segment, score, and dashboard
// reads reflect the new run immediately instead of waiting out the TTL.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
		logging.Info().Msg("API read cache cleared")
	}
}
