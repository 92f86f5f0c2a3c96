// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

// Package metrics exposes the Prometheus instrumentation for GameEdge
// Intelligence. Collectors are registered at import time via promauto and
// surfaced on /metrics by the HTTP server.
//
// Components never touch collectors directly; they call the Record* and
// Set* helpers so label conventions live in one place.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Analytics Pipeline Metrics
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_stage_duration_seconds",
			Help:    "Duration of analytics pipeline stages in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15, 60},
		},
		[]string{"stage"}, // score_rfm, cluster, predict_churn, synthesize_segments, recommend
	)

	StageRowsIn = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_stage_rows_in_total",
			Help: "Total rows presented to each pipeline stage",
		},
		[]string{"stage"},
	)

	StageRowsExcluded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_stage_rows_excluded_total",
			Help: "Total rows excluded by a stage for missing required fields",
		},
		[]string{"stage"},
	)

	StageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_stage_failures_total",
			Help: "Total unexpected stage failures contained at the stage boundary",
		},
		[]string{"stage"},
	)

	AnalysisRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_runs_total",
			Help: "Total orchestrated analysis runs",
		},
		[]string{"method"}, // rfm, clustering, hybrid
	)

	AnalysisRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_run_duration_seconds",
			Help:    "End-to-end duration of orchestrated analysis runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"method"},
	)

	AnalysisBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analytics_batch_size",
			Help:    "Number of customer activity rows per analysis run",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
	)

	ChurnTrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "churn_training_duration_seconds",
			Help:    "Duration of churn model training in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15, 60},
		},
	)

	ChurnTrainingRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "churn_training_rows",
			Help:    "Usable rows per churn training invocation",
			Buckets: []float64{50, 100, 250, 500, 1000, 5000, 10000},
		},
	)

	ChurnHoldoutAccuracy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "churn_holdout_accuracy",
			Help: "Hold-out accuracy of the most recent churn model",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// Bet Event Metrics
	EventsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bet_events_published_total",
			Help: "Total number of bet events published to NATS",
		},
	)

	EventPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bet_events_publish_failures_total",
			Help: "Total number of bet event publish failures",
		},
	)

	EventsConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bet_events_consumed_total",
			Help: "Total number of bet events consumed from NATS",
		},
	)

	EventsParseFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bet_events_parse_failed_total",
			Help: "Total number of bet events that failed to parse",
		},
	)

	EventProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bet_event_processing_duration_seconds",
			Help:    "Duration of bet event processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Import Metrics
	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "import_duration_seconds",
			Help:    "Duration of bulk import runs in seconds",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	ImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_rows_total",
			Help: "Total rows ingested by bulk imports",
		},
		[]string{"entity"}, // customers, bets, feedback
	)

	ImportErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_errors_total",
			Help: "Total bulk import errors",
		},
		[]string{"error_type"}, // fetch, parse, checksum, database
	)

	ImportLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "import_last_success_timestamp",
			Help: "Unix timestamp of the last successful import",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Run Ledger Metrics
	LedgerRunsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "run_ledger_runs_recorded_total",
			Help: "Total analysis run reports written to the run ledger",
		},
	)

	LedgerEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "run_ledger_entries",
			Help: "Current number of run reports held in the ledger",
		},
	)

	// Feedback Sentiment Metrics
	FeedbackScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_scored_total",
			Help: "Total feedback messages scored for sentiment",
		},
		[]string{"label"}, // positive, negative, neutral
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordStage records one pipeline stage execution.
func RecordStage(stage string, rowsIn, excluded int, duration time.Duration) {
	StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	StageRowsIn.WithLabelValues(stage).Add(float64(rowsIn))
	StageRowsExcluded.WithLabelValues(stage).Add(float64(excluded))
}

// RecordStageFailure records a contained stage panic.
func RecordStageFailure(stage string) {
	StageFailures.WithLabelValues(stage).Inc()
}

// RecordChurnTraining records one churn model training invocation.
func RecordChurnTraining(usableRows int, accuracy float64, duration time.Duration) {
	ChurnTrainingDuration.Observe(duration.Seconds())
	ChurnTrainingRows.Observe(float64(usableRows))
	ChurnHoldoutAccuracy.Set(accuracy)
}

// RecordAnalysisRun records one orchestrated run.
func RecordAnalysisRun(method string, rows int, duration time.Duration) {
	AnalysisRunsTotal.WithLabelValues(method).Inc()
	AnalysisRunDuration.WithLabelValues(method).Observe(duration.Seconds())
	AnalysisBatchSize.Observe(float64(rows))
}

// RecordDBQuery records a database query. Errors increment the error counter
// alongside the duration observation.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rate limit rejection for an endpoint.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordCacheHit records a cache hit.
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss.
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// SetCacheSize updates the entry-count gauge for a cache.
func SetCacheSize(cacheType string, entries int) {
	CacheSize.WithLabelValues(cacheType).Set(float64(entries))
}

// RecordCacheEviction records a TTL eviction.
func RecordCacheEviction(cacheType string) {
	CacheEvictions.WithLabelValues(cacheType).Inc()
}

// RecordEventPublished records a successful bet event publish.
func RecordEventPublished() {
	EventsPublished.Inc()
}

// RecordEventPublishFailure records a failed bet event publish.
func RecordEventPublishFailure() {
	EventPublishFailures.Inc()
}

// RecordEventConsumed records one consumed bet event.
func RecordEventConsumed() {
	EventsConsumed.Inc()
}

// RecordEventParseFailed records a bet event that failed to decode.
func RecordEventParseFailed() {
	EventsParseFailed.Inc()
}

// RecordEventProcessing records the handling duration of one bet event.
func RecordEventProcessing(duration time.Duration) {
	EventProcessingDuration.Observe(duration.Seconds())
}

// RecordImportRows records rows ingested for one entity.
func RecordImportRows(entity string, rows int) {
	ImportRowsTotal.WithLabelValues(entity).Add(float64(rows))
}

// RecordImportError records one import failure by category.
func RecordImportError(errorType string) {
	ImportErrors.WithLabelValues(errorType).Inc()
}

// RecordImportRun records a completed import run; successes refresh the
// last-success timestamp.
func RecordImportRun(duration time.Duration, err error) {
	ImportDuration.Observe(duration.Seconds())
	if err == nil {
		ImportLastSuccess.Set(float64(time.Now().Unix()))
	}
}

// SetCircuitBreakerState updates a breaker's state gauge.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCircuitBreakerTransition records a breaker state change.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// RecordLedgerRun records a run report written to the ledger.
func RecordLedgerRun() {
	LedgerRunsRecorded.Inc()
}

// SetLedgerEntries updates the ledger entry-count gauge.
func SetLedgerEntries(entries int) {
	LedgerEntries.Set(float64(entries))
}

// RecordFeedbackScored records one sentiment-scored feedback message.
func RecordFeedbackScored(label string) {
	FeedbackScored.WithLabelValues(label).Inc()
}

// SetAppInfo publishes version information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// SetUptime updates the uptime gauge.
func SetUptime(seconds float64) {
	AppUptime.Set(seconds)
}
