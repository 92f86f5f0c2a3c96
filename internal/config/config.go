// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file, and environment variables.
//
// Loading order (koanf v2):
//  1. Defaults: built-in values for every setting
//  2. Config file: optional YAML file (CONFIG_FILE or ./config.yaml)
//  3. Environment variables: override any setting
//
// Sections:
//   - Server: HTTP listener (host, port, timeouts, environment)
//   - API: CORS, rate limiting, pagination bounds
//   - Logging: level and output format
//   - Database: embedded DuckDB (path, pool size, mock seeding)
//   - Ledger: Badger-backed analysis run history
//   - Analysis: RFM weights, activity window, scheduler, clustering mode
//   - Cache: in-memory TTL cache for read endpoints
//   - Events: embedded NATS bet-event pipeline (opt-in)
//   - Import: bulk dataset import limits
//
// Load validates everything and fails startup on the first violation. Config
// is immutable after Load and safe for concurrent reads.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
	Database DatabaseConfig `koanf:"database"`
	Ledger   LedgerConfig   `koanf:"ledger"`
	Analysis AnalysisConfig `koanf:"analysis"`
	Cache    CacheConfig    `koanf:"cache"`
	Events   EventsConfig   `koanf:"events"`
	Import   ImportConfig   `koanf:"import"`
}

// ServerConfig holds the HTTP listener settings.
//
// Environment variables:
//   - HTTP_HOST: bind address (default: 0.0.0.0)
//   - HTTP_PORT: listen port (default: 8080)
//   - HTTP_READ_TIMEOUT: request read timeout (default: 30s)
//   - HTTP_WRITE_TIMEOUT: response write timeout (default: 30s)
//   - HTTP_SHUTDOWN_TIMEOUT: graceful shutdown budget (default: 15s)
//   - ENVIRONMENT: development or production (default: development)
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Address returns the host:port string the HTTP server binds to.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig holds API surface policies.
//
// Environment variables:
//   - CORS_ORIGINS: comma-separated allowed origins (default: *)
//   - RATE_LIMIT_REQUESTS: requests per window per client IP (default: 100)
//   - RATE_LIMIT_WINDOW: rate limit window (default: 1m)
//   - RATE_LIMIT_DISABLED: disable rate limiting entirely (default: false)
//   - API_DEFAULT_PAGE_SIZE: list page size when none requested (default: 20)
//   - API_MAX_PAGE_SIZE: largest honored page size (default: 100)
type APIConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	DefaultPageSize   int           `koanf:"default_page_size"`
	MaxPageSize       int           `koanf:"max_page_size"`
}

// LoggingConfig controls log output.
//
// Environment variables:
//   - LOG_LEVEL: trace, debug, info, warn, or error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DatabaseConfig holds the embedded DuckDB settings. An empty path runs the
// database fully in-memory, which is the default for local development.
//
// Environment variables:
//   - DUCKDB_PATH: database file path, empty for in-memory (default: empty)
//   - DUCKDB_MAX_CONNS: sql.DB pool size (default: 4)
//   - SEED_MOCK_DATA: seed a deterministic demo dataset at startup (default: false)
type DatabaseConfig struct {
	Path         string `koanf:"path"`
	MaxConns     int    `koanf:"max_conns"`
	SeedMockData bool   `koanf:"seed_mock_data"`
}

// LedgerConfig holds the Badger run-ledger settings. An empty path runs the
// ledger in-memory; run history then dies with the process.
//
// Environment variables:
//   - RUNLEDGER_PATH: ledger directory, empty for in-memory (default: empty)
//   - RUNLEDGER_RETENTION_DAYS: run record TTL in days (default: 30)
type LedgerConfig struct {
	Path          string `koanf:"path"`
	RetentionDays int    `koanf:"retention_days"`
}

// AnalysisConfig drives the analytics engine and the periodic scheduler.
//
// The three weights blend the ordinal recency/frequency/monetary scores into
// the composite customer score and MUST sum to 1.0. Startup fails otherwise;
// the weights are never silently normalized because that would shift every
// published score without the operator asking for it.
//
// Environment variables:
//   - RFM_RECENCY_WEIGHT: recency share of the composite (default: 0.3)
//   - RFM_FREQUENCY_WEIGHT: frequency share (default: 0.3)
//   - RFM_MONETARY_WEIGHT: monetary share (default: 0.4)
//   - ANALYSIS_WINDOW_DAYS: activity aggregation window (default: 90)
//   - ANALYSIS_ON_STARTUP: run a full analysis at boot (default: false)
//   - ANALYSIS_INTERVAL: periodic re-analysis interval (default: 24h)
//   - ANALYSIS_RUN_TIMEOUT: budget for a single run (default: 5m)
//   - ANALYSIS_CLUSTERING_METHOD: partition or density (default: partition)
//   - CHURN_MODEL_SOURCE: retrain is the only implemented source; the knob
//     exists so persisted models can slot in later (default: retrain)
type AnalysisConfig struct {
	RecencyWeight   float64 `koanf:"recency_weight"`
	FrequencyWeight float64 `koanf:"frequency_weight"`
	MonetaryWeight  float64 `koanf:"monetary_weight"`

	WindowDays       int           `koanf:"window_days"`
	RunOnStartup     bool          `koanf:"run_on_startup"`
	RunInterval      time.Duration `koanf:"run_interval"`
	RunTimeout       time.Duration `koanf:"run_timeout"`
	ClusteringMethod string        `koanf:"clustering_method"`
	ChurnModelSource string        `koanf:"churn_model_source"`
}

// CacheConfig holds the read-endpoint TTL cache settings.
//
// Environment variables:
//   - CACHE_TTL: entry lifetime (default: 5m)
//   - CACHE_MAX_ENTRIES: eviction threshold (default: 1024)
type CacheConfig struct {
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int           `koanf:"max_entries"`
}

// EventsConfig holds the embedded NATS bet-event pipeline settings. The
// pipeline is opt-in: nothing broker-related starts unless Enabled is true.
//
// Environment variables:
//   - EVENTS_ENABLED: start the embedded broker and consumers (default: false)
//   - NATS_PORT: embedded server client port (default: 4222)
//   - NATS_STORE_DIR: JetStream storage directory (default: data/nats)
//   - NATS_MAX_MEMORY: JetStream memory cap in bytes (default: 256MB)
//   - NATS_MAX_STORE: JetStream disk cap in bytes (default: 1GB)
//   - EVENTS_SUBSCRIBERS: consumer goroutines (default: 4)
type EventsConfig struct {
	Enabled     bool   `koanf:"enabled"`
	NATSPort    int    `koanf:"nats_port"`
	StoreDir    string `koanf:"store_dir"`
	MaxMemory   int64  `koanf:"max_memory"`
	MaxStore    int64  `koanf:"max_store"`
	Subscribers int    `koanf:"subscribers"`
}

// ImportConfig bounds the bulk import endpoint.
//
// Environment variables:
//   - IMPORT_ENABLED: expose POST /api/v1/import (default: true)
//   - IMPORT_MAX_BODY_BYTES: inline payload and remote fetch cap (default: 32MB)
//   - IMPORT_ROWS_PER_SECOND: insert pacing (default: 5000)
//   - IMPORT_FETCH_TIMEOUT: remote source_url fetch budget (default: 30s)
type ImportConfig struct {
	Enabled       bool          `koanf:"enabled"`
	MaxBodyBytes  int64         `koanf:"max_body_bytes"`
	RowsPerSecond int           `koanf:"rows_per_second"`
	FetchTimeout  time.Duration `koanf:"fetch_timeout"`
}
