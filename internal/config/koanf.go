// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/gameedge/config.yaml",
	"/etc/gameedge/config.yml",
}

// ConfigFileEnvVar overrides the config file search path.
const ConfigFileEnvVar = "CONFIG_FILE"

// defaultConfig returns a Config with every setting at its built-in default.
// Defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development", // set ENVIRONMENT=production for production checks
		},
		API: APIConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			DefaultPageSize:   20,
			MaxPageSize:       100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Database: DatabaseConfig{
			Path:         "", // empty = in-memory DuckDB
			MaxConns:     4,
			SeedMockData: false,
		},
		Ledger: LedgerConfig{
			Path:          "", // empty = in-memory Badger
			RetentionDays: 30,
		},
		Analysis: AnalysisConfig{
			RecencyWeight:    0.3,
			FrequencyWeight:  0.3,
			MonetaryWeight:   0.4,
			WindowDays:       90,
			RunOnStartup:     false, // opt-in: a cold start should not block on a full run
			RunInterval:      24 * time.Hour,
			RunTimeout:       5 * time.Minute,
			ClusteringMethod: "partition",
			ChurnModelSource: "retrain",
		},
		Cache: CacheConfig{
			TTL:        5 * time.Minute,
			MaxEntries: 1024,
		},
		Events: EventsConfig{
			Enabled:     false, // opt-in only
			NATSPort:    4222,
			StoreDir:    "data/nats",
			MaxMemory:   256 << 20, // 256MB
			MaxStore:    1 << 30,   // 1GB
			Subscribers: 4,
		},
		Import: ImportConfig{
			Enabled:       true,
			MaxBodyBytes:  32 << 20, // 32MB
			RowsPerSecond: 5000,
			FetchTimeout:  30 * time.Second,
		},
	}
}

// Load loads configuration using koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML config file (if one exists)
//  3. Environment variables: override any setting
//
// The returned Config has passed Validate; callers can rely on every bound
// documented in this package.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// Variable names map to koanf paths through envTransformFunc:
	// HTTP_PORT -> server.port, RFM_RECENCY_WEIGHT -> analysis.recency_weight
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Explicit env var beats the search path
	if envPath := os.Getenv(ConfigFileEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths are parsed as comma-separated
// slices when they arrive from the environment as plain strings.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as strings but the config expects
// slices; YAML values are already slices and pass through untouched.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envKeyMappings maps environment variable names (lowercased) to koanf
// config paths. Only listed variables reach the config; everything else in
// the process environment is ignored so unrelated vars cannot clobber
// settings by accident.
var envKeyMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// API
	"cors_origins":          "api.cors_origins",
	"rate_limit_requests":   "api.rate_limit_requests",
	"rate_limit_window":     "api.rate_limit_window",
	"rate_limit_disabled":   "api.rate_limit_disabled",
	"api_default_page_size": "api.default_page_size",
	"api_max_page_size":     "api.max_page_size",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Database
	"duckdb_path":      "database.path",
	"duckdb_max_conns": "database.max_conns",
	"seed_mock_data":   "database.seed_mock_data",

	// Run ledger
	"runledger_path":           "ledger.path",
	"runledger_retention_days": "ledger.retention_days",

	// Analysis
	"rfm_recency_weight":         "analysis.recency_weight",
	"rfm_frequency_weight":       "analysis.frequency_weight",
	"rfm_monetary_weight":        "analysis.monetary_weight",
	"analysis_window_days":       "analysis.window_days",
	"analysis_on_startup":        "analysis.run_on_startup",
	"analysis_interval":          "analysis.run_interval",
	"analysis_run_timeout":       "analysis.run_timeout",
	"analysis_clustering_method": "analysis.clustering_method",
	"churn_model_source":         "analysis.churn_model_source",

	// Cache
	"cache_ttl":         "cache.ttl",
	"cache_max_entries": "cache.max_entries",

	// Events
	"events_enabled":     "events.enabled",
	"nats_port":          "events.nats_port",
	"nats_store_dir":     "events.store_dir",
	"nats_max_memory":    "events.max_memory",
	"nats_max_store":     "events.max_store",
	"events_subscribers": "events.subscribers",

	// Import
	"import_enabled":         "import.enabled",
	"import_max_body_bytes":  "import.max_body_bytes",
	"import_rows_per_second": "import.rows_per_second",
	"import_fetch_timeout":   "import.fetch_timeout",
}

// envTransformFunc transforms environment variable names to koanf config
// paths. Unmapped variables return "" and are dropped by the provider.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DUCKDB_PATH -> database.path
//   - RFM_RECENCY_WEIGHT -> analysis.recency_weight
func envTransformFunc(key string) string {
	return envKeyMappings[strings.ToLower(key)]
}
