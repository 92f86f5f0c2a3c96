// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package config

import (
	"strings"
	"testing"
	"time"
)

// TestValidateDefaults verifies the built-in defaults pass validation
func TestValidateDefaults(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() on defaults = %v, want nil", err)
	}
}

// TestValidateWeights exercises the RFM weight sum check
func TestValidateWeights(t *testing.T) {
	tests := []struct {
		name    string
		r, f, m float64
		wantErr bool
	}{
		{"default split", 0.3, 0.3, 0.4, false},
		{"two-way split", 0.5, 0.5, 0.0, false},
		{"monetary heavy", 0.25, 0.25, 0.5, false},
		{"sum below one", 0.3, 0.3, 0.3, true},
		{"sum above one", 0.4, 0.4, 0.4, true},
		{"negative weight", -0.1, 0.5, 0.6, true},
		{"weight above one", 1.1, 0.0, 0.0, true},
		{"drift within tolerance", 0.3, 0.3, 0.4 + 1e-10, false},
		{"drift beyond tolerance", 0.3, 0.3, 0.4 + 1e-6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Analysis.RecencyWeight = tt.r
			cfg.Analysis.FrequencyWeight = tt.f
			cfg.Analysis.MonetaryWeight = tt.m

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("Validate() with weights %v/%v/%v = nil, want error", tt.r, tt.f, tt.m)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() with weights %v/%v/%v = %v, want nil", tt.r, tt.f, tt.m, err)
			}
		})
	}
}

// TestValidateWeightsErrorNamesVariables verifies the weight sum error is
// actionable: it must name the env vars and say the weights are not rescaled.
func TestValidateWeightsErrorNamesVariables(t *testing.T) {
	cfg := defaultConfig()
	cfg.Analysis.MonetaryWeight = 0.5 // sum 1.1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want weight sum error")
	}
	msg := err.Error()
	for _, want := range []string{"RFM_RECENCY_WEIGHT", "RFM_FREQUENCY_WEIGHT", "RFM_MONETARY_WEIGHT", "sum to 1.0", "never normalized"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

// TestValidateBounds exercises per-section range checks through single-field
// mutations of an otherwise valid config.
func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		// Server
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"port too high", func(c *Config) { c.Server.Port = 65536 }, "HTTP_PORT"},
		{"read timeout zero", func(c *Config) { c.Server.ReadTimeout = 0 }, "HTTP_READ_TIMEOUT"},
		{"write timeout too long", func(c *Config) { c.Server.WriteTimeout = 11 * time.Minute }, "HTTP_WRITE_TIMEOUT"},
		{"shutdown timeout too long", func(c *Config) { c.Server.ShutdownTimeout = 6 * time.Minute }, "HTTP_SHUTDOWN_TIMEOUT"},

		// API
		{"rate limit zero", func(c *Config) { c.API.RateLimitRequests = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate window zero", func(c *Config) { c.API.RateLimitWindow = 0 }, "RATE_LIMIT_WINDOW"},
		{"rate window too long", func(c *Config) { c.API.RateLimitWindow = 2 * time.Hour }, "RATE_LIMIT_WINDOW"},
		{"max page size too large", func(c *Config) { c.API.MaxPageSize = 1001 }, "API_MAX_PAGE_SIZE"},
		{"default page size zero", func(c *Config) { c.API.DefaultPageSize = 0 }, "API_DEFAULT_PAGE_SIZE"},
		{"default page above max", func(c *Config) { c.API.DefaultPageSize = 101 }, "API_DEFAULT_PAGE_SIZE"},

		// Database
		{"pool size zero", func(c *Config) { c.Database.MaxConns = 0 }, "DUCKDB_MAX_CONNS"},
		{"pool size too large", func(c *Config) { c.Database.MaxConns = 65 }, "DUCKDB_MAX_CONNS"},

		// Ledger
		{"retention zero", func(c *Config) { c.Ledger.RetentionDays = 0 }, "RUNLEDGER_RETENTION_DAYS"},
		{"retention too long", func(c *Config) { c.Ledger.RetentionDays = 3651 }, "RUNLEDGER_RETENTION_DAYS"},

		// Analysis
		{"window zero", func(c *Config) { c.Analysis.WindowDays = 0 }, "ANALYSIS_WINDOW_DAYS"},
		{"interval too short", func(c *Config) { c.Analysis.RunInterval = 30 * time.Second }, "ANALYSIS_INTERVAL"},
		{"run timeout too long", func(c *Config) { c.Analysis.RunTimeout = 2 * time.Hour }, "ANALYSIS_RUN_TIMEOUT"},
		{"unknown clustering method", func(c *Config) { c.Analysis.ClusteringMethod = "spectral" }, "ANALYSIS_CLUSTERING_METHOD"},
		{"empty clustering method", func(c *Config) { c.Analysis.ClusteringMethod = "" }, "ANALYSIS_CLUSTERING_METHOD"},
		{"unknown churn source", func(c *Config) { c.Analysis.ChurnModelSource = "persisted" }, "CHURN_MODEL_SOURCE"},

		// Cache
		{"cache ttl zero", func(c *Config) { c.Cache.TTL = 0 }, "CACHE_TTL"},
		{"cache ttl too long", func(c *Config) { c.Cache.TTL = 25 * time.Hour }, "CACHE_TTL"},
		{"cache entries zero", func(c *Config) { c.Cache.MaxEntries = 0 }, "CACHE_MAX_ENTRIES"},

		// Logging
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"empty log level", func(c *Config) { c.Logging.Level = "" }, "LOG_LEVEL"},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() = nil, want error naming %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want mention of %s", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestValidateAcceptsEdgeValues verifies the inclusive ends of the ranges
func TestValidateAcceptsEdgeValues(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port 1", func(c *Config) { c.Server.Port = 1 }},
		{"port 65535", func(c *Config) { c.Server.Port = 65535 }},
		{"max pool size", func(c *Config) { c.Database.MaxConns = 64 }},
		{"default page equals max", func(c *Config) { c.API.DefaultPageSize = 100 }},
		{"density clustering", func(c *Config) { c.Analysis.ClusteringMethod = "density" }},
		{"empty log format", func(c *Config) { c.Logging.Format = "" }},
		{"minute interval", func(c *Config) { c.Analysis.RunInterval = time.Minute }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

// TestValidateRateLimitsSkippedWhenDisabled verifies disabling rate limits
// bypasses the request and window bounds.
func TestValidateRateLimitsSkippedWhenDisabled(t *testing.T) {
	cfg := defaultConfig()
	cfg.API.RateLimitDisabled = true
	cfg.API.RateLimitRequests = 0
	cfg.API.RateLimitWindow = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with rate limiting disabled = %v, want nil", err)
	}
}

// TestValidateEventsOnlyWhenEnabled verifies the broker section is checked
// only when the pipeline is on.
func TestValidateEventsOnlyWhenEnabled(t *testing.T) {
	t.Run("disabled section ignores bad values", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Events.Enabled = false
		cfg.Events.NATSPort = 0
		cfg.Events.StoreDir = ""
		cfg.Events.MaxMemory = 0
		cfg.Events.Subscribers = 0

		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() with events disabled = %v, want nil", err)
		}
	})

	t.Run("enabled defaults are valid", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Events.Enabled = true
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() with events enabled = %v, want nil", err)
		}
	})

	enabled := func(mutate func(c *Config)) *Config {
		cfg := defaultConfig()
		cfg.Events.Enabled = true
		mutate(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{"bad port", enabled(func(c *Config) { c.Events.NATSPort = 0 }), "NATS_PORT"},
		{"missing store dir", enabled(func(c *Config) { c.Events.StoreDir = "" }), "NATS_STORE_DIR"},
		{"memory too small", enabled(func(c *Config) { c.Events.MaxMemory = 1 << 20 }), "NATS_MAX_MEMORY"},
		{"store too small", enabled(func(c *Config) { c.Events.MaxStore = 1 << 20 }), "NATS_MAX_STORE"},
		{"zero subscribers", enabled(func(c *Config) { c.Events.Subscribers = 0 }), "EVENTS_SUBSCRIBERS"},
		{"too many subscribers", enabled(func(c *Config) { c.Events.Subscribers = 33 }), "EVENTS_SUBSCRIBERS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() = nil, want error naming %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want mention of %s", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestValidateImportOnlyWhenEnabled verifies the import section is checked
// only when the endpoint is exposed.
func TestValidateImportOnlyWhenEnabled(t *testing.T) {
	t.Run("disabled section ignores bad values", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Import.Enabled = false
		cfg.Import.MaxBodyBytes = 0
		cfg.Import.RowsPerSecond = 0
		cfg.Import.FetchTimeout = 0

		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() with import disabled = %v, want nil", err)
		}
	})

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"body cap too small", func(c *Config) { c.Import.MaxBodyBytes = 100 }, "IMPORT_MAX_BODY_BYTES"},
		{"body cap too large", func(c *Config) { c.Import.MaxBodyBytes = 2 << 30 }, "IMPORT_MAX_BODY_BYTES"},
		{"zero pacing", func(c *Config) { c.Import.RowsPerSecond = 0 }, "IMPORT_ROWS_PER_SECOND"},
		{"fetch timeout too long", func(c *Config) { c.Import.FetchTimeout = 11 * time.Minute }, "IMPORT_FETCH_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() = nil, want error naming %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want mention of %s", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestEnvironmentHelpers exercises IsProduction and IsDevelopment
func TestEnvironmentHelpers(t *testing.T) {
	tests := []struct {
		env  string
		prod bool
		dev  bool
	}{
		{"production", true, false},
		{"prod", true, false},
		{"PRODUCTION", true, false},
		{"development", false, true},
		{"dev", false, true},
		{"", false, true},
		{"staging", false, false},
	}

	for _, tt := range tests {
		t.Run("env_"+tt.env, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Server.Environment = tt.env

			if got := cfg.IsProduction(); got != tt.prod {
				t.Errorf("IsProduction() with %q = %v, want %v", tt.env, got, tt.prod)
			}
			if got := cfg.IsDevelopment(); got != tt.dev {
				t.Errorf("IsDevelopment() with %q = %v, want %v", tt.env, got, tt.dev)
			}
		})
	}
}

// TestServerAddress verifies the bind address formatting
func TestServerAddress(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 9090}
	if got := s.Address(); got != "127.0.0.1:9090" {
		t.Errorf("Address() = %q, want 127.0.0.1:9090", got)
	}
}
