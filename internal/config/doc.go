// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

// Package config loads and validates application configuration.
//
// Configuration is layered with koanf v2. Later layers override earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file, located via CONFIG_FILE or the default search
//     paths (./config.yaml, ./config.yml, /etc/gameedge/config.yaml,
//     /etc/gameedge/config.yml)
//  3. Environment variables
//
// Only environment variables listed in envKeyMappings reach the config;
// unrelated process environment is ignored. String values are converted to
// their target types (int, bool, float, time.Duration) during unmarshal, and
// CORS_ORIGINS accepts a comma-separated list.
//
// Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		// invalid configuration is fatal at startup
//	}
//
// Load returns an error for any out-of-bounds value, naming the offending
// environment variable and its accepted range. Two checks deserve note:
//
//   - The RFM weights (RFM_RECENCY_WEIGHT, RFM_FREQUENCY_WEIGHT,
//     RFM_MONETARY_WEIGHT) must sum to 1.0 within 1e-9. They are never
//     normalized: a bad sum is a fatal startup error, because quietly
//     rescaling would shift every published customer score.
//   - Conditional sections (Events, Import) are validated only when enabled,
//     so a disabled pipeline cannot block startup with stale settings.
//
// The returned Config is immutable after Load and safe for concurrent reads.
package config
