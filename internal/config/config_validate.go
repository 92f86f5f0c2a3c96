// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package config

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateLedger(); err != nil {
		return err
	}

	if err := c.validateAnalysis(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateEvents(); err != nil {
		return err
	}

	if err := c.validateImport(); err != nil {
		return err
	}

	return c.validateLogging()
}

// Server bound constants
const (
	minServerTimeout   = time.Second
	maxServerTimeout   = 10 * time.Minute
	maxShutdownTimeout = 5 * time.Minute
)

// validateServer validates the HTTP listener configuration
func (c *Config) validateServer() error {
	validators := []func() error{
		c.validateServerPort,
		c.validateServerTimeouts,
	}

	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

// validateServerPort validates the HTTP listen port
func (c *Config) validateServerPort() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

// validateServerTimeouts validates read, write, and shutdown timeouts
func (c *Config) validateServerTimeouts() error {
	if c.Server.ReadTimeout < minServerTimeout || c.Server.ReadTimeout > maxServerTimeout {
		return fmt.Errorf("HTTP_READ_TIMEOUT must be between %v and %v", minServerTimeout, maxServerTimeout)
	}
	if c.Server.WriteTimeout < minServerTimeout || c.Server.WriteTimeout > maxServerTimeout {
		return fmt.Errorf("HTTP_WRITE_TIMEOUT must be between %v and %v", minServerTimeout, maxServerTimeout)
	}
	if c.Server.ShutdownTimeout < minServerTimeout || c.Server.ShutdownTimeout > maxShutdownTimeout {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be between %v and %v", minServerTimeout, maxShutdownTimeout)
	}
	return nil
}

// Rate limit and pagination bound constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
	maxPageSizeCeiling   = 1000
)

// validateAPI validates rate limiting and pagination configuration
func (c *Config) validateAPI() error {
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	return c.validatePageSizes()
}

// validateRateLimits validates rate limiting bounds. Skipped entirely when
// rate limiting is disabled.
func (c *Config) validateRateLimits() error {
	if c.API.RateLimitDisabled {
		return nil
	}

	if c.API.RateLimitRequests < minRateLimitRequests || c.API.RateLimitRequests > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.API.RateLimitWindow < minRateLimitWindow || c.API.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validatePageSizes validates pagination bounds
func (c *Config) validatePageSizes() error {
	if c.API.MaxPageSize < 1 || c.API.MaxPageSize > maxPageSizeCeiling {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be between 1 and %d", maxPageSizeCeiling)
	}
	if c.API.DefaultPageSize < 1 || c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be between 1 and API_MAX_PAGE_SIZE (%d)", c.API.MaxPageSize)
	}
	return nil
}

// Database bound constants
const (
	minDatabaseConns = 1
	maxDatabaseConns = 64
)

// validateDatabase validates the DuckDB pool configuration
func (c *Config) validateDatabase() error {
	if c.Database.MaxConns < minDatabaseConns || c.Database.MaxConns > maxDatabaseConns {
		return fmt.Errorf("DUCKDB_MAX_CONNS must be between %d and %d", minDatabaseConns, maxDatabaseConns)
	}
	return nil
}

// Ledger bound constants
const (
	minLedgerRetentionDays = 1
	maxLedgerRetentionDays = 3650
)

// validateLedger validates the run-ledger configuration
func (c *Config) validateLedger() error {
	if c.Ledger.RetentionDays < minLedgerRetentionDays || c.Ledger.RetentionDays > maxLedgerRetentionDays {
		return fmt.Errorf("RUNLEDGER_RETENTION_DAYS must be between %d and %d", minLedgerRetentionDays, maxLedgerRetentionDays)
	}
	return nil
}

// Analysis bound constants
const (
	// weightSumTolerance bounds floating-point drift in the weight sum check.
	// Anything beyond it is a real misconfiguration, not rounding.
	weightSumTolerance = 1e-9

	minAnalysisWindowDays = 1
	maxAnalysisWindowDays = 3650
	minAnalysisInterval   = time.Minute
	maxAnalysisInterval   = 30 * 24 * time.Hour
	minAnalysisRunTimeout = time.Second
	maxAnalysisRunTimeout = time.Hour
)

// validClusteringMethods defines the allowed clustering methods
var validClusteringMethods = map[string]bool{
	"partition": true,
	"density":   true,
}

// validChurnModelSources defines the allowed churn model sources
var validChurnModelSources = map[string]bool{
	"retrain": true,
}

// validateAnalysis validates the analytics engine configuration
func (c *Config) validateAnalysis() error {
	validators := []func() error{
		c.validateAnalysisWeights,
		c.validateAnalysisWindow,
		c.validateAnalysisScheduler,
		c.validateClusteringMethod,
		c.validateChurnModelSource,
	}

	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

// validateAnalysisWeights validates the RFM composite weights. Each weight
// must sit in [0, 1] and the three must sum to exactly 1.0. A bad sum is
// fatal rather than normalized: silent rescaling would shift every published
// customer score behind the operator's back.
func (c *Config) validateAnalysisWeights() error {
	weights := map[string]float64{
		"RFM_RECENCY_WEIGHT":   c.Analysis.RecencyWeight,
		"RFM_FREQUENCY_WEIGHT": c.Analysis.FrequencyWeight,
		"RFM_MONETARY_WEIGHT":  c.Analysis.MonetaryWeight,
	}
	for name, w := range weights {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}

	sum := c.Analysis.RecencyWeight + c.Analysis.FrequencyWeight + c.Analysis.MonetaryWeight
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("RFM_RECENCY_WEIGHT, RFM_FREQUENCY_WEIGHT, and RFM_MONETARY_WEIGHT must sum to 1.0 (got %.12f); weights are never normalized automatically", sum)
	}
	return nil
}

// validateAnalysisWindow validates the activity aggregation window
func (c *Config) validateAnalysisWindow() error {
	if c.Analysis.WindowDays < minAnalysisWindowDays || c.Analysis.WindowDays > maxAnalysisWindowDays {
		return fmt.Errorf("ANALYSIS_WINDOW_DAYS must be between %d and %d", minAnalysisWindowDays, maxAnalysisWindowDays)
	}
	return nil
}

// validateAnalysisScheduler validates the periodic run settings
func (c *Config) validateAnalysisScheduler() error {
	if c.Analysis.RunInterval < minAnalysisInterval || c.Analysis.RunInterval > maxAnalysisInterval {
		return fmt.Errorf("ANALYSIS_INTERVAL must be between %v and %v", minAnalysisInterval, maxAnalysisInterval)
	}
	if c.Analysis.RunTimeout < minAnalysisRunTimeout || c.Analysis.RunTimeout > maxAnalysisRunTimeout {
		return fmt.Errorf("ANALYSIS_RUN_TIMEOUT must be between %v and %v", minAnalysisRunTimeout, maxAnalysisRunTimeout)
	}
	return nil
}

// validateClusteringMethod checks the clustering method setting
func (c *Config) validateClusteringMethod() error {
	if !validClusteringMethods[c.Analysis.ClusteringMethod] {
		return fmt.Errorf("ANALYSIS_CLUSTERING_METHOD must be one of: partition, density")
	}
	return nil
}

// validateChurnModelSource checks the churn model source setting
func (c *Config) validateChurnModelSource() error {
	if !validChurnModelSources[c.Analysis.ChurnModelSource] {
		return fmt.Errorf("CHURN_MODEL_SOURCE must be: retrain")
	}
	return nil
}

// Cache bound constants
const (
	minCacheTTL     = time.Second
	maxCacheTTL     = 24 * time.Hour
	minCacheEntries = 1
	maxCacheEntries = 1000000
)

// validateCache validates the TTL cache configuration
func (c *Config) validateCache() error {
	if c.Cache.TTL < minCacheTTL || c.Cache.TTL > maxCacheTTL {
		return fmt.Errorf("CACHE_TTL must be between %v and %v", minCacheTTL, maxCacheTTL)
	}
	if c.Cache.MaxEntries < minCacheEntries || c.Cache.MaxEntries > maxCacheEntries {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be between %d and %d", minCacheEntries, maxCacheEntries)
	}
	return nil
}

// Events bound constants
const (
	eventsMinMemory      = 64 * 1024 * 1024  // 64MB
	eventsMinStore       = 100 * 1024 * 1024 // 100MB
	eventsMaxSubscribers = 32
)

// validateEvents validates the bet-event pipeline configuration (only if enabled)
func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}

	validators := []func() error{
		c.validateEventsPort,
		c.validateEventsStoreDir,
		c.validateEventsMemory,
		c.validateEventsStore,
		c.validateEventsSubscribers,
	}

	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

// validateEventsPort validates the embedded broker client port
func (c *Config) validateEventsPort() error {
	if c.Events.NATSPort < 1 || c.Events.NATSPort > 65535 {
		return fmt.Errorf("NATS_PORT must be between 1 and 65535")
	}
	return nil
}

// validateEventsStoreDir validates the JetStream storage directory
func (c *Config) validateEventsStoreDir() error {
	if c.Events.StoreDir == "" {
		return fmt.Errorf("NATS_STORE_DIR is required when EVENTS_ENABLED=true")
	}
	return nil
}

// validateEventsMemory validates the JetStream memory cap
func (c *Config) validateEventsMemory() error {
	if c.Events.MaxMemory < eventsMinMemory {
		return fmt.Errorf("NATS_MAX_MEMORY must be at least 64MB (67108864 bytes)")
	}
	return nil
}

// validateEventsStore validates the JetStream disk cap
func (c *Config) validateEventsStore() error {
	if c.Events.MaxStore < eventsMinStore {
		return fmt.Errorf("NATS_MAX_STORE must be at least 100MB (104857600 bytes)")
	}
	return nil
}

// validateEventsSubscribers validates the consumer goroutine count
func (c *Config) validateEventsSubscribers() error {
	if c.Events.Subscribers < 1 || c.Events.Subscribers > eventsMaxSubscribers {
		return fmt.Errorf("EVENTS_SUBSCRIBERS must be between 1 and %d", eventsMaxSubscribers)
	}
	return nil
}

// Import bound constants
const (
	importMinBodyBytes  = 1024
	importMaxBodyBytes  = 1 << 30 // 1GB
	importMaxRowsPerSec = 1000000
	importMinFetch      = time.Second
	importMaxFetch      = 10 * time.Minute
)

// validateImport validates the bulk import configuration (only if enabled)
func (c *Config) validateImport() error {
	if !c.Import.Enabled {
		return nil
	}

	if c.Import.MaxBodyBytes < importMinBodyBytes || c.Import.MaxBodyBytes > importMaxBodyBytes {
		return fmt.Errorf("IMPORT_MAX_BODY_BYTES must be between %d and %d", importMinBodyBytes, int64(importMaxBodyBytes))
	}
	if c.Import.RowsPerSecond < 1 || c.Import.RowsPerSecond > importMaxRowsPerSec {
		return fmt.Errorf("IMPORT_ROWS_PER_SECOND must be between 1 and %d", importMaxRowsPerSec)
	}
	if c.Import.FetchTimeout < importMinFetch || c.Import.FetchTimeout > importMaxFetch {
		return fmt.Errorf("IMPORT_FETCH_TIMEOUT must be between %v and %v", importMinFetch, importMaxFetch)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
// Production mode is determined by the ENVIRONMENT environment variable.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}
