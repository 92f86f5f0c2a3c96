// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

// Package database provides the DuckDB data layer for customers, bets,
// feedback, and segment records.
//
// # Overview
//
// The package owns the schema, the write paths (customer upserts, bet
// batches with monetary aggregate maintenance, sentiment-scored feedback
// inserts), and the read-side aggregations the analytics pipeline and HTTP
// API consume.
//
// # Architecture
//
// The package is organized into domain-specific files:
//
//   - database.go: connection lifecycle (open, pool sizing, checkpoint, close)
//   - schema.go: table and index creation; the schema is defined once, no
//     startup migrations
//   - customers.go: customer upserts and lookups
//   - bets.go: idempotent bet inserts that maintain total_wagered,
//     total_won, and lifetime_value on the customer rows
//   - activity.go: the ActivityRow aggregation feeding analysis runs
//   - segments.go / segments_custom.go: run-scoped segment replacement and
//     ad hoc criteria segments
//   - feedback.go: sentiment-scored feedback inserts and daily trend
//     aggregation
//   - dashboard.go: read-side overview statistics
//   - seed.go: fixed-seed demo dataset
//
// # Database Technology
//
// The package uses DuckDB as its analytics database:
//   - OLAP-optimized for the aggregation-heavy activity and trend queries
//   - Advanced SQL (CTEs, conditional aggregation, DATE_TRUNC)
//   - CGO-based driver (github.com/duckdb/duckdb-go/v2)
//   - In-memory mode (empty DUCKDB_PATH) for tests and ephemeral deploys
//
// No DuckDB extensions are loaded; every query runs on core SQL.
//
// # Concurrency
//
// All exported methods are safe for concurrent use. Batch writes run in
// transactions; every query carries a context deadline (30s default via
// ensureContext).
//
// # Error Handling
//
// Errors are wrapped with fmt.Errorf and %w. Lookups for missing rows
// return ErrNotFound, which the HTTP layer maps to 404 envelopes. Duplicate
// bet ids are skipped, not failed, so redelivered bet events stay
// idempotent.
package database
