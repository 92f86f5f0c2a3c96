// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

/*
schema.go - Database Schema Management

Tables:
  - customers: registered bettors with lifetime monetary aggregates
  - bets: individual wagers with decimal odds and settlement state
  - feedback: free-text customer feedback with sentiment columns filled
    at insert time
  - segments: one row per segment of the latest analysis run
  - segment_members: segment membership (segment_id, customer_id)

All columns are defined in the initial CREATE TABLE statements; the schema
is the single source of truth and startup never runs migrations. Segments
are fully replaced on every analysis run, so the segments tables never
accumulate history.

Indexes cover the activity aggregation (bets by customer and placed_at),
settlement queries (bets by status), sentiment trends (feedback by
created_at), and segment lookups by run and kind.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements
func getTableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT,
			country TEXT,
			registered_at TIMESTAMP NOT NULL,
			last_login_at TIMESTAMP,
			total_wagered DOUBLE NOT NULL DEFAULT 0,
			total_won DOUBLE NOT NULL DEFAULT 0,
			lifetime_value DOUBLE NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS bets (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			sport TEXT NOT NULL,
			market TEXT NOT NULL,
			amount DOUBLE NOT NULL,
			odds DOUBLE NOT NULL,
			potential_payout DOUBLE,
			status TEXT NOT NULL,
			placed_at TIMESTAMP NOT NULL,
			settled_at TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS feedback (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			channel TEXT NOT NULL,
			message TEXT NOT NULL,
			sentiment_score DOUBLE,
			sentiment_label TEXT,
			aspects TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS segments (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			member_count INTEGER NOT NULL,
			average_lifetime_value DOUBLE,
			average_churn_risk DOUBLE,
			criteria TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS segment_members (
			segment_id TEXT NOT NULL,
			customer_id TEXT NOT NULL,
			PRIMARY KEY (segment_id, customer_id)
		)`,
	}
}

// createIndexes creates indexes for frequent query patterns
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_bets_customer ON bets(customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bets_placed_at ON bets(placed_at)`,
		`CREATE INDEX IF NOT EXISTS idx_bets_status ON bets(status)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_customer ON feedback(customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_created_at ON feedback(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_segments_run ON segments(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_segments_kind ON segments(kind)`,
		`CREATE INDEX IF NOT EXISTS idx_segment_members_segment ON segment_members(segment_id)`,
	}

	for _, idx := range indexes {
		if _, err := db.conn.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", idx, err)
		}
	}

	return nil
}
