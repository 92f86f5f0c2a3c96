// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/gameedge/intelligence/internal/models"
)

// GetDashboardStats assembles the storage-derived dashboard overview:
// customer and bet counts, monetary aggregates, and the stored segment
// distribution. RiskDistribution is left empty; the API layer fills it from
// the churn stage because risk tiers are computed, not stored.
func (db *DB) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	stats := &models.DashboardStats{
		SegmentDistribution: make(map[string]int),
		RiskDistribution:    make(map[string]int),
		GeneratedAt:         time.Now().UTC(),
	}

	query := `SELECT
		COUNT(*) AS total_customers,
		SUM(CASE WHEN is_active THEN 1 ELSE 0 END) AS active_customers,
		COALESCE(SUM(total_wagered), 0) AS total_wagered,
		COALESCE(AVG(lifetime_value), 0) AS avg_lifetime_value
	FROM customers`

	err := db.conn.QueryRowContext(ctx, query).Scan(
		&stats.TotalCustomers, &stats.ActiveCustomers,
		&stats.TotalWagered, &stats.AvgLifetimeVal,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer stats: %w", err)
	}

	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM bets").Scan(&stats.TotalBets); err != nil {
		return nil, fmt.Errorf("failed to count bets: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, "SELECT name, member_count FROM segments ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query segment distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name  string
			count int
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("failed to scan segment distribution: %w", err)
		}
		stats.SegmentDistribution[name] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating segment distribution: %w", err)
	}

	return stats, nil
}

// GetRecordCounts returns row counts for the main tables, used by health
// reporting and backup verification.
func (db *DB) GetRecordCounts(ctx context.Context) (customers, bets, feedback int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err = db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&customers); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count customers: %w", err)
	}
	if err = db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM bets").Scan(&bets); err != nil {
		return customers, 0, 0, fmt.Errorf("failed to count bets: %w", err)
	}
	if err = db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM feedback").Scan(&feedback); err != nil {
		return customers, bets, 0, fmt.Errorf("failed to count feedback: %w", err)
	}
	return customers, bets, feedback, nil
}
