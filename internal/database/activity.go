// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gameedge/intelligence/internal/models"
)

// GetCustomerActivity materializes one ActivityRow per customer from the
// bets and customers tables. It implements analytics.ActivitySource.
//
// Feature semantics:
//   - RecencyDays: fractional days since the most recent bet ever placed;
//     nil when the customer has no bets.
//   - Frequency/Monetary: bet count and total stake inside the analysis
//     window; zero (not nil) for customers whose bets all predate the
//     window, nil for customers with no bets at all.
//   - WinRate: won / settled over all settled (won or lost) bets; nil when
//     nothing has settled.
//   - AvgBetSize: mean stake inside the window; nil when the window is
//     empty.
//   - TotalBets: lifetime bet count; nil when the customer has no bets.
//   - LifetimeValue: taken from the customers table, always present.
func (db *DB) GetCustomerActivity(ctx context.Context) ([]models.ActivityRow, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	windowStart := time.Now().UTC().AddDate(0, 0, -db.windowDays)

	query := `
	WITH lifetime AS (
		SELECT
			customer_id,
			MAX(placed_at) AS last_bet_at,
			COUNT(*) AS total_bets
		FROM bets
		GROUP BY customer_id
	),
	windowed AS (
		SELECT
			customer_id,
			COUNT(*) AS window_bets,
			SUM(amount) AS window_wagered,
			AVG(amount) AS avg_bet_size
		FROM bets
		WHERE placed_at >= ?
		GROUP BY customer_id
	),
	settled AS (
		SELECT
			customer_id,
			SUM(CASE WHEN status = 'won' THEN 1 ELSE 0 END) AS won_bets,
			COUNT(*) AS settled_bets
		FROM bets
		WHERE status IN ('won', 'lost')
		GROUP BY customer_id
	)
	SELECT
		c.id,
		CASE WHEN l.last_bet_at IS NULL THEN NULL
		     ELSE (epoch(CURRENT_TIMESTAMP) - epoch(l.last_bet_at)) / 86400.0
		END AS recency_days,
		CASE WHEN l.customer_id IS NULL THEN NULL
		     ELSE COALESCE(w.window_bets, 0)::DOUBLE
		END AS frequency,
		CASE WHEN l.customer_id IS NULL THEN NULL
		     ELSE COALESCE(w.window_wagered, 0)
		END AS monetary,
		CASE WHEN s.settled_bets > 0 THEN s.won_bets::DOUBLE / s.settled_bets
		     ELSE NULL
		END AS win_rate,
		w.avg_bet_size,
		l.total_bets::DOUBLE AS total_bets,
		c.lifetime_value
	FROM customers c
	LEFT JOIN lifetime l ON l.customer_id = c.id
	LEFT JOIN windowed w ON w.customer_id = c.id
	LEFT JOIN settled s ON s.customer_id = c.id
	ORDER BY c.id`

	rows, err := db.conn.QueryContext(ctx, query, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer activity: %w", err)
	}
	defer rows.Close()

	var activity []models.ActivityRow
	for rows.Next() {
		var (
			row                                                       models.ActivityRow
			recency, frequency, monetary, winRate, avgBet, total, ltv sql.NullFloat64
		)
		if err := rows.Scan(&row.CustomerID, &recency, &frequency, &monetary, &winRate, &avgBet, &total, &ltv); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		row.RecencyDays = nullableFloat(recency)
		row.Frequency = nullableFloat(frequency)
		row.Monetary = nullableFloat(monetary)
		row.WinRate = nullableFloat(winRate)
		row.AvgBetSize = nullableFloat(avgBet)
		row.TotalBets = nullableFloat(total)
		row.LifetimeValue = nullableFloat(ltv)
		activity = append(activity, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return activity, nil
}

func nullableFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
