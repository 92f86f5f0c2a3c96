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

	"github.com/google/uuid"

	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/models"
)

// aggregateDelta accumulates per-customer monetary deltas for one batch.
type aggregateDelta struct {
	wagered float64
	won     float64
}

// InsertBet inserts one wager and updates the customer's monetary
// aggregates. A duplicate id is skipped and reported with inserted=false so
// redelivered bet events stay idempotent without erroring.
func (db *DB) InsertBet(ctx context.Context, b *models.Bet) (bool, error) {
	inserted, _, err := db.InsertBets(ctx, []models.Bet{*b})
	return inserted > 0, err
}

// InsertBets inserts a batch of wagers atomically, skipping rows whose id
// already exists, and applies the monetary aggregates of the inserted rows
// to the customers table (total_wagered, total_won won-payout, and
// lifetime_value = wagered - won).
func (db *DB) InsertBets(ctx context.Context, bets []models.Bet) (inserted int, duplicates int, err error) {
	if len(bets) == 0 {
		return 0, 0, nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	query := `INSERT INTO bets (
		id, customer_id, sport, market, amount, odds, potential_payout,
		status, placed_at, settled_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO NOTHING`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to prepare bet insert: %w", err)
	}
	defer closeWithLog(stmt, "bet insert statement")

	deltas := make(map[string]*aggregateDelta)
	for i := range bets {
		b := &bets[i]
		normalizeBet(b)

		res, execErr := stmt.ExecContext(ctx,
			b.ID, b.CustomerID, b.Sport, b.Market, b.Amount, b.Odds,
			b.PotentialPayout, b.Status, b.PlacedAt, b.SettledAt,
		)
		if execErr != nil {
			err = fmt.Errorf("failed to insert bet %s: %w", b.ID, execErr)
			return 0, 0, err
		}

		affected, raErr := res.RowsAffected()
		if raErr != nil {
			err = fmt.Errorf("failed to read rows affected for bet %s: %w", b.ID, raErr)
			return 0, 0, err
		}
		if affected == 0 {
			duplicates++
			continue
		}
		inserted++

		d := deltas[b.CustomerID]
		if d == nil {
			d = &aggregateDelta{}
			deltas[b.CustomerID] = d
		}
		d.wagered += b.Amount
		if b.Status == models.BetStatusWon {
			d.won += b.Amount * b.Odds
		}
	}

	if err = applyAggregateDeltas(ctx, tx, deltas); err != nil {
		return 0, 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit bet batch: %w", err)
	}
	return inserted, duplicates, nil
}

// normalizeBet fills derivable fields before insert.
func normalizeBet(b *models.Bet) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = models.BetStatusPending
	}
	if b.PlacedAt.IsZero() {
		b.PlacedAt = time.Now().UTC()
	}
	if b.PotentialPayout == nil {
		payout := b.Amount * b.Odds
		b.PotentialPayout = &payout
	}
	settled := b.Status == models.BetStatusWon || b.Status == models.BetStatusLost
	if settled && b.SettledAt == nil {
		now := time.Now().UTC()
		b.SettledAt = &now
	}
}

// applyAggregateDeltas rolls one batch's per-customer deltas into the
// customers table. RHS expressions see the pre-update row, so the
// lifetime_value expression restates both deltas.
func applyAggregateDeltas(ctx context.Context, tx *sql.Tx, deltas map[string]*aggregateDelta) error {
	if len(deltas) == 0 {
		return nil
	}

	query := `UPDATE customers SET
		total_wagered = total_wagered + ?,
		total_won = total_won + ?,
		lifetime_value = (total_wagered + ?) - (total_won + ?)
	WHERE id = ?`

	for customerID, d := range deltas {
		if _, err := tx.ExecContext(ctx, query, d.wagered, d.won, d.wagered, d.won, customerID); err != nil {
			return fmt.Errorf("failed to update aggregates for customer %s: %w", customerID, err)
		}
	}
	return nil
}
