// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/models"
)

// UpsertCustomer inserts a customer or updates the existing row. Monetary
// aggregates are taken from the struct as-is; the bet insert path maintains
// them incrementally.
func (db *DB) UpsertCustomer(ctx context.Context, c *models.Customer) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.RegisteredAt.IsZero() {
		c.RegisteredAt = time.Now().UTC()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO customers (
		id, username, email, country, registered_at, last_login_at,
		total_wagered, total_won, lifetime_value, is_active, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		username = EXCLUDED.username,
		email = EXCLUDED.email,
		country = EXCLUDED.country,
		last_login_at = EXCLUDED.last_login_at,
		total_wagered = EXCLUDED.total_wagered,
		total_won = EXCLUDED.total_won,
		lifetime_value = EXCLUDED.lifetime_value,
		is_active = EXCLUDED.is_active`

	_, err := db.conn.ExecContext(ctx, query,
		c.ID, c.Username, c.Email, c.Country, c.RegisteredAt, c.LastLoginAt,
		c.TotalWagered, c.TotalWon, c.LifetimeValue, c.IsActive, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert customer %s: %w", c.ID, err)
	}
	return nil
}

// UpsertCustomers upserts a batch atomically and returns the number of rows
// written. Used by the importer and the mock data seeder.
func (db *DB) UpsertCustomers(ctx context.Context, customers []models.Customer) (int, error) {
	if len(customers) == 0 {
		return 0, nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	query := `INSERT INTO customers (
		id, username, email, country, registered_at, last_login_at,
		total_wagered, total_won, lifetime_value, is_active, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		username = EXCLUDED.username,
		email = EXCLUDED.email,
		country = EXCLUDED.country,
		last_login_at = EXCLUDED.last_login_at,
		total_wagered = EXCLUDED.total_wagered,
		total_won = EXCLUDED.total_won,
		lifetime_value = EXCLUDED.lifetime_value,
		is_active = EXCLUDED.is_active`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare customer upsert: %w", err)
	}
	defer closeWithLog(stmt, "customer upsert statement")

	written := 0
	for i := range customers {
		c := &customers[i]
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.RegisteredAt.IsZero() {
			c.RegisteredAt = time.Now().UTC()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now().UTC()
		}
		if _, err = stmt.ExecContext(ctx,
			c.ID, c.Username, c.Email, c.Country, c.RegisteredAt, c.LastLoginAt,
			c.TotalWagered, c.TotalWon, c.LifetimeValue, c.IsActive, c.CreatedAt,
		); err != nil {
			return 0, fmt.Errorf("failed to upsert customer %s: %w", c.ID, err)
		}
		written++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit customer batch: %w", err)
	}
	return written, nil
}

// GetCustomer retrieves one customer by id. Returns ErrNotFound for unknown
// ids.
func (db *DB) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT
		id, username, email, country, registered_at, last_login_at,
		total_wagered, total_won, lifetime_value, is_active, created_at
	FROM customers WHERE id = ?`

	var (
		c         models.Customer
		email     sql.NullString
		country   sql.NullString
		lastLogin sql.NullTime
	)
	err := db.conn.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Username, &email, &country, &c.RegisteredAt, &lastLogin,
		&c.TotalWagered, &c.TotalWon, &c.LifetimeValue, &c.IsActive, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %s: %w", id, err)
	}

	if email.Valid {
		c.Email = &email.String
	}
	if country.Valid {
		c.Country = &country.String
	}
	if lastLogin.Valid {
		c.LastLoginAt = &lastLogin.Time
	}
	return &c, nil
}

// CustomerExists reports whether the id is present, without materializing
// the row.
func (db *DB) CustomerExists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var one int
	err := db.conn.QueryRowContext(ctx, "SELECT 1 FROM customers WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check customer %s: %w", id, err)
	}
	return true, nil
}
