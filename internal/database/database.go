// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/gameedge/intelligence/internal/config"
	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/sentiment"
)

// DB wraps the DuckDB connection and provides data access for customers,
// bets, feedback, and segment records.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig

	// windowDays bounds the frequency/monetary aggregation window for
	// activity rows.
	windowDays int

	// scorer runs synchronously on the feedback insert path.
	scorer *sentiment.Analyzer
}

// New opens (or creates) the database and initializes the schema. An empty
// cfg.Path opens an in-memory database, used by tests and ephemeral deploys.
// windowDays is the analysis window applied by GetCustomerActivity.
func New(cfg *config.DatabaseConfig, windowDays int) (*DB, error) {
	dsn := cfg.Path
	if dsn == "" {
		dsn = ":memory:"
		logging.Info().Msg("No database path configured, using in-memory DuckDB")
	} else {
		// Ensure the parent directory exists before DuckDB tries to create
		// the file. 0750 per gosec G301.
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	// Disable extension auto-install/auto-load: every query in this package
	// runs on DuckDB core, and auto-install can hang in restricted networks.
	connStr := fmt.Sprintf("%s?access_mode=read_write&autoinstall_known_extensions=false&autoload_known_extensions=false", dsn)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:       conn,
		cfg:        cfg,
		windowDays: windowDays,
		scorer:     sentiment.NewAnalyzer(),
	}

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return db, nil
}

// configureConnectionPool applies the configured connection limits. DuckDB
// handles concurrent readers on one process well; the cap mostly bounds
// writer contention.
func (db *DB) configureConnectionPool() {
	maxConns := db.cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 4
	}
	db.conn.SetMaxOpenConns(maxConns)
	db.conn.SetMaxIdleConns(maxConns)
	db.conn.SetConnMaxLifetime(0)
}

// initialize creates tables and indexes.
func (db *DB) initialize() error {
	if err := db.createTables(); err != nil {
		return err
	}
	if err := db.createIndexes(); err != nil {
		return err
	}

	// Flush the WAL after schema creation so a crash before the first
	// checkpoint does not replay CREATE TABLE statements on next startup.
	if db.cfg.Path != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := db.Checkpoint(ctx); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint after schema initialization")
		}
	}

	return nil
}

// Close checkpoints file-backed databases and closes the connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	if db.cfg.Path != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := db.Checkpoint(ctx); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()
	}

	return db.conn.Close()
}

// Ping checks if the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Conn returns the underlying SQL connection for packages that need direct
// access, such as the event consumer's bet inserts.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Checkpoint forces a WAL checkpoint.
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// Path returns the database file path, empty for in-memory databases.
func (db *DB) Path() string {
	return db.cfg.Path
}

// ensureContext creates a context with a 30-second timeout if none provided,
// so no query can hang indefinitely.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}
	return ctx, func() {}
}
