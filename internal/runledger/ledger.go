// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

// Package runledger archives analysis run reports in BadgerDB.
//
// The ledger is an append-mostly history of what the analytics engine did:
// every completed run is stored under a timestamp-ordered key and expires
// after the configured retention. The API reads the ledger for the engine
// status endpoint and the dashboard's recent-runs panel.
//
// DuckDB stays the system of record for segments; the ledger only answers
// "what ran, when, and how did it go" after the segments table has already
// been replaced by a newer run.
package runledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"

	"github.com/gameedge/intelligence/internal/analytics"
	"github.com/gameedge/intelligence/internal/config"
	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/metrics"
	"github.com/gameedge/intelligence/internal/models"
)

// keyPrefix namespaces run reports. Keys are "run:<unix-nano>:<run-id>" so a
// plain prefix scan yields chronological order and a reverse scan yields
// newest-first without a secondary index.
const keyPrefix = "run:"

// gcDiscardRatio is the value-log rewrite threshold passed to Badger's GC.
const gcDiscardRatio = 0.5

var (
	// ErrLedgerClosed is returned for operations on a closed ledger.
	ErrLedgerClosed = errors.New("run ledger is closed")

	// ErrNilReport is returned when Record is called with a nil report.
	ErrNilReport = errors.New("run report cannot be nil")

	// ErrMissingRunID is returned when a report carries no run ID.
	ErrMissingRunID = errors.New("run report has no run ID")
)

// Ledger stores analysis run reports in an embedded Badger database.
// It satisfies the engine orchestrator's run recorder.
type Ledger struct {
	db       *badger.DB
	ttl      time.Duration
	inMemory bool

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the ledger at the configured path. An empty path
// runs Badger in memory; run history then dies with the process, which is
// fine for development and tests. RetentionDays <= 0 disables expiry.
func Open(cfg *config.LedgerConfig) (*Ledger, error) {
	inMemory := cfg.Path == ""

	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	// Badger's own logger is chatty at INFO; runs are logged by the
	// orchestrator already.
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open run ledger: %w", err)
	}

	var ttl time.Duration
	if cfg.RetentionDays > 0 {
		ttl = time.Duration(cfg.RetentionDays) * 24 * time.Hour
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", inMemory).
		Int("retention_days", cfg.RetentionDays).
		Msg("Run ledger opened")

	return &Ledger{
		db:       db,
		ttl:      ttl,
		inMemory: inMemory,
	}, nil
}

// RecordRun persists one run report. The key embeds the report's finish time
// (falling back to now) so reports land in chronological key order even when
// recorded late.
func (l *Ledger) RecordRun(ctx context.Context, report *models.AnalysisReport) error {
	if err := l.ensureOpen(); err != nil {
		return err
	}
	if report == nil {
		return ErrNilReport
	}
	if report.RunID == "" {
		return ErrMissingRunID
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	at := report.FinishedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	key := []byte(fmt.Sprintf("%s%d:%s", keyPrefix, at.UnixNano(), report.RunID))
	err = l.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(key, data)
		if l.ttl > 0 {
			e = e.WithTTL(l.ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}

	metrics.RecordLedgerRun()
	return nil
}

// Latest returns up to n run reports, newest first. Expired entries are
// skipped by Badger itself.
func (l *Ledger) Latest(ctx context.Context, n int) ([]models.AnalysisReport, error) {
	if err := l.ensureOpen(); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = 10
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(keyPrefix)
	// Reverse iteration starts past the last possible run key; 0xff sorts
	// after every digit byte the timestamp can produce.
	seek := append([]byte(keyPrefix), 0xff)

	var reports []models.AnalysisReport
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(seek); it.ValidForPrefix(prefix) && len(reports) < n; it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var report models.AnalysisReport
				if err := json.Unmarshal(val, &report); err != nil {
					return fmt.Errorf("failed to unmarshal run report: %w", err)
				}
				reports = append(reports, report)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan run ledger: %w", err)
	}

	return reports, nil
}

// Count returns the number of live run reports.
func (l *Ledger) Count(ctx context.Context) (int, error) {
	if err := l.ensureOpen(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	prefix := []byte(keyPrefix)
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count run reports: %w", err)
	}

	return count, nil
}

// RunGC reclaims value-log space and refreshes the ledger entry gauge. The
// data supervision layer calls this periodically; it is a no-op for the
// in-memory ledger, which has no value log to rewrite.
func (l *Ledger) RunGC(ctx context.Context) error {
	if err := l.ensureOpen(); err != nil {
		return err
	}

	if count, err := l.Count(ctx); err == nil {
		metrics.SetLedgerEntries(count)
	}

	if l.inMemory {
		return nil
	}

	for {
		err := l.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to run ledger GC: %w", err)
		}
	}
}

// Close flushes and closes the underlying database. Further calls on the
// ledger return ErrLedgerClosed.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if err := l.db.Close(); err != nil {
		return fmt.Errorf("failed to close run ledger: %w", err)
	}
	logging.Debug().Msg("Run ledger closed")
	return nil
}

func (l *Ledger) ensureOpen() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrLedgerClosed
	}
	return nil
}

// DB exposes the underlying Badger handle so other components (import
// checksum tracking) can share the instance under their own key prefixes.
// The ledger keeps ownership; callers must not close it.
func (l *Ledger) DB() *badger.DB {
	return l.db
}

var _ analytics.RunRecorder = (*Ledger)(nil)
