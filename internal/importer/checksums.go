// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
)

// checksumKeyPrefix namespaces import checksums inside the shared Badger
// instance, away from the run history keys.
const checksumKeyPrefix = "import:checksum:"

// BadgerChecksums implements ChecksumLedger on the application's Badger
// instance, so checksum memory survives restarts alongside run history.
type BadgerChecksums struct {
	db *badger.DB
}

// NewBadgerChecksums wraps an open Badger handle. The importer does not own
// the handle and never closes it.
func NewBadgerChecksums(db *badger.DB) *BadgerChecksums {
	return &BadgerChecksums{db: db}
}

// SeenImport reports whether a payload with this checksum was imported
// before.
func (c *BadgerChecksums) SeenImport(_ context.Context, checksum string) (bool, error) {
	var seen bool
	err := c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(checksumKeyPrefix + checksum))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		seen = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to look up import checksum: %w", err)
	}
	return seen, nil
}

// RecordImport stores the run stats under the payload checksum.
func (c *BadgerChecksums) RecordImport(_ context.Context, checksum string, stats *Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal import stats: %w", err)
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(checksumKeyPrefix+checksum), data)
	})
	if err != nil {
		return fmt.Errorf("failed to record import checksum: %w", err)
	}
	return nil
}

// MemoryChecksums implements ChecksumLedger in memory, for tests and for
// deployments running without a ledger path.
type MemoryChecksums struct {
	mu   sync.RWMutex
	seen map[string]Stats
}

// NewMemoryChecksums creates an empty in-memory checksum ledger.
func NewMemoryChecksums() *MemoryChecksums {
	return &MemoryChecksums{seen: make(map[string]Stats)}
}

func (c *MemoryChecksums) SeenImport(_ context.Context, checksum string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.seen[checksum]
	return ok, nil
}

func (c *MemoryChecksums) RecordImport(_ context.Context, checksum string, stats *Stats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen[checksum] = *stats
	return nil
}
