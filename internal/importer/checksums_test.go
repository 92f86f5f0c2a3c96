// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package importer

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
)

func openTestBadger(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("badger.Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("badger close: %v", err)
		}
	})
	return db
}

func TestBadgerChecksums(t *testing.T) {
	ledger := NewBadgerChecksums(openTestBadger(t))
	ctx := context.Background()
	const checksum = "abc123"

	seen, err := ledger.SeenImport(ctx, checksum)
	if err != nil {
		t.Fatalf("SeenImport() error = %v", err)
	}
	if seen {
		t.Fatal("Fresh ledger reported checksum as seen")
	}

	stats := &Stats{
		Source:       "inline",
		Checksum:     checksum,
		BetsImported: 7,
		StartTime:    time.Now().Add(-time.Second),
		EndTime:      time.Now(),
	}
	if err := ledger.RecordImport(ctx, checksum, stats); err != nil {
		t.Fatalf("RecordImport() error = %v", err)
	}

	seen, err = ledger.SeenImport(ctx, checksum)
	if err != nil {
		t.Fatalf("SeenImport() after record error = %v", err)
	}
	if !seen {
		t.Error("Recorded checksum not reported as seen")
	}

	// Different checksum stays unseen.
	seen, err = ledger.SeenImport(ctx, "other")
	if err != nil {
		t.Fatalf("SeenImport(other) error = %v", err)
	}
	if seen {
		t.Error("Unrecorded checksum reported as seen")
	}
}

func TestMemoryChecksums(t *testing.T) {
	ledger := NewMemoryChecksums()
	ctx := context.Background()

	if seen, _ := ledger.SeenImport(ctx, "x"); seen {
		t.Fatal("Fresh in-memory ledger reported checksum as seen")
	}
	if err := ledger.RecordImport(ctx, "x", &Stats{Checksum: "x"}); err != nil {
		t.Fatalf("RecordImport() error = %v", err)
	}
	if seen, _ := ledger.SeenImport(ctx, "x"); !seen {
		t.Error("Recorded checksum not reported as seen")
	}
}
