// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package runledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gameedge/intelligence/internal/config"
	"github.com/gameedge/intelligence/internal/models"
)

func openTestLedger(t *testing.T, path string) *Ledger {
	t.Helper()

	ledger, err := Open(&config.LedgerConfig{Path: path, RetentionDays: 30})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := ledger.Close(); err != nil {
			t.Errorf("Close() failed: %v", err)
		}
	})
	return ledger
}

func sampleReport(runID string, finishedAt time.Time) *models.AnalysisReport {
	return &models.AnalysisReport{
		RunID:        runID,
		Method:       models.AnalysisMethodHybrid,
		StartedAt:    finishedAt.Add(-2 * time.Second),
		FinishedAt:   finishedAt,
		DurationMs:   2000,
		RowsIn:       75,
		RowsScored:   75,
		SegmentCount: 4,
		Segments: []models.SegmentRecord{
			{RunID: runID, Name: "High Value", Kind: models.SegmentKindRFM, MemberCount: 12, Criteria: "composite >= 4"},
		},
	}
}

func TestOpenInMemory(t *testing.T) {
	ledger := openTestLedger(t, "")

	count, err := ledger.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Count = %d on fresh ledger, want 0", count)
	}
}

func TestRecordRunAndLatest(t *testing.T) {
	ledger := openTestLedger(t, "")
	ctx := context.Background()

	base := time.Now().UTC()
	for i, runID := range []string{"run-1", "run-2", "run-3"} {
		report := sampleReport(runID, base.Add(time.Duration(i-2)*time.Hour))
		if err := ledger.RecordRun(ctx, report); err != nil {
			t.Fatalf("RecordRun(%s) failed: %v", runID, err)
		}
	}

	latest, err := ledger.Latest(ctx, 2)
	if err != nil {
		t.Fatalf("Latest(2) failed: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("Latest(2) returned %d reports, want 2", len(latest))
	}
	if latest[0].RunID != "run-3" || latest[1].RunID != "run-2" {
		t.Errorf("Latest order = [%s, %s], want [run-3, run-2]", latest[0].RunID, latest[1].RunID)
	}

	all, err := ledger.Latest(ctx, 50)
	if err != nil {
		t.Fatalf("Latest(50) failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Latest(50) returned %d reports, want 3", len(all))
	}

	count, err := ledger.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Count = %d, want 3", count)
	}
}

func TestRecordRunRoundtrip(t *testing.T) {
	ledger := openTestLedger(t, "")
	ctx := context.Background()

	want := sampleReport("run-rt", time.Now().UTC())
	want.Diagnostics = []string{"clustering skipped: fewer than 20 complete rows"}
	if err := ledger.RecordRun(ctx, want); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	latest, err := ledger.Latest(ctx, 1)
	if err != nil {
		t.Fatalf("Latest(1) failed: %v", err)
	}
	if len(latest) != 1 {
		t.Fatalf("Latest(1) returned %d reports, want 1", len(latest))
	}

	got := latest[0]
	if got.RunID != want.RunID {
		t.Errorf("RunID = %s, want %s", got.RunID, want.RunID)
	}
	if got.Method != want.Method {
		t.Errorf("Method = %s, want %s", got.Method, want.Method)
	}
	if got.RowsIn != want.RowsIn || got.RowsScored != want.RowsScored {
		t.Errorf("rows = %d/%d, want %d/%d", got.RowsIn, got.RowsScored, want.RowsIn, want.RowsScored)
	}
	if got.SegmentCount != want.SegmentCount || len(got.Segments) != 1 {
		t.Errorf("segments = %d (%d records), want %d (1 record)", got.SegmentCount, len(got.Segments), want.SegmentCount)
	}
	if got.Segments[0].Name != "High Value" {
		t.Errorf("segment name = %s, want High Value", got.Segments[0].Name)
	}
	if len(got.Diagnostics) != 1 {
		t.Errorf("diagnostics = %v, want one entry", got.Diagnostics)
	}
}

func TestRecordRunValidation(t *testing.T) {
	ledger := openTestLedger(t, "")
	ctx := context.Background()

	if err := ledger.RecordRun(ctx, nil); !errors.Is(err, ErrNilReport) {
		t.Errorf("RecordRun(nil) = %v, want ErrNilReport", err)
	}

	report := sampleReport("", time.Now().UTC())
	if err := ledger.RecordRun(ctx, report); !errors.Is(err, ErrMissingRunID) {
		t.Errorf("RecordRun(no id) = %v, want ErrMissingRunID", err)
	}
}

func TestLatestDefaultsLimit(t *testing.T) {
	ledger := openTestLedger(t, "")
	ctx := context.Background()

	if err := ledger.RecordRun(ctx, sampleReport("run-1", time.Now().UTC())); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	latest, err := ledger.Latest(ctx, 0)
	if err != nil {
		t.Fatalf("Latest(0) failed: %v", err)
	}
	if len(latest) != 1 {
		t.Errorf("Latest(0) returned %d reports, want 1", len(latest))
	}
}

func TestLedgerPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.LedgerConfig{Path: dir, RetentionDays: 30}

	ledger, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := ledger.RecordRun(context.Background(), sampleReport("run-durable", time.Now().UTC())); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if err := ledger.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened := openTestLedger(t, dir)
	latest, err := reopened.Latest(context.Background(), 1)
	if err != nil {
		t.Fatalf("Latest() after reopen failed: %v", err)
	}
	if len(latest) != 1 || latest[0].RunID != "run-durable" {
		t.Errorf("reopened ledger returned %v, want run-durable", latest)
	}
}

func TestClosedLedgerRejectsOperations(t *testing.T) {
	ledger, err := Open(&config.LedgerConfig{Path: "", RetentionDays: 30})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := ledger.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	ctx := context.Background()
	if err := ledger.RecordRun(ctx, sampleReport("run-x", time.Now().UTC())); !errors.Is(err, ErrLedgerClosed) {
		t.Errorf("RecordRun() on closed ledger = %v, want ErrLedgerClosed", err)
	}
	if _, err := ledger.Latest(ctx, 1); !errors.Is(err, ErrLedgerClosed) {
		t.Errorf("Latest() on closed ledger = %v, want ErrLedgerClosed", err)
	}
	if err := ledger.RunGC(ctx); !errors.Is(err, ErrLedgerClosed) {
		t.Errorf("RunGC() on closed ledger = %v, want ErrLedgerClosed", err)
	}

	// Closing twice is a no-op.
	if err := ledger.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
}

func TestRunGC(t *testing.T) {
	ctx := context.Background()

	inMem := openTestLedger(t, "")
	if err := inMem.RunGC(ctx); err != nil {
		t.Errorf("RunGC() on in-memory ledger = %v, want nil", err)
	}

	durable := openTestLedger(t, t.TempDir())
	for i := 0; i < 5; i++ {
		report := sampleReport("run-gc", time.Now().UTC().Add(time.Duration(i)*time.Millisecond))
		if err := durable.RecordRun(ctx, report); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}
	if err := durable.RunGC(ctx); err != nil {
		t.Errorf("RunGC() on durable ledger = %v, want nil", err)
	}
}
