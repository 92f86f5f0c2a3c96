// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordStage(t *testing.T) {
	tests := []struct {
		name     string
		stage    string
		rowsIn   int
		excluded int
		duration time.Duration
	}{
		{"rfm full batch", "score_rfm", 1000, 0, 50 * time.Millisecond},
		{"cluster with exclusions", "cluster", 500, 12, 2 * time.Second},
		{"churn empty batch", "predict_churn", 0, 0, time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(StageRowsIn.WithLabelValues(tt.stage))
			RecordStage(tt.stage, tt.rowsIn, tt.excluded, tt.duration)
			after := testutil.ToFloat64(StageRowsIn.WithLabelValues(tt.stage))
			if after-before != float64(tt.rowsIn) {
				t.Errorf("rows_in delta = %v, want %v", after-before, tt.rowsIn)
			}
		})
	}
}

func TestRecordStageFailure(t *testing.T) {
	before := testutil.ToFloat64(StageFailures.WithLabelValues("cluster"))
	RecordStageFailure("cluster")
	after := testutil.ToFloat64(StageFailures.WithLabelValues("cluster"))
	if after-before != 1 {
		t.Errorf("failure delta = %v, want 1", after-before)
	}
}

func TestRecordChurnTraining(t *testing.T) {
	RecordChurnTraining(200, 0.93, 150*time.Millisecond)
	if got := testutil.ToFloat64(ChurnHoldoutAccuracy); got != 0.93 {
		t.Errorf("holdout accuracy gauge = %v, want 0.93", got)
	}
}

func TestRecordAnalysisRun(t *testing.T) {
	before := testutil.ToFloat64(AnalysisRunsTotal.WithLabelValues("hybrid"))
	RecordAnalysisRun("hybrid", 1500, 3*time.Second)
	after := testutil.ToFloat64(AnalysisRunsTotal.WithLabelValues("hybrid"))
	if after-before != 1 {
		t.Errorf("runs delta = %v, want 1", after-before)
	}
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		wantErrs  float64
	}{
		{"successful select", "SELECT", "customers", nil, 0},
		{"failed insert", "INSERT", "bets", errors.New("constraint violation"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table))
			RecordDBQuery(tt.operation, tt.table, 5*time.Millisecond, tt.err)
			after := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table))
			if after-before != tt.wantErrs {
				t.Errorf("error delta = %v, want %v", after-before, tt.wantErrs)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+2 {
		t.Errorf("active requests = %v, want %v", got, base+2)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("active requests = %v, want %v", got, base)
	}
}

func TestCacheMetrics(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHits.WithLabelValues("analytics"))
	missesBefore := testutil.ToFloat64(CacheMisses.WithLabelValues("analytics"))

	RecordCacheHit("analytics")
	RecordCacheMiss("analytics")
	RecordCacheMiss("analytics")
	SetCacheSize("analytics", 7)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("analytics")); got != hitsBefore+1 {
		t.Errorf("hits = %v, want %v", got, hitsBefore+1)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("analytics")); got != missesBefore+2 {
		t.Errorf("misses = %v, want %v", got, missesBefore+2)
	}
	if got := testutil.ToFloat64(CacheSize.WithLabelValues("analytics")); got != 7 {
		t.Errorf("size = %v, want 7", got)
	}
}

func TestEventMetrics(t *testing.T) {
	pubBefore := testutil.ToFloat64(EventsPublished)
	conBefore := testutil.ToFloat64(EventsConsumed)

	RecordEventPublished()
	RecordEventConsumed()
	RecordEventParseFailed()
	RecordEventProcessing(10 * time.Millisecond)

	if got := testutil.ToFloat64(EventsPublished); got != pubBefore+1 {
		t.Errorf("published = %v, want %v", got, pubBefore+1)
	}
	if got := testutil.ToFloat64(EventsConsumed); got != conBefore+1 {
		t.Errorf("consumed = %v, want %v", got, conBefore+1)
	}
}

func TestImportMetrics(t *testing.T) {
	rowsBefore := testutil.ToFloat64(ImportRowsTotal.WithLabelValues("customers"))

	RecordImportRows("customers", 250)
	RecordImportError("checksum")
	RecordImportRun(time.Second, nil)
	RecordImportRun(time.Second, errors.New("fetch failed"))

	if got := testutil.ToFloat64(ImportRowsTotal.WithLabelValues("customers")); got != rowsBefore+250 {
		t.Errorf("import rows = %v, want %v", got, rowsBefore+250)
	}
	if got := testutil.ToFloat64(ImportLastSuccess); got == 0 {
		t.Error("expected last-success timestamp to be set")
	}
}

func TestCircuitBreakerMetrics(t *testing.T) {
	SetCircuitBreakerState("importer", 2)
	RecordCircuitBreakerTransition("importer", "closed", "open")

	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("importer")); got != 2 {
		t.Errorf("breaker state = %v, want 2", got)
	}
}

func TestLedgerMetrics(t *testing.T) {
	before := testutil.ToFloat64(LedgerRunsRecorded)
	RecordLedgerRun()
	SetLedgerEntries(42)

	if got := testutil.ToFloat64(LedgerRunsRecorded); got != before+1 {
		t.Errorf("runs recorded = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(LedgerEntries); got != 42 {
		t.Errorf("ledger entries = %v, want 42", got)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				RecordStage("score_rfm", 1, 0, time.Microsecond)
				RecordCacheHit("analytics")
				RecordEventPublished()
			}
		}()
	}
	wg.Wait()
}
