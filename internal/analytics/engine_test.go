// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package analytics

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/gameedge/intelligence/internal/models"
)

func fp(v float64) *float64 { return &v }

// row builds a fully populated activity row.
func row(id string, recency, frequency, monetary, winRate, avgBet, totalBets, ltv float64) models.ActivityRow {
	return models.ActivityRow{
		CustomerID:    id,
		RecencyDays:   fp(recency),
		Frequency:     fp(frequency),
		Monetary:      fp(monetary),
		WinRate:       fp(winRate),
		AvgBetSize:    fp(avgBet),
		TotalBets:     fp(totalBets),
		LifetimeValue: fp(ltv),
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine(DefaultConfig()) failed: %v", err)
	}
	return e
}

// whaleRow and casualRow produce two well-separated behavioral profiles. The
// index nudges each field slightly so no two rows are identical points.
func whaleRow(i int) models.ActivityRow {
	j := float64(i)
	return row(fmt.Sprintf("whale-%03d", i),
		1+0.05*j, 100+j, 50000+10*j, 0.60+0.001*j, 500+j, 800+j, 20000+10*j)
}

func casualRow(i int) models.ActivityRow {
	j := float64(i)
	return row(fmt.Sprintf("casual-%03d", i),
		200+0.05*j, 1+0.01*j, 50+j, 0.20+0.001*j, 5+0.1*j, 3+0.01*j, 60+j)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "default config is valid",
			mutate: func(*Config) {},
		},
		{
			name:    "weights summing above one are rejected",
			mutate:  func(c *Config) { c.RecencyWeight = 0.5 },
			wantErr: "sum to 1.0",
		},
		{
			name:    "weights summing below one are rejected",
			mutate:  func(c *Config) { c.MonetaryWeight = 0.1 },
			wantErr: "sum to 1.0",
		},
		{
			name: "negative weight is rejected even when the sum is one",
			mutate: func(c *Config) {
				c.RecencyWeight = 1.5
				c.FrequencyWeight = -0.5
				c.MonetaryWeight = 0.0
			},
			wantErr: "within [0,1]",
		},
		{
			name:   "tiny float drift within tolerance is accepted",
			mutate: func(c *Config) { c.MonetaryWeight = 0.4 + 1e-12 },
		},
		{
			name:    "zero trees rejected",
			mutate:  func(c *Config) { c.ForestTrees = 0 },
			wantErr: "trees",
		},
		{
			name:    "zero depth rejected",
			mutate:  func(c *Config) { c.ForestMaxDepth = 0 },
			wantErr: "depth",
		},
		{
			name:    "zero row floor rejected",
			mutate:  func(c *Config) { c.MinTrainRows = 0 },
			wantErr: "row floors",
		},
		{
			name:    "epsilon quantile of one rejected",
			mutate:  func(c *Config) { c.EpsilonQuantile = 1.0 },
			wantErr: "epsilon quantile",
		},
		{
			name:    "high value quantile of zero rejected",
			mutate:  func(c *Config) { c.HighValueQuantile = 0 },
			wantErr: "high value quantile",
		},
		{
			name:    "unsupported model source rejected",
			mutate:  func(c *Config) { c.ModelSource = "persisted" },
			wantErr: "model source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewEngineRejectsBadWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecencyWeight = 0.6
	if _, err := NewEngine(cfg); err == nil {
		t.Fatal("expected constructor to reject weights that do not sum to 1.0")
	}
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.ForestTrees != 100 || cfg.ForestMaxDepth != 10 {
		t.Errorf("forest = %d trees depth %d, want 100 trees depth 10", cfg.ForestTrees, cfg.ForestMaxDepth)
	}
	if cfg.MinClusterRows != 20 || cfg.MinTrainRows != 50 {
		t.Errorf("row floors = %d/%d, want 20/50", cfg.MinClusterRows, cfg.MinTrainRows)
	}
	if cfg.ChurnThresholdDays != 30 {
		t.Errorf("churn threshold = %v, want 30", cfg.ChurnThresholdDays)
	}
	if cfg.DBSCANMinPoints != 10 || cfg.DBSCANNeighborK != 5 {
		t.Errorf("dbscan = minPts %d k %d, want 10/5", cfg.DBSCANMinPoints, cfg.DBSCANNeighborK)
	}
}

func TestRecoverStageContainsPanic(t *testing.T) {
	e := newTestEngine(t)

	var diag string
	func() {
		defer e.recoverStage("test_stage", func(d string) { diag = d })
		panic("index out of range [7]")
	}()

	if diag == "" {
		t.Fatal("expected the panic to be converted into a diagnostic")
	}
	if !strings.Contains(diag, "test_stage") {
		t.Errorf("diagnostic %q should name the stage", diag)
	}
	if !strings.Contains(diag, "index out of range") {
		t.Errorf("diagnostic %q should carry the panic value", diag)
	}
}

func TestStagesNeverPanicOnHostileInput(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	hostile := [][]models.ActivityRow{
		nil,
		{},
		{{CustomerID: "only-id"}},
		{{CustomerID: "", RecencyDays: fp(-5), Frequency: fp(-1), Monetary: fp(-100)}},
	}

	for _, rows := range hostile {
		e.ScoreRFM(ctx, rows)
		e.Cluster(ctx, rows, models.ClusterModePartition)
		e.Cluster(ctx, rows, models.ClusterModeDensity)
		e.PredictChurn(ctx, rows)
		e.SynthesizeSegments(ctx, rows)
		e.Recommend(ctx, "nobody", rows, nil, nil)
	}
}

func TestContextCancelledShortCircuitsStages(t *testing.T) {
	e := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := make([]models.ActivityRow, 0, 60)
	for i := 0; i < 30; i++ {
		rows = append(rows, whaleRow(i), casualRow(i))
	}

	rfm := e.ScoreRFM(ctx, rows)
	if rfm.RowsScored != 0 || rfm.Diagnostic == "" {
		t.Errorf("expected cancelled RFM scoring to score nothing with a diagnostic, got %d rows %q", rfm.RowsScored, rfm.Diagnostic)
	}

	clustering := e.Cluster(ctx, rows, models.ClusterModePartition)
	if !clustering.Skipped {
		t.Error("expected cancelled clustering to be skipped")
	}

	churn := e.PredictChurn(ctx, rows)
	if !churn.Skipped {
		t.Error("expected cancelled churn prediction to be skipped")
	}
}
