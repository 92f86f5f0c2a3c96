// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/metrics"
	"github.com/gameedge/intelligence/internal/models"
)

// ErrUnknownAnalysisMethod is returned by Run for a method outside
// rfm/clustering/hybrid. The HTTP layer validates before calling, so hitting
// this indicates a programming error in the caller.
var ErrUnknownAnalysisMethod = errors.New("unknown analysis method")

// ActivitySource supplies the per-customer activity batch a run operates on.
// Implemented by the DuckDB store.
type ActivitySource interface {
	GetCustomerActivity(ctx context.Context) ([]models.ActivityRow, error)
}

// SegmentSink persists the segment records of a run, fully replacing the
// previous run's records.
type SegmentSink interface {
	ReplaceSegments(ctx context.Context, runID string, segments []models.SegmentRecord) error
}

// RunRecorder archives run reports. Recording is best-effort: a recorder
// failure is logged and does not fail the run.
type RunRecorder interface {
	RecordRun(ctx context.Context, report *models.AnalysisReport) error
}

// RunOptions selects which stages a run executes. Zero values mean hybrid
// method, partition clustering, no churn.
type RunOptions struct {
	Method         string // rfm, clustering, or hybrid (default hybrid)
	ClusteringMode string // partition or density (default partition)
	IncludeChurn   bool
}

// Orchestrator drives full analysis runs: fetch activity, execute the
// requested stages, synthesize segments, persist, and archive the report.
type Orchestrator struct {
	engine   *Engine
	source   ActivitySource
	sink     SegmentSink
	recorder RunRecorder
	log      zerolog.Logger
}

// NewOrchestrator wires an orchestrator. recorder may be nil.
func NewOrchestrator(engine *Engine, source ActivitySource, sink SegmentSink, recorder RunRecorder) *Orchestrator {
	return &Orchestrator{
		engine:   engine,
		source:   source,
		sink:     sink,
		recorder: recorder,
		log:      logging.WithComponent("orchestrator"),
	}
}

// Run executes one full analysis over the current activity batch. RFM always
// runs; clustering runs for the clustering and hybrid methods; churn runs
// when requested. Stage-level degradation (skips, panics) is absorbed into
// the report; Run itself fails only on an invalid method, a source fetch
// failure, or a persistence failure.
func (o *Orchestrator) Run(ctx context.Context, opts RunOptions) (*models.AnalysisReport, error) {
	if opts.Method == "" {
		opts.Method = models.AnalysisMethodHybrid
	}
	if opts.ClusteringMode == "" {
		opts.ClusteringMode = models.ClusterModePartition
	}
	switch opts.Method {
	case models.AnalysisMethodRFM, models.AnalysisMethodClustering, models.AnalysisMethodHybrid:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAnalysisMethod, opts.Method)
	}

	started := time.Now().UTC()
	runID := uuid.NewString()
	o.log.Info().
		Str("run_id", runID).
		Str("method", opts.Method).
		Str("clustering_mode", opts.ClusteringMode).
		Bool("include_churn", opts.IncludeChurn).
		Msg("analysis run starting")

	rows, err := o.source.GetCustomerActivity(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch customer activity: %w", err)
	}

	rfm := o.engine.ScoreRFM(ctx, rows)

	var clustering *models.ClusteringResult
	if opts.Method != models.AnalysisMethodRFM {
		c := o.engine.Cluster(ctx, rows, opts.ClusteringMode)
		clustering = &c
	}

	var churn *models.ChurnResult
	if opts.IncludeChurn {
		c := o.engine.PredictChurn(ctx, rows)
		churn = &c
	}

	segments := o.engine.SynthesizeSegmentsFrom(ctx, rows, &rfm, clustering, churn)
	for i := range segments {
		segments[i].RunID = runID
	}
	if err := o.sink.ReplaceSegments(ctx, runID, segments); err != nil {
		return nil, fmt.Errorf("persist segments: %w", err)
	}

	finished := time.Now().UTC()
	report := &models.AnalysisReport{
		RunID:        runID,
		Method:       opts.Method,
		StartedAt:    started,
		FinishedAt:   finished,
		DurationMs:   finished.Sub(started).Milliseconds(),
		RowsIn:       len(rows),
		RowsScored:   rfm.RowsScored,
		Clustering:   clustering,
		ChurnModel:   churn,
		SegmentCount: len(segments),
		Segments:     segments,
		Diagnostics:  collectDiagnostics(&rfm, clustering, churn),
	}

	if o.recorder != nil {
		if err := o.recorder.RecordRun(ctx, report); err != nil {
			o.log.Warn().Err(err).Str("run_id", runID).Msg("run report archival failed")
		}
	}

	metrics.RecordAnalysisRun(opts.Method, len(rows), finished.Sub(started))
	o.log.Info().
		Str("run_id", runID).
		Int("rows_in", len(rows)).
		Int("rows_scored", rfm.RowsScored).
		Int("segments", len(segments)).
		Int64("duration_ms", report.DurationMs).
		Msg("analysis run complete")
	return report, nil
}

func collectDiagnostics(rfm *models.RFMResult, clustering *models.ClusteringResult, churn *models.ChurnResult) []string {
	var out []string
	if rfm != nil && rfm.Diagnostic != "" {
		out = append(out, "rfm: "+rfm.Diagnostic)
	}
	if clustering != nil && clustering.Diagnostic != "" {
		out = append(out, "clustering: "+clustering.Diagnostic)
	}
	if churn != nil && churn.Diagnostic != "" {
		out = append(out, "churn: "+churn.Diagnostic)
	}
	return out
}
