// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package analytics

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gameedge/intelligence/internal/metrics"
	"github.com/gameedge/intelligence/internal/models"
)

// Cluster groups the batch in standardized feature space. mode selects the
// algorithm: models.ClusterModePartition (k-means with a silhouette-driven k
// sweep) or models.ClusterModeDensity (DBSCAN with a data-derived radius).
//
// Assignments cover every input row. Rows missing required features carry
// models.ClusterUnassigned, as does the whole batch when the stage is
// skipped for insufficient data; density noise carries models.ClusterNoise.
// The two sentinels are never conflated.
func (e *Engine) Cluster(ctx context.Context, rows []models.ActivityRow, mode string) (res models.ClusteringResult) {
	defer e.recoverStage("cluster", func(diag string) {
		res = e.skippedClustering(rows, mode, diag)
	})
	start := time.Now()

	switch mode {
	case models.ClusterModePartition, models.ClusterModeDensity:
	default:
		return e.skippedClustering(rows, mode, fmt.Sprintf("unknown clustering mode %q", mode))
	}

	matrix, rowIdx := e.clusterFeatures(rows)
	usable := len(matrix)
	if usable < e.cfg.MinClusterRows {
		diag := fmt.Sprintf("insufficient data: %d usable rows, need %d", usable, e.cfg.MinClusterRows)
		e.log.Warn().Str("mode", mode).Int("usable_rows", usable).Msg("clustering skipped")
		res = e.skippedClustering(rows, mode, diag)
		res.UsableRows = usable
		return res
	}
	if contextCancelled(ctx) {
		return e.skippedClustering(rows, mode, "context cancelled before clustering")
	}

	standardize(matrix)

	switch mode {
	case models.ClusterModePartition:
		res = e.clusterPartition(ctx, rows, matrix, rowIdx)
	case models.ClusterModeDensity:
		res = e.clusterDensity(rows, matrix, rowIdx)
	}
	res.RowsIn = len(rows)
	res.UsableRows = usable

	metrics.RecordStage("cluster", res.RowsIn, res.RowsIn-res.UsableRows, time.Since(start))
	return res
}

// clusterPartition sweeps candidate cluster counts k over 2..min(9, n/10),
// scores each fit with the mean silhouette coefficient, picks the maximum
// (ties break toward the smallest k), and refits at the winner. Each fit is
// seeded identically, so the refit reproduces the sweep's winning fit.
func (e *Engine) clusterPartition(ctx context.Context, rows []models.ActivityRow, matrix [][]float64, rowIdx []int) models.ClusteringResult {
	n := len(matrix)
	maxK := n / 10
	if maxK > 9 {
		maxK = 9
	}

	bestK := 0
	bestScore := 0.0
	for k := 2; k <= maxK; k++ {
		if contextCancelled(ctx) {
			return e.skippedClustering(rows, models.ClusterModePartition, "context cancelled during k sweep")
		}
		rng := rand.New(rand.NewSource(e.cfg.Seed)) //nolint:gosec // deterministic ML fitting, not security
		fit := fitKMeans(ctx, rng, matrix, k, e.cfg.KMeansRestarts, e.cfg.KMeansMaxIterations)
		if fit.labels == nil {
			continue
		}
		score := meanSilhouette(matrix, fit.labels, k)
		if bestK == 0 || score > bestScore {
			bestK = k
			bestScore = score
		}
	}
	if bestK == 0 {
		return e.skippedClustering(rows, models.ClusterModePartition, "k sweep produced no candidate fit")
	}

	rng := rand.New(rand.NewSource(e.cfg.Seed)) //nolint:gosec // deterministic ML fitting, not security
	final := fitKMeans(ctx, rng, matrix, bestK, e.cfg.KMeansRestarts, e.cfg.KMeansMaxIterations)
	if final.labels == nil {
		return e.skippedClustering(rows, models.ClusterModePartition, "context cancelled during final fit")
	}

	assignments := unassignedBatch(rows)
	for m, idx := range rowIdx {
		assignments[idx].ClusterID = final.labels[m]
	}

	silhouette := bestScore
	e.log.Info().Int("k", bestK).Float64("silhouette", silhouette).Int("rows", n).Msg("partition clustering complete")
	return models.ClusteringResult{
		Method:        models.ClusterModePartition,
		Assignments:   assignments,
		ClustersFound: bestK,
		SelectedK:     bestK,
		Silhouette:    &silhouette,
	}
}

// clusterDensity estimates the neighborhood radius from the configured
// percentile of k-th nearest-neighbor distances and runs DBSCAN with the
// configured density floor.
func (e *Engine) clusterDensity(rows []models.ActivityRow, matrix [][]float64, rowIdx []int) models.ClusteringResult {
	eps := e.estimateEpsilon(matrix)
	labels, clusters := runDBSCAN(matrix, eps, e.cfg.DBSCANMinPoints)

	assignments := unassignedBatch(rows)
	noise := 0
	for m, idx := range rowIdx {
		if labels[m] == dbscanNoise {
			assignments[idx].ClusterID = models.ClusterNoise
			noise++
			continue
		}
		assignments[idx].ClusterID = labels[m]
	}

	e.log.Info().Float64("epsilon", eps).Int("clusters", clusters).Int("noise", noise).Msg("density clustering complete")
	return models.ClusteringResult{
		Method:        models.ClusterModeDensity,
		Assignments:   assignments,
		ClustersFound: clusters,
		Epsilon:       &eps,
		MinPoints:     e.cfg.DBSCANMinPoints,
		NoiseCount:    noise,
	}
}

// skippedClustering builds the all-unassigned result used whenever the stage
// does not run to completion.
func (e *Engine) skippedClustering(rows []models.ActivityRow, mode, diagnostic string) models.ClusteringResult {
	return models.ClusteringResult{
		Method:      mode,
		Assignments: unassignedBatch(rows),
		RowsIn:      len(rows),
		Skipped:     true,
		Diagnostic:  diagnostic,
	}
}

// unassignedBatch seeds an assignment slice with the unassigned sentinel for
// every row.
func unassignedBatch(rows []models.ActivityRow) []models.ClusterAssignment {
	assignments := make([]models.ClusterAssignment, len(rows))
	for i := range rows {
		assignments[i] = models.ClusterAssignment{
			CustomerID: rows[i].CustomerID,
			ClusterID:  models.ClusterUnassigned,
		}
	}
	return assignments
}
