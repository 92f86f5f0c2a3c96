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

// churnFeatureCount covers recency_days, frequency, monetary, win_rate,
// average_bet_size, total_bets, and the composite rfm_score, in that order.
const churnFeatureCount = 7

// churnTestFraction is the hold-out share used to report model accuracy.
const churnTestFraction = 0.2

// churnFeatureVector assembles the classifier input for one usable row.
func (e *Engine) churnFeatureVector(row *models.ActivityRow) []float64 {
	r := scoreRecency(*row.RecencyDays)
	f := scoreFrequency(*row.Frequency)
	m := scoreMonetary(*row.Monetary)
	return []float64{
		*row.RecencyDays,
		*row.Frequency,
		*row.Monetary,
		*row.WinRate,
		*row.AvgBetSize,
		*row.TotalBets,
		e.compositeScore(r, f, m),
	}
}

// riskTier maps a churn probability to its tier: <0.3 low, [0.3,0.7) medium,
// >=0.7 high.
func riskTier(p float64) string {
	switch {
	case p < 0.3:
		return models.RiskLow
	case p < 0.7:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// PredictChurn trains a fresh random forest on the batch and emits a churn
// probability and risk tier per usable row. The model lives only for this
// invocation; nothing is shared across calls.
//
// The training label is recency_days > threshold while recency_days is also
// a predictive feature. That label leakage is deliberate: no ground-truth
// churn labels exist, and consumers calibrate against the resulting
// distribution, so it is preserved rather than corrected.
//
// Fewer than the configured minimum of usable rows skips training entirely;
// every prediction is then unknown. Rows missing required features are
// always unknown, with no probability.
func (e *Engine) PredictChurn(ctx context.Context, rows []models.ActivityRow) (res models.ChurnResult) {
	defer e.recoverStage("predict_churn", func(diag string) {
		res = e.unknownChurn(rows, diag)
	})
	start := time.Now()

	features := make([][]float64, 0, len(rows))
	labels := make([]int, 0, len(rows))
	rowIdx := make([]int, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		if !row.HasRFMFields() || !row.HasBehavioralFields() {
			continue
		}
		features = append(features, e.churnFeatureVector(row))
		label := 0
		if *row.RecencyDays > e.cfg.ChurnThresholdDays {
			label = 1
		}
		labels = append(labels, label)
		rowIdx = append(rowIdx, i)
	}

	usable := len(features)
	if usable < e.cfg.MinTrainRows {
		diag := fmt.Sprintf("insufficient data: %d usable rows, need %d", usable, e.cfg.MinTrainRows)
		e.log.Warn().Int("usable_rows", usable).Msg("churn training skipped")
		res = e.unknownChurn(rows, diag)
		res.UsableRows = usable
		return res
	}
	if contextCancelled(ctx) {
		return e.unknownChurn(rows, "context cancelled before training")
	}

	rng := rand.New(rand.NewSource(e.cfg.Seed)) //nolint:gosec // deterministic ML fitting, not security
	trainIdx, testIdx := trainTestSplit(rng, usable, churnTestFraction)

	trainX := make([][]float64, len(trainIdx))
	trainY := make([]int, len(trainIdx))
	for k, i := range trainIdx {
		trainX[k] = features[i]
		trainY[k] = labels[i]
	}

	forest := newRandomForest(e.cfg.ForestTrees, e.cfg.ForestMaxDepth, rng)
	if !forest.fit(ctx, trainX, trainY) {
		return e.unknownChurn(rows, "context cancelled during training")
	}
	accuracy := holdoutAccuracy(forest, features, labels, testIdx)

	res = models.ChurnResult{
		Predictions: make([]models.ChurnPrediction, len(rows)),
		RowsIn:      len(rows),
		UsableRows:  usable,
		Accuracy:    &accuracy,
	}
	for i := range rows {
		res.Predictions[i] = models.ChurnPrediction{
			CustomerID: rows[i].CustomerID,
			RiskLevel:  models.RiskUnknown,
		}
	}
	for m, idx := range rowIdx {
		p := forest.predictProba(features[m])
		res.Predictions[idx].Probability = &p
		res.Predictions[idx].RiskLevel = riskTier(p)
	}

	e.log.Info().
		Int("usable_rows", usable).
		Int("trees", e.cfg.ForestTrees).
		Float64("holdout_accuracy", accuracy).
		Msg("churn model trained")
	metrics.RecordChurnTraining(usable, accuracy, time.Since(start))
	return res
}

// unknownChurn builds the all-unknown result used whenever the stage does
// not run to completion.
func (e *Engine) unknownChurn(rows []models.ActivityRow, diagnostic string) models.ChurnResult {
	predictions := make([]models.ChurnPrediction, len(rows))
	for i := range rows {
		predictions[i] = models.ChurnPrediction{
			CustomerID: rows[i].CustomerID,
			RiskLevel:  models.RiskUnknown,
		}
	}
	return models.ChurnResult{
		Predictions: predictions,
		RowsIn:      len(rows),
		Skipped:     true,
		Diagnostic:  diagnostic,
	}
}
