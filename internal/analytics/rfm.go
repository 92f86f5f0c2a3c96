// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package analytics

import (
	"context"
	"time"

	"github.com/gameedge/intelligence/internal/metrics"
	"github.com/gameedge/intelligence/internal/models"
)

// Bucket boundaries for the three ordinal scores. All buckets are closed on
// the left and open on the right; the final bucket is unbounded above, so a
// value exactly on a boundary belongs to the higher bucket.

// scoreRecency maps days-since-last-activity to a 1-5 score. Recent activity
// scores high: [0,7)->5, [7,30)->4, [30,90)->3, [90,180)->2, [180,inf)->1.
func scoreRecency(days float64) int {
	switch {
	case days < 7:
		return 5
	case days < 30:
		return 4
	case days < 90:
		return 3
	case days < 180:
		return 2
	default:
		return 1
	}
}

// scoreFrequency maps transaction count to a 1-5 score:
// [0,1)->1, [1,5)->2, [5,15)->3, [15,50)->4, [50,inf)->5.
func scoreFrequency(count float64) int {
	switch {
	case count < 1:
		return 1
	case count < 5:
		return 2
	case count < 15:
		return 3
	case count < 50:
		return 4
	default:
		return 5
	}
}

// scoreMonetary maps lifetime wagered value to a 1-5 score:
// [0,100)->1, [100,500)->2, [500,2000)->3, [2000,10000)->4, [10000,inf)->5.
func scoreMonetary(value float64) int {
	switch {
	case value < 100:
		return 1
	case value < 500:
		return 2
	case value < 2000:
		return 3
	case value < 10000:
		return 4
	default:
		return 5
	}
}

// compositeScore blends the ordinal scores with the configured weights.
func (e *Engine) compositeScore(recency, frequency, monetary int) float64 {
	return float64(recency)*e.cfg.RecencyWeight +
		float64(frequency)*e.cfg.FrequencyWeight +
		float64(monetary)*e.cfg.MonetaryWeight
}

// segmentForScore maps a composite score to its segment label:
// <2 At Risk, [2,3) Low Value, [3,4) Medium Value, >=4 High Value.
func segmentForScore(score float64) string {
	switch {
	case score < 2:
		return models.RFMSegmentAtRisk
	case score < 3:
		return models.RFMSegmentLowValue
	case score < 4:
		return models.RFMSegmentMediumValue
	default:
		return models.RFMSegmentHighValue
	}
}

// ScoreRFM scores every row that carries recency, frequency, and monetary
// values. Rows missing any of the three are excluded from the result (and
// only from this stage). An empty or fully unscorable batch yields an empty
// result with a diagnostic; this is a recoverable condition, never an error.
//
// The stage is pure: identical batches and configuration produce
// bit-identical scores.
func (e *Engine) ScoreRFM(ctx context.Context, rows []models.ActivityRow) (res models.RFMResult) {
	defer e.recoverStage("score_rfm", func(diag string) {
		res = models.RFMResult{RowsIn: len(rows), Diagnostic: diag}
	})
	start := time.Now()

	res = models.RFMResult{RowsIn: len(rows)}
	if len(rows) == 0 {
		res.Diagnostic = "empty batch: nothing to score"
		e.log.Warn().Msg("rfm scoring called with empty batch")
		return res
	}
	if contextCancelled(ctx) {
		res.Diagnostic = "context cancelled before scoring"
		return res
	}

	res.Scores = make([]models.RFMScore, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		if !row.HasRFMFields() {
			continue
		}
		r := scoreRecency(*row.RecencyDays)
		f := scoreFrequency(*row.Frequency)
		m := scoreMonetary(*row.Monetary)
		score := e.compositeScore(r, f, m)
		res.Scores = append(res.Scores, models.RFMScore{
			CustomerID:     row.CustomerID,
			RecencyScore:   r,
			FrequencyScore: f,
			MonetaryScore:  m,
			Score:          score,
			Segment:        segmentForScore(score),
		})
	}
	res.RowsScored = len(res.Scores)

	if res.RowsScored == 0 {
		res.Diagnostic = "no rows carried the required recency/frequency/monetary fields"
		e.log.Warn().Int("rows_in", res.RowsIn).Msg("rfm scoring excluded every row")
	}
	metrics.RecordStage("score_rfm", res.RowsIn, res.RowsIn-res.RowsScored, time.Since(start))
	return res
}
