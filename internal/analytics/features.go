// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package analytics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/gameedge/intelligence/internal/models"
)

// Clustering operates on six features per customer: the three ordinal RFM
// scores plus win rate, average transaction size, and total transaction
// count. The churn classifier uses the raw behavioral values instead of the
// ordinal scores, plus the composite (see churn.go).
const clusterFeatureCount = 6

// clusterFeatures assembles the clustering feature matrix. Only rows with
// the full required-field set contribute; the returned index slice maps each
// matrix row back to its position in rows so assignments can be merged onto
// the original batch.
func (e *Engine) clusterFeatures(rows []models.ActivityRow) (matrix [][]float64, rowIdx []int) {
	matrix = make([][]float64, 0, len(rows))
	rowIdx = make([]int, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		if !row.HasRFMFields() || !row.HasBehavioralFields() {
			continue
		}
		r := scoreRecency(*row.RecencyDays)
		f := scoreFrequency(*row.Frequency)
		m := scoreMonetary(*row.Monetary)
		matrix = append(matrix, []float64{
			float64(r),
			float64(f),
			float64(m),
			*row.WinRate,
			*row.AvgBetSize,
			*row.TotalBets,
		})
		rowIdx = append(rowIdx, i)
	}
	return matrix, rowIdx
}

// standardize z-scores each column in place using the population standard
// deviation (the scaler is fit per call; nothing persists between batches).
// A zero-variance column standardizes to all zeros rather than dividing by
// zero.
func standardize(matrix [][]float64) {
	if len(matrix) == 0 {
		return
	}
	cols := len(matrix[0])
	column := make([]float64, len(matrix))
	for c := 0; c < cols; c++ {
		for r := range matrix {
			column[r] = matrix[r][c]
		}
		mean := stat.Mean(column, nil)
		std := stat.PopStdDev(column, nil)
		for r := range matrix {
			if std == 0 {
				matrix[r][c] = 0
				continue
			}
			matrix[r][c] = (matrix[r][c] - mean) / std
		}
	}
}

// squaredDistance returns the squared Euclidean distance between two points.
func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
