// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package analytics

import (
	"math"
	"sort"
)

// exclusiveQuantile computes the exclusive (Hyndman-Fan type 6) quantile of
// values at probability p: the rank is p*(n+1) over the ascending order
// statistics, linearly interpolated and clamped to the observed range.
//
// Every percentile in this package goes through this one helper so that the
// High Value lifetime-value threshold and the DBSCAN radius estimate share
// the same interpolation policy. gonum's stat.Quantile offers only the
// empirical and inclusive (type 7) interpolations, neither of which yields
// the exclusive boundary this pipeline is specified against, hence the local
// implementation.
//
// The input slice is not modified. NaN is returned for an empty input.
func exclusiveQuantile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return values[0]
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p * float64(n+1)
	if rank <= 1 {
		return sorted[0]
	}
	if rank >= float64(n) {
		return sorted[n-1]
	}
	lower := int(math.Floor(rank)) // 1-based order statistic
	frac := rank - float64(lower)
	return sorted[lower-1] + frac*(sorted[lower]-sorted[lower-1])
}
