// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package analytics

import (
	"context"
	"math"
	"math/rand"
)

// kmeansFit is the outcome of one k-means fit: final assignments and the
// total within-cluster sum of squared distances (inertia).
type kmeansFit struct {
	labels    []int
	centroids [][]float64
	inertia   float64
}

// fitKMeans runs k-means with k-means++ seeding. restarts independent
// initializations are fitted and the lowest-inertia run wins, mirroring the
// usual n_init behavior. The rng is seeded by the caller per fit, so a refit
// at the winning k reproduces the sweep's result exactly.
func fitKMeans(ctx context.Context, rng *rand.Rand, points [][]float64, k, restarts, maxIter int) kmeansFit {
	best := kmeansFit{inertia: math.Inf(1)}
	for r := 0; r < restarts; r++ {
		if contextCancelled(ctx) {
			break
		}
		fit := lloyd(points, kmeansPlusPlus(rng, points, k), maxIter)
		if fit.inertia < best.inertia {
			best = fit
		}
	}
	return best
}

// kmeansPlusPlus picks k initial centroids: the first uniformly, each
// subsequent one with probability proportional to its squared distance from
// the nearest centroid chosen so far.
func kmeansPlusPlus(rng *rand.Rand, points [][]float64, k int) [][]float64 {
	n := len(points)
	centroids := make([][]float64, 0, k)
	first := points[rng.Intn(n)]
	centroids = append(centroids, append([]float64(nil), first...))

	dist := make([]float64, n)
	for len(centroids) < k {
		var total float64
		for i, p := range points {
			d := squaredDistance(p, centroids[0])
			for _, c := range centroids[1:] {
				if dc := squaredDistance(p, c); dc < d {
					d = dc
				}
			}
			dist[i] = d
			total += d
		}
		var idx int
		if total == 0 {
			// All points coincide with a centroid; any choice is equivalent.
			idx = rng.Intn(n)
		} else {
			target := rng.Float64() * total
			var cum float64
			for i, d := range dist {
				cum += d
				if cum >= target {
					idx = i
					break
				}
			}
		}
		centroids = append(centroids, append([]float64(nil), points[idx]...))
	}
	return centroids
}

// lloyd iterates assignment and centroid updates until assignments are
// stable or maxIter is reached. An emptied cluster is reseeded at the point
// farthest from its current centroid.
func lloyd(points [][]float64, centroids [][]float64, maxIter int) kmeansFit {
	n := len(points)
	k := len(centroids)
	dims := len(points[0])
	labels := make([]int, n)

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			bestLabel := 0
			bestDist := squaredDistance(p, centroids[0])
			for c := 1; c < k; c++ {
				if d := squaredDistance(p, centroids[c]); d < bestDist {
					bestDist = d
					bestLabel = c
				}
			}
			if labels[i] != bestLabel {
				labels[i] = bestLabel
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, p := range points {
			c := labels[i]
			counts[c]++
			for d := range p {
				sums[c][d] += p[d]
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				far := farthestPoint(points, labels, centroids)
				copy(centroids[c], points[far])
				labels[far] = c
				continue
			}
			for d := 0; d < dims; d++ {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	var inertia float64
	for i, p := range points {
		inertia += squaredDistance(p, centroids[labels[i]])
	}
	return kmeansFit{labels: labels, centroids: centroids, inertia: inertia}
}

// farthestPoint returns the index of the point farthest from its assigned
// centroid, used to reseed emptied clusters.
func farthestPoint(points [][]float64, labels []int, centroids [][]float64) int {
	worst := 0
	worstDist := -1.0
	for i, p := range points {
		if d := squaredDistance(p, centroids[labels[i]]); d > worstDist {
			worstDist = d
			worst = i
		}
	}
	return worst
}

// meanSilhouette computes the mean silhouette coefficient over all points:
// s(i) = (b-a)/max(a,b) with a the mean intra-cluster distance (self
// excluded) and b the smallest mean distance to another cluster. Points in
// singleton clusters score 0.
func meanSilhouette(points [][]float64, labels []int, k int) float64 {
	n := len(points)
	if n == 0 || k < 2 {
		return 0
	}

	counts := make([]int, k)
	for _, l := range labels {
		counts[l]++
	}

	var total float64
	sums := make([]float64, k)
	for i := 0; i < n; i++ {
		for c := range sums {
			sums[c] = 0
		}
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			sums[labels[j]] += math.Sqrt(squaredDistance(points[i], points[j]))
		}

		own := labels[i]
		if counts[own] <= 1 {
			continue // singleton clusters contribute 0
		}
		a := sums[own] / float64(counts[own]-1)

		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == own || counts[c] == 0 {
				continue
			}
			if m := sums[c] / float64(counts[c]); m < b {
				b = m
			}
		}

		if denom := math.Max(a, b); denom > 0 {
			total += (b - a) / denom
		}
	}
	return total / float64(n)
}
