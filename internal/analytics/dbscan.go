// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package analytics

import (
	"math"
	"sort"
)

// dbscanNoise marks density noise in the internal label slice; it is mapped
// to models.ClusterNoise when assignments are merged back onto the batch.
const dbscanNoise = -1

// kthNeighborDistances returns, for every point, the distance to its k-th
// nearest neighbor where the point itself counts as the first neighbor (the
// kneighbors convention). When the batch has fewer than k points the last
// available neighbor is used instead.
func kthNeighborDistances(points [][]float64, k int) []float64 {
	n := len(points)
	out := make([]float64, n)
	if n < 2 {
		return out
	}

	// Index k-1 in a self-inclusive ordering is index k-2 among the other
	// points; clamp for small batches.
	rank := k - 2
	if rank > n-2 {
		rank = n - 2
	}
	if rank < 0 {
		rank = 0
	}

	dists := make([]float64, 0, n-1)
	for i := 0; i < n; i++ {
		dists = dists[:0]
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			dists = append(dists, math.Sqrt(squaredDistance(points[i], points[j])))
		}
		sort.Float64s(dists)
		out[i] = dists[rank]
	}
	return out
}

// runDBSCAN clusters points with radius eps and density floor minPts, where
// a point's neighborhood includes the point itself. Returns per-point labels
// (0..clusters-1, dbscanNoise for noise) and the cluster count.
func runDBSCAN(points [][]float64, eps float64, minPts int) (labels []int, clusters int) {
	n := len(points)
	labels = make([]int, n)
	for i := range labels {
		labels[i] = dbscanNoise
	}
	if n == 0 || eps <= 0 {
		return labels, 0
	}

	epsSq := eps * eps
	neighborsOf := func(i int) []int {
		// Self-inclusive neighborhood per the min_samples convention.
		nb := []int{i}
		for j := 0; j < n; j++ {
			if j != i && squaredDistance(points[i], points[j]) <= epsSq {
				nb = append(nb, j)
			}
		}
		return nb
	}

	visited := make([]bool, n)
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := neighborsOf(i)
		if len(neighbors) < minPts {
			continue // stays noise unless later claimed as a border point
		}

		labels[i] = clusters
		queue := append([]int(nil), neighbors...)
		for head := 0; head < len(queue); head++ {
			j := queue[head]
			if labels[j] == dbscanNoise {
				labels[j] = clusters // border point claimed by this cluster
			}
			if visited[j] {
				continue
			}
			visited[j] = true
			labels[j] = clusters
			if nb := neighborsOf(j); len(nb) >= minPts {
				queue = append(queue, nb...)
			}
		}
		clusters++
	}
	return labels, clusters
}

// estimateEpsilon derives the DBSCAN radius from the data: the configured
// percentile of every point's k-th nearest-neighbor distance.
func (e *Engine) estimateEpsilon(points [][]float64) float64 {
	distances := kthNeighborDistances(points, e.cfg.DBSCANNeighborK)
	return exclusiveQuantile(distances, e.cfg.EpsilonQuantile)
}
