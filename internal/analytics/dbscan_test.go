// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package analytics

import (
	"math"
	"testing"
)

func TestKthNeighborDistances(t *testing.T) {
	// Points on a line at 0,1,2,3,4 and an isolated point at 100. With k=5
	// under the self-inclusive convention each point's value is the 4th
	// smallest distance to the other points.
	points := [][]float64{{0}, {1}, {2}, {3}, {4}, {100}}

	got := kthNeighborDistances(points, 5)
	want := []float64{4, 3, 2, 3, 4, 99}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("point %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestKthNeighborDistancesClampsSmallBatches(t *testing.T) {
	points := [][]float64{{0}, {3}, {10}}

	// k=5 exceeds the available neighbors; the farthest other point is used.
	got := kthNeighborDistances(points, 5)
	want := []float64{10, 7, 10}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("point %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRunDBSCANTwoClustersAndNoise(t *testing.T) {
	var points [][]float64
	// Cluster one: 12 points spaced 0.4 apart around x=0.
	for i := 0; i < 12; i++ {
		points = append(points, []float64{float64(i) * 0.4})
	}
	// Cluster two: 12 points around x=50.
	for i := 0; i < 12; i++ {
		points = append(points, []float64{50 + float64(i)*0.4})
	}
	// Outlier.
	points = append(points, []float64{1000})

	labels, clusters := runDBSCAN(points, 1.0, 3)

	if clusters != 2 {
		t.Fatalf("clusters = %d, want 2", clusters)
	}
	for i := 0; i < 12; i++ {
		if labels[i] != 0 {
			t.Errorf("cluster-one point %d labeled %d, want 0", i, labels[i])
		}
	}
	for i := 12; i < 24; i++ {
		if labels[i] != 1 {
			t.Errorf("cluster-two point %d labeled %d, want 1", i, labels[i])
		}
	}
	if labels[24] != dbscanNoise {
		t.Errorf("outlier labeled %d, want noise", labels[24])
	}
}

func TestRunDBSCANSelfInclusiveCore(t *testing.T) {
	// Two points within eps of each other: with minPts=2 the self-inclusive
	// neighborhood {self, other} qualifies both as core.
	points := [][]float64{{0}, {0.5}}

	labels, clusters := runDBSCAN(points, 1.0, 2)
	if clusters != 1 {
		t.Fatalf("clusters = %d, want 1", clusters)
	}
	if labels[0] != 0 || labels[1] != 0 {
		t.Errorf("labels = %v, want both 0", labels)
	}

	// minPts=3 exceeds either neighborhood; everything is noise.
	labels, clusters = runDBSCAN(points, 1.0, 3)
	if clusters != 0 {
		t.Fatalf("clusters = %d, want 0", clusters)
	}
	for i, l := range labels {
		if l != dbscanNoise {
			t.Errorf("point %d labeled %d, want noise", i, l)
		}
	}
}

func TestRunDBSCANBorderPointJoinsCluster(t *testing.T) {
	// Dense core at 0..1 (5 points, spacing 0.25) with a border point at 1.9:
	// within eps of the last core point but with too few neighbors of its own.
	points := [][]float64{{0}, {0.25}, {0.5}, {0.75}, {1.0}, {1.9}}

	labels, clusters := runDBSCAN(points, 1.0, 4)
	if clusters != 1 {
		t.Fatalf("clusters = %d, want 1", clusters)
	}
	if labels[5] != 0 {
		t.Errorf("border point labeled %d, want 0 (claimed by the expanding cluster)", labels[5])
	}
}

func TestRunDBSCANEmptyAndDegenerate(t *testing.T) {
	labels, clusters := runDBSCAN(nil, 1.0, 3)
	if len(labels) != 0 || clusters != 0 {
		t.Errorf("empty input: labels=%v clusters=%d", labels, clusters)
	}

	labels, clusters = runDBSCAN([][]float64{{1}, {2}}, 0, 3)
	if clusters != 0 || labels[0] != dbscanNoise {
		t.Errorf("non-positive eps must label everything noise, got labels=%v clusters=%d", labels, clusters)
	}
}

func TestEstimateEpsilon(t *testing.T) {
	e := newTestEngine(t)

	// A tight clump whose 5th neighbor distances are all small yields a
	// small radius; adding remote points stretches it.
	var clump [][]float64
	for i := 0; i < 30; i++ {
		clump = append(clump, []float64{float64(i) * 0.01})
	}
	tight := e.estimateEpsilon(clump)
	if tight <= 0 || tight > 0.1 {
		t.Errorf("clump epsilon = %v, want small positive", tight)
	}

	stretched := e.estimateEpsilon(append(clump, []float64{500}, []float64{-500}))
	if stretched <= tight {
		t.Errorf("epsilon with outliers = %v, want larger than %v", stretched, tight)
	}
}
