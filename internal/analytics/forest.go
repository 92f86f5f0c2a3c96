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

// randomForest is a bagged ensemble of CART trees for binary classification.
// A forest instance lives for exactly one analysis invocation: it is built,
// fitted, queried, and discarded, so it carries no locking.
type randomForest struct {
	trees       []*treeNode
	numTrees    int
	maxDepth    int
	maxFeatures int
	rng         *rand.Rand
}

// newRandomForest constructs an unfitted forest. maxFeatures <= 0 selects
// the usual sqrt(d) heuristic at fit time.
func newRandomForest(numTrees, maxDepth int, rng *rand.Rand) *randomForest {
	return &randomForest{
		numTrees: numTrees,
		maxDepth: maxDepth,
		rng:      rng,
	}
}

// fit trains the ensemble on bootstrap resamples of (x, y). Fitting is
// sequential and fully deterministic for a given rng seed. A cancelled
// context aborts between trees and leaves the forest unfitted.
func (f *randomForest) fit(ctx context.Context, x [][]float64, y []int) bool {
	n := len(x)
	if n == 0 {
		return false
	}
	if f.maxFeatures <= 0 {
		f.maxFeatures = int(math.Sqrt(float64(len(x[0]))))
		if f.maxFeatures < 1 {
			f.maxFeatures = 1
		}
	}

	params := &growTreeParams{
		x:               x,
		y:               y,
		maxDepth:        f.maxDepth,
		maxFeatures:     f.maxFeatures,
		minSamplesSplit: 2,
		rng:             f.rng,
	}

	f.trees = make([]*treeNode, 0, f.numTrees)
	sample := make([]int, n)
	for t := 0; t < f.numTrees; t++ {
		if contextCancelled(ctx) {
			f.trees = nil
			return false
		}
		for i := range sample {
			sample[i] = f.rng.Intn(n)
		}
		f.trees = append(f.trees, growTree(params, append([]int(nil), sample...), 0))
	}
	return true
}

// fitted reports whether the forest holds a trained ensemble.
func (f *randomForest) fitted() bool {
	return len(f.trees) > 0
}

// predictProba returns the mean positive-class fraction across all trees.
func (f *randomForest) predictProba(x []float64) float64 {
	var sum float64
	for _, t := range f.trees {
		sum += t.predict(x)
	}
	return sum / float64(len(f.trees))
}

// trainTestSplit shuffles 0..n-1 and carves off testFraction of the indices
// as the hold-out set.
func trainTestSplit(rng *rand.Rand, n int, testFraction float64) (train, test []int) {
	perm := rng.Perm(n)
	testCount := int(float64(n) * testFraction)
	if testCount < 1 {
		testCount = 1
	}
	return perm[testCount:], perm[:testCount]
}

// holdoutAccuracy scores the forest on the hold-out indices with a 0.5
// probability threshold.
func holdoutAccuracy(f *randomForest, x [][]float64, y []int, test []int) float64 {
	if len(test) == 0 {
		return 0
	}
	correct := 0
	for _, i := range test {
		pred := 0
		if f.predictProba(x[i]) >= 0.5 {
			pred = 1
		}
		if pred == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(test))
}
