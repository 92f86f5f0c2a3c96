// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package analytics

import (
	"math/rand"
	"sort"
)

// treeNode is one node of a CART decision tree. Internal nodes route on
// x[feature] <= threshold; leaves hold the positive-class fraction of their
// training samples.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode

	leaf     bool
	positive float64
}

// growTreeParams bundles the recursion constants so the stack frames stay
// small.
type growTreeParams struct {
	x               [][]float64
	y               []int
	maxDepth        int
	maxFeatures     int
	minSamplesSplit int
	rng             *rand.Rand
}

// growTree builds a CART subtree over the given sample indices using Gini
// impurity. Feature candidates are subsampled per node without replacement.
func growTree(p *growTreeParams, indices []int, depth int) *treeNode {
	positives := 0
	for _, i := range indices {
		positives += p.y[i]
	}
	fraction := float64(positives) / float64(len(indices))

	if depth >= p.maxDepth || len(indices) < p.minSamplesSplit || positives == 0 || positives == len(indices) {
		return &treeNode{leaf: true, positive: fraction}
	}

	feature, threshold, ok := bestSplit(p, indices)
	if !ok {
		return &treeNode{leaf: true, positive: fraction}
	}

	var left, right []int
	for _, i := range indices {
		if p.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &treeNode{leaf: true, positive: fraction}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      growTree(p, left, depth+1),
		right:     growTree(p, right, depth+1),
	}
}

// bestSplit searches the subsampled feature set for the threshold with the
// lowest weighted Gini impurity. Thresholds are midpoints between distinct
// consecutive sorted values.
func bestSplit(p *growTreeParams, indices []int) (feature int, threshold float64, ok bool) {
	n := len(indices)
	bestImpurity := 2.0 // above any reachable Gini value

	perm := p.rng.Perm(len(p.x[0]))
	candidates := perm[:p.maxFeatures]

	type pair struct {
		value float64
		label int
	}
	pairs := make([]pair, n)

	for _, f := range candidates {
		for k, i := range indices {
			pairs[k] = pair{value: p.x[i][f], label: p.y[i]}
		}
		sort.Slice(pairs, func(a, b int) bool { return pairs[a].value < pairs[b].value })

		totalPos := 0
		for _, pr := range pairs {
			totalPos += pr.label
		}

		leftPos := 0
		for k := 1; k < n; k++ {
			leftPos += pairs[k-1].label
			if pairs[k].value == pairs[k-1].value {
				continue
			}
			impurity := weightedGini(leftPos, k, totalPos-leftPos, n-k)
			if impurity < bestImpurity {
				bestImpurity = impurity
				feature = f
				threshold = (pairs[k-1].value + pairs[k].value) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

// weightedGini computes the size-weighted Gini impurity of a binary split.
func weightedGini(leftPos, leftN, rightPos, rightN int) float64 {
	total := float64(leftN + rightN)
	return float64(leftN)/total*gini(leftPos, leftN) + float64(rightN)/total*gini(rightPos, rightN)
}

// gini computes binary Gini impurity for a node with pos positives out of n.
func gini(pos, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(pos) / float64(n)
	return 1 - p*p - (1-p)*(1-p)
}

// predict walks the tree and returns the leaf's positive-class fraction.
func (t *treeNode) predict(x []float64) float64 {
	node := t
	for !node.leaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.positive
}
