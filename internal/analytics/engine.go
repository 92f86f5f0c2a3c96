// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package analytics

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/metrics"
)

// Model sources for the churn classifier. Only retrain is implemented; the
// enum exists so a persisted-model source can be added without changing the
// pipeline's public contract.
const (
	ModelSourceRetrain = "retrain"
)

// weightSumTolerance bounds floating-point drift when validating that the
// three RFM weights sum to 1.
const weightSumTolerance = 1e-9

// Config contains the tunables of the analytics engine. The zero value is
// not usable; start from DefaultConfig.
type Config struct {
	// RecencyWeight, FrequencyWeight, MonetaryWeight blend the three ordinal
	// scores into the composite RFM score. They must sum to 1.0; violations
	// are rejected at construction time and never silently normalized.
	RecencyWeight   float64
	FrequencyWeight float64
	MonetaryWeight  float64

	// Seed drives every stochastic fit (k-means restarts, forest bootstrap,
	// train/test split). Fixed by default so runs are reproducible.
	Seed int64

	// ForestTrees and ForestMaxDepth are the churn ensemble hyperparameters.
	ForestTrees    int
	ForestMaxDepth int

	// MinClusterRows is the usable-row floor below which clustering is
	// skipped entirely.
	MinClusterRows int

	// MinTrainRows is the usable-row floor below which churn training is
	// skipped and predictions default to unknown.
	MinTrainRows int

	// KMeansRestarts is the number of k-means++ initializations per
	// candidate k; the best-inertia fit wins.
	KMeansRestarts int

	// KMeansMaxIterations caps Lloyd iterations per fit.
	KMeansMaxIterations int

	// DBSCANMinPoints is the minimum neighborhood size (the point itself
	// included) for a density core point.
	DBSCANMinPoints int

	// DBSCANNeighborK selects which nearest-neighbor distance feeds the
	// radius estimate; a point counts as its own first neighbor.
	DBSCANNeighborK int

	// EpsilonQuantile is the percentile of k-th neighbor distances used as
	// the DBSCAN radius.
	EpsilonQuantile float64

	// HighValueQuantile is the lifetime-value percentile at or above which
	// a customer joins the behavioral High Value segment.
	HighValueQuantile float64

	// ChurnThresholdDays is the inactivity span beyond which the training
	// label marks a customer as churned.
	ChurnThresholdDays float64

	// ModelSource selects where the churn model comes from. Only
	// ModelSourceRetrain is implemented.
	ModelSource string
}

// DefaultConfig returns the engine configuration used in production.
func DefaultConfig() Config {
	return Config{
		RecencyWeight:       0.3,
		FrequencyWeight:     0.3,
		MonetaryWeight:      0.4,
		Seed:                42,
		ForestTrees:         100,
		ForestMaxDepth:      10,
		MinClusterRows:      20,
		MinTrainRows:        50,
		KMeansRestarts:      10,
		KMeansMaxIterations: 300,
		DBSCANMinPoints:     10,
		DBSCANNeighborK:     5,
		EpsilonQuantile:     0.95,
		HighValueQuantile:   0.80,
		ChurnThresholdDays:  30,
		ModelSource:         ModelSourceRetrain,
	}
}

// Validate checks the configuration. Weight violations are configuration
// errors and therefore fatal to the caller; they must never be normalized
// away.
func (c Config) Validate() error {
	sum := c.RecencyWeight + c.FrequencyWeight + c.MonetaryWeight
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("rfm weights must sum to 1.0, got %.6f (recency=%.3f frequency=%.3f monetary=%.3f)",
			sum, c.RecencyWeight, c.FrequencyWeight, c.MonetaryWeight)
	}
	for name, w := range map[string]float64{
		"recency":   c.RecencyWeight,
		"frequency": c.FrequencyWeight,
		"monetary":  c.MonetaryWeight,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("rfm %s weight must be within [0,1], got %.3f", name, w)
		}
	}
	if c.ForestTrees < 1 {
		return fmt.Errorf("forest trees must be positive, got %d", c.ForestTrees)
	}
	if c.ForestMaxDepth < 1 {
		return fmt.Errorf("forest max depth must be positive, got %d", c.ForestMaxDepth)
	}
	if c.MinClusterRows < 1 || c.MinTrainRows < 1 {
		return fmt.Errorf("minimum row floors must be positive")
	}
	if c.EpsilonQuantile <= 0 || c.EpsilonQuantile >= 1 {
		return fmt.Errorf("epsilon quantile must be within (0,1), got %.3f", c.EpsilonQuantile)
	}
	if c.HighValueQuantile <= 0 || c.HighValueQuantile >= 1 {
		return fmt.Errorf("high value quantile must be within (0,1), got %.3f", c.HighValueQuantile)
	}
	if c.ModelSource != ModelSourceRetrain {
		return fmt.Errorf("unsupported churn model source %q (supported: %s)", c.ModelSource, ModelSourceRetrain)
	}
	return nil
}

// Engine runs the segmentation and churn pipeline. An Engine is stateless
// across calls: every invocation fits its models from scratch on the batch
// it is given, so a single Engine is safe for concurrent use.
type Engine struct {
	cfg Config
	log zerolog.Logger
}

// NewEngine validates cfg and constructs an engine. This is the single
// startup-time validation point for the analytics configuration.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("analytics config: %w", err)
	}
	return &Engine{
		cfg: cfg,
		log: logging.WithComponent("analytics"),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// recoverStage converts a stage panic into a logged diagnostic. It must be
// installed with defer directly so recover() observes the panic:
//
//	defer e.recoverStage("cluster", func(diag string) { ... })
func (e *Engine) recoverStage(stage string, onFailure func(diagnostic string)) {
	r := recover()
	if r == nil {
		return
	}
	diag := fmt.Sprintf("%s stage failed unexpectedly: %v", stage, r)
	e.log.Error().Str("stage", stage).Interface("panic", r).Msg("stage failure recovered")
	metrics.RecordStageFailure(stage)
	onFailure(diag)
}

// contextCancelled reports whether ctx is done without blocking.
func contextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
