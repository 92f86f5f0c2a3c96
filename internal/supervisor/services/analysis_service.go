// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// AnalysisRunner triggers one full analysis run. Satisfied by the API
// handler, whose single-flight gate makes a scheduler tick that collides
// with a manual POST /analyze a no-op rather than a queued duplicate.
type AnalysisRunner interface {
	RunScheduledAnalysis(ctx context.Context) error
}

// AnalysisServiceConfig holds the scheduler settings.
type AnalysisServiceConfig struct {
	// RunOnStartup triggers an analysis as soon as the service starts, so
	// a fresh deployment serves segments before the first interval elapses.
	RunOnStartup bool

	// RunInterval is the period between scheduled runs.
	RunInterval time.Duration

	// RunTimeout bounds a single run.
	RunTimeout time.Duration
}

// AnalysisService re-runs the analysis pipeline on a fixed interval.
//
// Run failures are logged and absorbed: a failed pass waits for the next
// tick instead of crashing the service, because segment staleness is a
// degradation, not an outage.
type AnalysisService struct {
	runner AnalysisRunner
	config AnalysisServiceConfig
	logger zerolog.Logger
	name   string
}

// NewAnalysisService creates the periodic analysis scheduler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAnalysisService(runner AnalysisRunner, cfg AnalysisServiceConfig, logger zerolog.Logger) *AnalysisService {
	return &AnalysisService{
		runner: runner,
		config: cfg,
		logger: logger.With().Str("service", "analysis").Logger(),
		name:   "analysis-scheduler",
	}
}

// Serve implements suture.Service: an optional startup run followed by the
// ticker loop, until the context is canceled.
func (s *AnalysisService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("run_on_startup", s.config.RunOnStartup).
		Dur("run_interval", s.config.RunInterval).
		Msg("analysis scheduler starting")

	if s.config.RunOnStartup {
		if err := s.run(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("startup analysis failed (will retry on schedule)")
		}
	}

	if s.config.RunInterval <= 0 {
		s.config.RunInterval = 24 * time.Hour
	}

	ticker := time.NewTicker(s.config.RunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("analysis scheduler shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.run(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled analysis failed")
			}
		}
	}
}

// run executes one pass under the per-run timeout.
func (s *AnalysisService) run(ctx context.Context) error {
	timeout := s.config.RunTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	s.logger.Info().Msg("starting scheduled analysis")

	if err := s.runner.RunScheduledAnalysis(runCtx); err != nil {
		return err
	}

	s.logger.Info().
		Dur("duration", time.Since(start)).
		Msg("scheduled analysis complete")

	return nil
}

// String returns the service name for logging.
func (s *AnalysisService) String() string {
	return s.name
}
