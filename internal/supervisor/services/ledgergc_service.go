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

// LedgerGC matches the run ledger's maintenance entry point. Satisfied by
// *runledger.Ledger.
type LedgerGC interface {
	RunGC(ctx context.Context) error
}

// DefaultLedgerGCInterval is how often the value-log GC pass runs when the
// caller does not pick an interval. Badger reclaims space lazily; an hourly
// pass is plenty for the run-report write rate.
const DefaultLedgerGCInterval = time.Hour

// LedgerGCService periodically garbage-collects the Badger-backed run
// ledger. GC errors are logged and absorbed: a failed pass costs disk
// space until the next tick, nothing else.
type LedgerGCService struct {
	ledger   LedgerGC
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewLedgerGCService creates the ledger maintenance service for the data
// supervision layer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLedgerGCService(ledger LedgerGC, interval time.Duration, logger zerolog.Logger) *LedgerGCService {
	if interval <= 0 {
		interval = DefaultLedgerGCInterval
	}
	return &LedgerGCService{
		ledger:   ledger,
		interval: interval,
		logger:   logger.With().Str("service", "ledger-gc").Logger(),
		name:     "ledger-gc",
	}
}

// Serve implements suture.Service.
func (s *LedgerGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("ledger GC service running")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("ledger GC service shutting down")
			return ctx.Err()

		case <-ticker.C:
			start := time.Now()
			if err := s.ledger.RunGC(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("ledger GC pass failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("ledger GC pass complete")
		}
	}
}

// String returns the service name for logging.
func (s *LedgerGCService) String() string {
	return s.name
}
