// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package services

import (
	"context"
	"fmt"
	"time"
)

// PipelineRunner matches the bet-event pipeline lifecycle. Satisfied by
// *events.Pipeline; the local interface keeps the supervisor layer from
// importing the events package.
type PipelineRunner interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context)
	IsRunning() bool
}

// PipelineService runs the bet-event pipeline (embedded NATS server,
// JetStream stream, publisher, consumers) as one supervised unit.
//
// A Start failure is returned to suture, which restarts the whole pipeline
// under its backoff policy; partial assembly is the pipeline's own problem
// and is rolled back inside Start.
type PipelineService struct {
	pipeline        PipelineRunner
	shutdownTimeout time.Duration
	name            string
}

// NewPipelineService wraps a pipeline for the messaging supervision layer.
func NewPipelineService(pipeline PipelineRunner, shutdownTimeout time.Duration) *PipelineService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &PipelineService{
		pipeline:        pipeline,
		shutdownTimeout: shutdownTimeout,
		name:            "bet-pipeline",
	}
}

// Serve implements suture.Service: start the pipeline, block until the
// context is canceled, then drain consumers and stop the broker under the
// shutdown budget.
func (s *PipelineService) Serve(ctx context.Context) error {
	if err := s.pipeline.Start(ctx); err != nil {
		return fmt.Errorf("bet pipeline start failed: %w", err)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.pipeline.Shutdown(shutdownCtx)

	return ctx.Err()
}

// String implements fmt.Stringer for suture's event logs.
func (s *PipelineService) String() string {
	return s.name
}
