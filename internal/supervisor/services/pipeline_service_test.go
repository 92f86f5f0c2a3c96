// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockPipeline is a scriptable double for the PipelineRunner interface.
type mockPipeline struct {
	startErr  error
	running   atomic.Bool
	starts    atomic.Int32
	shutdowns atomic.Int32
}

func (m *mockPipeline) Start(_ context.Context) error {
	m.starts.Add(1)
	if m.startErr != nil {
		return m.startErr
	}
	m.running.Store(true)
	return nil
}

func (m *mockPipeline) Shutdown(_ context.Context) {
	m.shutdowns.Add(1)
	m.running.Store(false)
}

func (m *mockPipeline) IsRunning() bool { return m.running.Load() }

func TestPipelineServiceInterface(t *testing.T) {
	var _ suture.Service = (*PipelineService)(nil)
}

func TestPipelineServiceLifecycle(t *testing.T) {
	pipeline := &mockPipeline{}
	svc := NewPipelineService(pipeline, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	waitFor(t, time.Second, pipeline.IsRunning)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}

	if pipeline.shutdowns.Load() != 1 {
		t.Errorf("Shutdown called %d times, want 1", pipeline.shutdowns.Load())
	}
	if pipeline.IsRunning() {
		t.Error("pipeline should be stopped after Serve returns")
	}
}

func TestPipelineServiceStartFailure(t *testing.T) {
	pipeline := &mockPipeline{startErr: errors.New("port in use")}
	svc := NewPipelineService(pipeline, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, pipeline.startErr) {
		t.Errorf("Serve() = %v, want wrapped start error", err)
	}
	if pipeline.shutdowns.Load() != 0 {
		t.Error("Shutdown must not run when Start failed")
	}
}

func TestPipelineServiceName(t *testing.T) {
	svc := NewPipelineService(&mockPipeline{}, 0)
	if got := svc.String(); got != "bet-pipeline" {
		t.Errorf("String() = %q, want bet-pipeline", got)
	}
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("shutdownTimeout = %v, want 10s default", svc.shutdownTimeout)
	}
}
