// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/gameedge/intelligence/internal/config"
	"github.com/gameedge/intelligence/internal/logging"
)

// Pipeline owns the full bet-event path: an embedded JetStream broker, the
// bets stream, a publisher for the API layer, and a consumer feeding the
// bet store. NewPipeline assembles everything that can fail; Start only
// launches the consume loop.
type Pipeline struct {
	server    *EmbeddedServer
	conn      *natsgo.Conn
	publisher *Publisher
	consumer  *Consumer

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewPipeline builds the event pipeline from configuration. A nil return
// with nil error means events are disabled.
func NewPipeline(cfg *config.EventsConfig, sink BetSink) (*Pipeline, error) {
	if cfg == nil || !cfg.Enabled {
		logging.Info().Msg("Bet event pipeline disabled (EVENTS_ENABLED=false)")
		return nil, nil
	}

	log := logging.WithComponent("events")
	p := &Pipeline{}

	server, err := NewEmbeddedServer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start embedded broker: %w", err)
	}
	p.server = server

	nc, err := natsgo.Connect(server.ClientURL(),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2*time.Second),
	)
	if err != nil {
		p.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	p.conn = nc

	js, err := jetstream.New(nc)
	if err != nil {
		p.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), serverStartTimeout)
	defer cancel()
	stream, err := EnsureStream(ctx, js)
	if err != nil {
		p.Shutdown(context.Background())
		return nil, err
	}
	info := stream.CachedInfo()
	log.Info().
		Str("stream", info.Config.Name).
		Strs("subjects", info.Config.Subjects).
		Dur("max_age", info.Config.MaxAge).
		Msg("Bets stream ready")

	wmLogger := newWatermillLogger()

	publisher, err := NewPublisher(server.ClientURL(), wmLogger)
	if err != nil {
		p.Shutdown(context.Background())
		return nil, err
	}
	p.publisher = publisher

	consumer, err := NewConsumer(server.ClientURL(), cfg.Subscribers, sink, wmLogger)
	if err != nil {
		p.Shutdown(context.Background())
		return nil, err
	}
	p.consumer = consumer

	log.Info().Int("subscribers", cfg.Subscribers).Msg("Bet event pipeline assembled")
	return p, nil
}

// Start launches the consume loop. It returns immediately; the loop runs
// until Shutdown or a fatal subscription error.
func (p *Pipeline) Start(ctx context.Context) error {
	if p == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	go func() {
		defer close(p.done)
		if err := p.consumer.Run(runCtx); err != nil && runCtx.Err() == nil {
			logging.Error().Err(err).Msg("Bet event consumer stopped unexpectedly")
		}
	}()

	logging.Info().Msg("Bet event pipeline started")
	return nil
}

// Shutdown stops the consume loop and tears components down in reverse
// order of construction. Safe to call on a partially assembled pipeline.
func (p *Pipeline) Shutdown(ctx context.Context) {
	if p == nil {
		return
	}

	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.done = nil
	p.running = false
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			logging.Warn().Msg("Timed out waiting for bet event consumer to stop")
		}
	}

	if p.consumer != nil {
		if err := p.consumer.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing bet event consumer")
		}
		p.consumer = nil
	}
	if p.publisher != nil {
		if err := p.publisher.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing bet event publisher")
		}
		p.publisher = nil
	}
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("Error stopping embedded broker")
		}
		p.server = nil
	}
}

// IsRunning reports whether the consume loop is active.
func (p *Pipeline) IsRunning() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Publisher exposes the pipeline's publisher so the API layer can emit
// bet events. Nil when the pipeline is disabled.
func (p *Pipeline) Publisher() *Publisher {
	if p == nil {
		return nil
	}
	return p.publisher
}

// Stats returns consumer counters for the status endpoint.
func (p *Pipeline) Stats() ConsumerStats {
	if p == nil || p.consumer == nil {
		return ConsumerStats{}
	}
	return p.consumer.Stats()
}
