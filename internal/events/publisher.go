// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	gobreaker "github.com/sony/gobreaker/v2"

	json "github.com/goccy/go-json"

	"github.com/gameedge/intelligence/internal/metrics"
)

// ErrPublisherClosed is returned when publishing after Close.
var ErrPublisherClosed = errors.New("bet event publisher is closed")

// Publisher sends bet events to JetStream behind a circuit breaker. Message
// IDs double as JetStream deduplication keys, so republishing the same event
// inside the dedup window is harmless.
type Publisher struct {
	publisher message.Publisher
	breaker   *gobreaker.CircuitBreaker[interface{}]

	mu     sync.RWMutex
	closed bool
}

// NewPublisher connects a JetStream publisher to the broker at url. The
// stream must already exist; the publisher never provisions it.
func NewPublisher(url string, logger watermill.LoggerAdapter) (*Publisher, error) {
	if logger == nil {
		logger = newWatermillLogger()
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS publisher disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS publisher reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}

	wmConfig := wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: false, // EnsureStream runs first
			TrackMsgId:    true,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}

	pub, err := wmNats.NewPublisher(wmConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}

	return &Publisher{
		publisher: pub,
		breaker:   newPublishBreaker(),
	}, nil
}

// newPublishBreaker builds the breaker guarding publishes. Five consecutive
// failures open it; after 30 seconds a few probes may half-open it again.
// State changes are mirrored to the breaker metrics.
func newPublishBreaker() *gobreaker.CircuitBreaker[interface{}] {
	const name = "bet-publisher"
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	}
	return gobreaker.NewCircuitBreaker[interface{}](settings)
}

// PublishEvent validates, serializes, and publishes one bet event. The event
// ID becomes both the message UUID and the Nats-Msg-Id header.
func (p *Publisher) PublishEvent(ctx context.Context, event *BetEvent) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("invalid bet event: %w", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal bet event: %w", err)
	}

	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set("sport", event.Sport)
	msg.SetContext(ctx)

	return p.Publish(ctx, event.Topic(), msg)
}

// Publish sends a prepared message through the circuit breaker.
func (p *Publisher) Publish(ctx context.Context, topic string, msg *message.Message) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrPublisherClosed
	}
	p.mu.RUnlock()

	if msg.Metadata.Get(natsgo.MsgIdHdr) == "" {
		msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)
	}

	_, err := p.breaker.Execute(func() (interface{}, error) {
		return nil, p.publisher.Publish(topic, msg)
	})
	if err != nil {
		metrics.RecordEventPublishFailure()
		return fmt.Errorf("failed to publish bet event %s: %w", msg.UUID, err)
	}

	metrics.RecordEventPublished()
	return nil
}

// BreakerState reports the circuit breaker state for the status endpoint.
func (p *Publisher) BreakerState() string {
	return p.breaker.State().String()
}

// Close shuts the publisher down. Subsequent publishes fail fast.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	return p.publisher.Close()
}
