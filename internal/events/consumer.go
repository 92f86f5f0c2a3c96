// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package events

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"

	json "github.com/goccy/go-json"

	"github.com/gameedge/intelligence/internal/metrics"
	"github.com/gameedge/intelligence/internal/models"
)

const (
	consumerDurableName = "bet-ingestor"
	consumerQueueGroup  = "bet-processors"
	consumerAckWait     = 30 * time.Second
	consumerMaxDeliver  = 5
	consumerMaxPending  = 256
)

// BetSink receives bets decoded from the event stream. InsertBet reports
// inserted=false when the bet ID already exists, which lets the consumer
// count JetStream redeliveries without treating them as errors.
type BetSink interface {
	InsertBet(ctx context.Context, bet *models.Bet) (bool, error)
}

// ConsumerStats is a snapshot of the consumer's counters.
type ConsumerStats struct {
	Consumed   int64 `json:"consumed"`
	Duplicates int64 `json:"duplicates"`
	Dropped    int64 `json:"dropped"`
	Failed     int64 `json:"failed"`
}

// Consumer ingests bet events from JetStream into the bet store. It runs a
// durable queue-group subscription, so multiple instances share the load and
// a restart resumes where the consumer left off.
type Consumer struct {
	subscriber message.Subscriber
	sink       BetSink
	logger     watermill.LoggerAdapter

	consumed   atomic.Int64
	duplicates atomic.Int64
	dropped    atomic.Int64
	failed     atomic.Int64
}

// NewConsumer creates a durable JetStream consumer bound to the bets stream.
// Binding by stream name is required because the consumed subject is a
// wildcard, which cannot name a stream for auto-provisioning.
func NewConsumer(url string, subscribers int, sink BetSink, logger watermill.LoggerAdapter) (*Consumer, error) {
	if sink == nil {
		return nil, fmt.Errorf("bet sink is required")
	}
	if logger == nil {
		logger = newWatermillLogger()
	}
	if subscribers <= 0 {
		subscribers = 1
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS consumer disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS consumer reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}

	subOpts := []natsgo.SubOpt{
		natsgo.MaxDeliver(consumerMaxDeliver),
		natsgo.MaxAckPending(consumerMaxPending),
		natsgo.AckWait(consumerAckWait),
		natsgo.DeliverNew(),
		natsgo.BindStream(StreamName),
	}

	wmConfig := wmNats.SubscriberConfig{
		URL:              url,
		QueueGroupPrefix: consumerQueueGroup,
		SubscribersCount: subscribers,
		AckWaitTimeout:   consumerAckWait,
		CloseTimeout:     30 * time.Second,
		NatsOptions:      natsOpts,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:         false,
			AutoProvision:    false,
			AckAsync:         false,
			SubscribeOptions: subOpts,
			DurablePrefix:    consumerDurableName,
		},
	}

	sub, err := wmNats.NewSubscriber(wmConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event consumer: %w", err)
	}

	return &Consumer{
		subscriber: sub,
		sink:       sink,
		logger:     logger,
	}, nil
}

// Run consumes bet events until the context is canceled or the subscription
// channel closes. Malformed and invalid events are acked and dropped since
// redelivery cannot repair a bad payload; sink failures are nacked so
// JetStream redelivers up to the MaxDeliver limit.
func (c *Consumer) Run(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, TopicPrefix+".>")
	if err != nil {
		return fmt.Errorf("failed to subscribe to bet events: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			c.processMessage(ctx, msg)
		}
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg *message.Message) {
	start := time.Now()

	var event BetEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.drop(msg, "undecodable bet event payload", err)
		return
	}
	if err := event.Validate(); err != nil {
		c.drop(msg, "invalid bet event", err)
		return
	}

	bet := event.ToBet()
	inserted, err := c.sink.InsertBet(ctx, bet)
	if err != nil {
		c.failed.Add(1)
		c.logger.Error("Bet event ingestion failed", err, watermill.LogFields{
			"message_uuid": msg.UUID,
			"event_id":     event.EventID,
			"customer_id":  event.CustomerID,
		})
		msg.Nack()
		return
	}

	if !inserted {
		c.duplicates.Add(1)
	}
	c.consumed.Add(1)
	metrics.RecordEventConsumed()
	metrics.RecordEventProcessing(time.Since(start))
	msg.Ack()
}

func (c *Consumer) drop(msg *message.Message, reason string, err error) {
	c.dropped.Add(1)
	metrics.RecordEventParseFailed()
	c.logger.Error(reason, err, watermill.LogFields{
		"message_uuid": msg.UUID,
	})
	msg.Ack()
}

// Stats returns a snapshot of the ingestion counters.
func (c *Consumer) Stats() ConsumerStats {
	return ConsumerStats{
		Consumed:   c.consumed.Load(),
		Duplicates: c.duplicates.Load(),
		Dropped:    c.dropped.Load(),
		Failed:     c.failed.Load(),
	}
}

// Close shuts down the subscription.
func (c *Consumer) Close() error {
	return c.subscriber.Close()
}
