// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	// StreamName is the JetStream stream holding bet placement events.
	// Subscribers bind to it by name because the consumed subject is a
	// wildcard and stream names cannot contain wildcards.
	StreamName = "BETS"

	// streamMaxAge keeps events long enough to replay a missed week.
	streamMaxAge = 7 * 24 * time.Hour

	// dedupWindow is how long JetStream remembers Nats-Msg-Id headers.
	// Publishes of the same event ID inside this window are dropped by
	// the server before any consumer sees them.
	dedupWindow = 2 * time.Minute
)

// EnsureStream creates or updates the bet event stream. The operation is
// idempotent and runs before the publisher and consumer connect.
func EnsureStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	cfg := jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{TopicPrefix + ".>"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      streamMaxAge,
		MaxBytes:    -1,
		MaxMsgs:     -1,
		Duplicates:  dedupWindow,
		Storage:     jetstream.FileStorage,
		Discard:     jetstream.DiscardOld,
		AllowDirect: true,
	}

	_, err := js.Stream(ctx, StreamName)
	if err == nil {
		stream, err := js.UpdateStream(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to update stream %s: %w", StreamName, err)
		}
		return stream, nil
	}

	if errors.Is(err, jetstream.ErrStreamNotFound) {
		stream, err := js.CreateStream(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create stream %s: %w", StreamName, err)
		}
		return stream, nil
	}

	return nil, fmt.Errorf("failed to check stream %s: %w", StreamName, err)
}
