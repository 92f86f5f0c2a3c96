// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package events

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gameedge/intelligence/internal/models"
)

// SchemaVersion is the current bet event schema version. Bump it when
// BetEvent changes incompatibly; consumers accept older versions.
const SchemaVersion = 1

// TopicPrefix is the subject namespace for bet placement events. The full
// subject is TopicPrefix plus the normalized sport, e.g. "bets.placed.tennis".
const TopicPrefix = "bets.placed"

// BetEvent is the wire format for a placed wager entering the platform
// through the event pipeline. It carries exactly what the bets table needs;
// enrichment (payout, settlement defaults) happens at insert time.
type BetEvent struct {
	SchemaVersion int `json:"schema_version,omitempty"`

	EventID    string `json:"event_id"`
	CustomerID string `json:"customer_id"`

	Sport  string `json:"sport"`
	Market string `json:"market,omitempty"`

	Amount float64 `json:"amount"`
	Odds   float64 `json:"odds"`
	Status string  `json:"status,omitempty"`

	PlacedAt time.Time `json:"placed_at"`
}

// NewBetEvent creates an event with a fresh ID, timestamp, and schema
// version. Callers fill in the wager fields before publishing.
func NewBetEvent(customerID string) *BetEvent {
	return &BetEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.NewString(),
		CustomerID:    customerID,
		PlacedAt:      time.Now().UTC(),
	}
}

// Validate checks required fields and value ranges. Consumers drop events
// that fail validation rather than retrying them; a malformed event never
// becomes valid on redelivery.
func (e *BetEvent) Validate() error {
	if e.EventID == "" {
		return &ValidationError{Field: "event_id", Message: "required"}
	}
	if e.CustomerID == "" {
		return &ValidationError{Field: "customer_id", Message: "required"}
	}
	if e.Sport == "" {
		return &ValidationError{Field: "sport", Message: "required"}
	}
	if e.Amount <= 0 {
		return &ValidationError{Field: "amount", Message: "must be positive"}
	}
	if e.Odds < 1.0 {
		return &ValidationError{Field: "odds", Message: "must be at least 1.0"}
	}
	if e.Status != "" && !models.ValidBetStatus(e.Status) {
		return &ValidationError{Field: "status", Message: "must be pending, won, lost, or void"}
	}
	if e.PlacedAt.IsZero() {
		return &ValidationError{Field: "placed_at", Message: "required"}
	}
	return nil
}

// Topic returns the NATS subject for this event, derived from the sport so
// downstream consumers can filter per sport without decoding payloads.
func (e *BetEvent) Topic() string {
	return TopicPrefix + "." + normalizeSubjectToken(e.Sport)
}

// ToBet converts the event into the storage model. The event ID becomes the
// bet ID, which is what makes redelivered events idempotent at the database.
func (e *BetEvent) ToBet() *models.Bet {
	return &models.Bet{
		ID:         e.EventID,
		CustomerID: e.CustomerID,
		Sport:      e.Sport,
		Market:     e.Market,
		Amount:     e.Amount,
		Odds:       e.Odds,
		Status:     e.Status,
		PlacedAt:   e.PlacedAt,
	}
}

// normalizeSubjectToken lowercases a value and replaces characters NATS
// subjects treat as token separators or wildcards.
func normalizeSubjectToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t':
			return '_'
		default:
			return r
		}
	}, s)
}

// ValidationError reports which field of an inbound event was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
