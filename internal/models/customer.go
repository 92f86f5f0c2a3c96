// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package models

import (
	"time"
)

// Bet settlement statuses as stored in the bets table.
const (
	BetStatusPending = "pending"
	BetStatusWon     = "won"
	BetStatusLost    = "lost"
	BetStatusVoid    = "void"
)

// ValidBetStatus reports whether s is one of the settlement statuses.
func ValidBetStatus(s string) bool {
	switch s {
	case BetStatusPending, BetStatusWon, BetStatusLost, BetStatusVoid:
		return true
	default:
		return false
	}
}

// Customer represents a registered bettor.
//
// Monetary aggregates (TotalWagered, TotalWon, LifetimeValue) are maintained
// by the storage layer; LifetimeValue is the net value the platform assigns
// to the customer and feeds the behavioral High Value segment.
type Customer struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email,omitempty"`
	Country  *string `json:"country,omitempty"`

	RegisteredAt time.Time  `json:"registered_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`

	// Lifetime aggregates
	TotalWagered  float64 `json:"total_wagered"`
	TotalWon      float64 `json:"total_won"`
	LifetimeValue float64 `json:"lifetime_value"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Bet represents a single wager.
//
// SettledAt is nil while the bet is pending or void without settlement.
// Odds are decimal (European) odds.
type Bet struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`

	Sport  string `json:"sport"`
	Market string `json:"market"`

	Amount          float64  `json:"amount"`
	Odds            float64  `json:"odds"`
	PotentialPayout *float64 `json:"potential_payout,omitempty"`
	Status          string   `json:"status"` // pending, won, lost, void

	PlacedAt  time.Time  `json:"placed_at"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
}

// Feedback represents one piece of free-text customer feedback.
// Sentiment fields are populated at insert time by the sentiment analyzer.
type Feedback struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Channel    string `json:"channel"` // app, email, support, survey
	Message    string `json:"message"`

	SentimentScore *float64 `json:"sentiment_score,omitempty"` // [-1, 1]
	SentimentLabel *string  `json:"sentiment_label,omitempty"` // positive, negative, neutral
	Aspects        *string  `json:"aspects,omitempty"`         // JSON object: aspect -> score

	CreatedAt time.Time `json:"created_at"`
}
