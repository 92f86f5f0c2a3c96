// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package importer

import (
	"context"
	"time"

	"github.com/gameedge/intelligence/internal/models"
)

// Request is the body of POST /api/v1/import. Exactly one source is used:
// a remote URL to fetch, or inline customer and bet arrays.
type Request struct {
	SourceURL string            `json:"source_url,omitempty" validate:"omitempty,url"`
	Customers []models.Customer `json:"customers,omitempty"`
	Bets      []models.Bet      `json:"bets,omitempty"`
}

// Payload is the document an import source resolves to.
type Payload struct {
	Customers []models.Customer `json:"customers"`
	Bets      []models.Bet      `json:"bets"`
}

// Store receives validated import rows. Satisfied by *database.DB.
type Store interface {
	UpsertCustomers(ctx context.Context, customers []models.Customer) (int, error)
	InsertBets(ctx context.Context, bets []models.Bet) (inserted, duplicates int, err error)
}

// ChecksumLedger remembers payload checksums across runs so re-importing an
// identical document short-circuits instead of re-upserting every row.
type ChecksumLedger interface {
	SeenImport(ctx context.Context, checksum string) (bool, error)
	RecordImport(ctx context.Context, checksum string, stats *Stats) error
}

// Stats describes one import run.
type Stats struct {
	Source   string `json:"source"`
	Checksum string `json:"checksum"`

	// AlreadyImported is true when the payload checksum matched a prior
	// run and no rows were written.
	AlreadyImported bool `json:"already_imported"`

	CustomersReceived int `json:"customers_received"`
	CustomersImported int `json:"customers_imported"`
	CustomersSkipped  int `json:"customers_skipped"`

	BetsReceived  int `json:"bets_received"`
	BetsImported  int `json:"bets_imported"`
	BetsDuplicate int `json:"bets_duplicate"`
	BetsSkipped   int `json:"bets_skipped"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Duration returns how long the run took, or time elapsed so far if it is
// still going.
func (s *Stats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RowsPerSecond reports the effective insert rate over the whole run.
func (s *Stats) RowsPerSecond() float64 {
	secs := s.Duration().Seconds()
	if secs == 0 {
		return 0
	}
	return float64(s.CustomersImported+s.BetsImported) / secs
}

const (
	sourceInline = "inline"
	sourceURL    = "url"
)
