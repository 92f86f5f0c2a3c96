// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package models

// ActivityRow is one customer's behavioral feature row for a single analysis
// run. The storage layer materializes these from the bets and customers
// tables; the analytics engine consumes them read-only.
//
// Every feature is an optional pointer. A nil field means the value could not
// be derived (no bets in window, no settled bets, etc.). Pipeline stages
// declare their required-field sets explicitly and exclude rows that do not
// satisfy them; exclusion is always per stage, never per batch.
//
// Fields:
//   - RecencyDays: days since the most recent bet
//   - Frequency: bet count inside the analysis window
//   - Monetary: total amount wagered inside the analysis window
//   - WinRate: won / settled over settled bets
//   - AvgBetSize: mean stake inside the analysis window
//   - TotalBets: lifetime bet count
//   - LifetimeValue: net customer value from the customers table
type ActivityRow struct {
	CustomerID string `json:"customer_id"`

	RecencyDays   *float64 `json:"recency_days,omitempty"`
	Frequency     *float64 `json:"frequency,omitempty"`
	Monetary      *float64 `json:"monetary,omitempty"`
	WinRate       *float64 `json:"win_rate,omitempty"`
	AvgBetSize    *float64 `json:"average_bet_size,omitempty"`
	TotalBets     *float64 `json:"total_bets,omitempty"`
	LifetimeValue *float64 `json:"lifetime_value,omitempty"`
}

// HasRFMFields reports whether the row satisfies the RFM scoring stage's
// required-field set.
func (r *ActivityRow) HasRFMFields() bool {
	return r.RecencyDays != nil && r.Frequency != nil && r.Monetary != nil
}

// HasBehavioralFields reports whether the row carries the behavioral features
// shared by the clustering and churn stages.
func (r *ActivityRow) HasBehavioralFields() bool {
	return r.WinRate != nil && r.AvgBetSize != nil && r.TotalBets != nil
}
