// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package models

import "time"

// Segment kinds. The three families are produced by the synthesizer; custom
// segments created through the API are stored as behavioral.
const (
	SegmentKindRFM        = "rfm"
	SegmentKindClustering = "clustering"
	SegmentKindBehavioral = "behavioral"
)

// SegmentRecord is a named, possibly-overlapping subset of customers sharing
// a selection criterion. Segments are recreated fresh on every analysis run;
// a run fully supersedes the previous run's records.
//
// Criteria is a human-readable selection rule, e.g. `rfm_segment == "High Value"`
// or `lifetime_value >= 1040.00`. AverageChurnRisk is nil when no member had
// a churn probability (stage skipped).
type SegmentRecord struct {
	ID    string `json:"id"`
	RunID string `json:"run_id"`

	Name string `json:"name"`
	Kind string `json:"kind"` // rfm, clustering, behavioral

	MemberCount          int      `json:"member_count"`
	AverageLifetimeValue *float64 `json:"average_lifetime_value,omitempty"`
	AverageChurnRisk     *float64 `json:"average_churn_risk,omitempty"`

	Criteria string `json:"criteria"`

	CreatedAt time.Time `json:"created_at"`

	// MemberIDs is populated only on explicit request (include_members) and
	// during persistence; list endpoints leave it nil.
	MemberIDs []string `json:"member_ids,omitempty"`
}
