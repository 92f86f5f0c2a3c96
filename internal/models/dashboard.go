// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package models

import "time"

// DashboardStats aggregates the read-side overview served by the dashboard
// endpoint. SegmentDistribution and RiskDistribution key by segment name and
// risk tier respectively.
type DashboardStats struct {
	TotalCustomers  int     `json:"total_customers"`
	ActiveCustomers int     `json:"active_customers"`
	TotalBets       int     `json:"total_bets"`
	TotalWagered    float64 `json:"total_wagered"`
	AvgLifetimeVal  float64 `json:"average_lifetime_value"`

	SegmentDistribution map[string]int `json:"segment_distribution"`
	RiskDistribution    map[string]int `json:"risk_distribution"`

	GeneratedAt time.Time `json:"generated_at"`
}

// RiskDistribution is the churn endpoint's tier breakdown.
type RiskDistribution struct {
	Low     int `json:"low"`
	Medium  int `json:"medium"`
	High    int `json:"high"`
	Unknown int `json:"unknown"`
	Total   int `json:"total"`
}

// SentimentTrend is one day's aggregated feedback sentiment.
type SentimentTrend struct {
	Day           time.Time `json:"day"`
	FeedbackCount int       `json:"feedback_count"`
	AverageScore  float64   `json:"average_score"`
	PositiveCount int       `json:"positive_count"`
	NegativeCount int       `json:"negative_count"`
	NeutralCount  int       `json:"neutral_count"`
}
