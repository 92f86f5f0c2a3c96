// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

/*
Package models defines data structures for the GameEdge Intelligence application.

This package contains all data models used throughout the application: database
entities, analytics pipeline records, segment definitions, and API payload
shapes. It serves as the single source of truth for data structure definitions.

Model Categories:

1. Database Entities:
  - Customer: registered bettor with lifetime aggregates
  - Bet: a single wager with stake, odds, and settlement status
  - Feedback: free-text customer feedback with sentiment fields

2. Analytics Pipeline Records:
  - ActivityRow: one customer's behavioral feature row for an analysis run.
    Every feature is an optional pointer; stages declare the fields they
    require and exclude rows that do not satisfy them.
  - RFMScore: ordinal recency/frequency/monetary scores plus the weighted
    composite and its segment label
  - ClusterAssignment: cluster id per customer, with distinct sentinels for
    density noise (ClusterNoise) and rows never clustered (ClusterUnassigned)
  - ChurnPrediction: churn probability and risk tier per customer

3. Segment Models:
  - SegmentRecord: a named, possibly-overlapping customer subset with
    aggregate statistics, recreated fresh on every analysis run

4. Result Aggregates:
  - AnalysisReport: summary of one full pipeline run
  - RecommendationSet: ordered action suggestions for one customer
  - DashboardStats, RiskDistribution, SentimentTrend: read-side aggregates

Thread Safety:

All models are plain data structures: immutable after creation, safe for
concurrent reads, no internal locking.

JSON Marshaling:

snake_case field naming, omitempty on optional pointer fields, time.Time in
RFC3339. Serialization throughout the application goes through goccy/go-json.
*/
package models
