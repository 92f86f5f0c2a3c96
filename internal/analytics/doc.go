// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

/*
Package analytics implements the customer segmentation and churn-scoring
pipeline: RFM scoring, clustering, churn classification, segment synthesis,
and per-customer recommendations.

# Pipeline

A batch of ActivityRow records flows through up to four stages:

  - RFM scoring: recency/frequency/monetary values are bucketed into ordinal
    1-5 scores and combined into a weighted composite with a segment label.
  - Clustering: customers are grouped in standardized feature space, either
    by k-means with a silhouette-driven k sweep (partition mode) or by DBSCAN
    with a data-derived radius (density mode).
  - Churn classification: a random forest is trained per invocation on a
    heuristic churn label and emits a probability and risk tier per customer.
  - Segment synthesis: stage outputs are folded into named, overlapping
    SegmentRecord sets with aggregate statistics.

The Recommendation generator runs independently per customer on top of the
RFM and churn stages.

# Contract

The five public Engine operations never return an error and never panic.
Failure modes follow a fixed taxonomy: insufficient data skips the stage and
returns sentinel/empty results with a diagnostic; rows missing a stage's
required fields are excluded from that stage only; unexpected panics are
recovered at the stage boundary, logged, and converted to empty results.
Configuration problems (RFM weights not summing to 1) are rejected at
construction time and are the only fatal condition.

# Determinism

Given identical input batches and configuration, every stage is
deterministic: fitting uses a fixed seed, tie-breaks are specified (smallest
k wins the silhouette sweep), and all percentiles use the exclusive
quantile in this package. A single customer's cluster id or churn
probability may still change when the composition of the batch changes;
that is inherent to batch-relative fitting and is documented behavior.

# Known simplification

The churn label is derived from recency_days, which is also a predictive
feature. This label leakage is deliberate (no ground-truth churn labels
exist) and is preserved and asserted in tests rather than corrected, since
downstream consumers may depend on the resulting probability distribution.
*/
package analytics
