// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package models

import "time"

// RFM segment labels produced by the composite-score thresholds.
const (
	RFMSegmentAtRisk      = "At Risk"
	RFMSegmentLowValue    = "Low Value"
	RFMSegmentMediumValue = "Medium Value"
	RFMSegmentHighValue   = "High Value"
)

// Cluster id sentinels. The two values are deliberately distinct: noise is a
// density-clustering verdict about a row that WAS clustered, unassigned marks
// a row the stage never looked at (missing features or stage skipped).
const (
	ClusterNoise      = -1
	ClusterUnassigned = -2
)

// Churn risk tiers.
const (
	RiskLow     = "low"
	RiskMedium  = "medium"
	RiskHigh    = "high"
	RiskUnknown = "unknown"
)

// Analysis methods accepted by the orchestrator.
const (
	AnalysisMethodRFM        = "rfm"
	AnalysisMethodClustering = "clustering"
	AnalysisMethodHybrid     = "hybrid"
)

// Clustering modes.
const (
	ClusterModePartition = "partition"
	ClusterModeDensity   = "density"
)

// RFMScore holds one customer's ordinal scores, weighted composite, and
// segment label.
type RFMScore struct {
	CustomerID     string  `json:"customer_id"`
	RecencyScore   int     `json:"recency_score"`   // 1..5
	FrequencyScore int     `json:"frequency_score"` // 1..5
	MonetaryScore  int     `json:"monetary_score"`  // 1..5
	Score          float64 `json:"rfm_score"`
	Segment        string  `json:"rfm_segment"`
}

// RFMResult is the RFM stage output for one batch. Rows missing a required
// input are absent from Scores; an empty batch yields empty Scores with a
// diagnostic, never an error.
type RFMResult struct {
	Scores     []RFMScore `json:"scores"`
	RowsIn     int        `json:"rows_in"`
	RowsScored int        `json:"rows_scored"`
	Diagnostic string     `json:"diagnostic,omitempty"`
}

// ClusterAssignment maps one customer to a cluster id, or to one of the
// sentinels above.
type ClusterAssignment struct {
	CustomerID string `json:"customer_id"`
	ClusterID  int    `json:"cluster_id"`
}

// ClusteringResult is the clustering stage output for one batch. Assignments
// always covers every input row: excluded rows carry ClusterUnassigned,
// density noise carries ClusterNoise.
type ClusteringResult struct {
	Method      string              `json:"method"` // partition or density
	Assignments []ClusterAssignment `json:"assignments"`

	ClustersFound int      `json:"clusters_found"`
	SelectedK     int      `json:"selected_k,omitempty"`  // partition mode
	Silhouette    *float64 `json:"silhouette,omitempty"`  // partition mode
	Epsilon       *float64 `json:"epsilon,omitempty"`     // density mode
	MinPoints     int      `json:"min_points,omitempty"`  // density mode
	NoiseCount    int      `json:"noise_count,omitempty"` // density mode

	RowsIn     int    `json:"rows_in"`
	UsableRows int    `json:"usable_rows"`
	Skipped    bool   `json:"skipped"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// ChurnPrediction holds one customer's churn probability and risk tier.
// Probability is nil when the row was missing features or the model was
// never trained; RiskLevel is then RiskUnknown.
type ChurnPrediction struct {
	CustomerID  string   `json:"customer_id"`
	Probability *float64 `json:"churn_probability,omitempty"` // [0, 1]
	RiskLevel   string   `json:"churn_risk_level"`
}

// ChurnResult is the churn stage output for one batch. Accuracy is the
// hold-out accuracy of the per-invocation model; nil when training was
// skipped.
type ChurnResult struct {
	Predictions []ChurnPrediction `json:"predictions"`
	RowsIn      int               `json:"rows_in"`
	UsableRows  int               `json:"usable_rows"`
	Accuracy    *float64          `json:"model_accuracy,omitempty"`
	Skipped     bool              `json:"skipped"`
	Diagnostic  string            `json:"diagnostic,omitempty"`
}

// Recommendation action types and priorities.
const (
	RecommendationRetention  = "retention"
	RecommendationEngagement = "engagement"
	RecommendationUpsell     = "upsell"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// Recommendation is a single qualitative action suggestion.
type Recommendation struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// RecommendationSet is the full recommendation answer for one customer.
// Found is false when the customer id is not present in the batch; the set
// is then empty and Segment/RiskLevel are blank.
type RecommendationSet struct {
	CustomerID      string           `json:"customer_id"`
	Found           bool             `json:"found"`
	Segment         string           `json:"rfm_segment,omitempty"`
	RiskLevel       string           `json:"churn_risk_level,omitempty"`
	LifetimeValue   *float64         `json:"lifetime_value,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
}

// AnalysisReport summarizes one orchestrated pipeline run.
type AnalysisReport struct {
	RunID  string `json:"run_id"`
	Method string `json:"method"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMs int64     `json:"duration_ms"`

	RowsIn     int `json:"rows_in"`
	RowsScored int `json:"rows_scored"`

	Clustering *ClusteringResult `json:"clustering,omitempty"`
	ChurnModel *ChurnResult      `json:"churn,omitempty"`

	SegmentCount int             `json:"segment_count"`
	Segments     []SegmentRecord `json:"segments"`

	Diagnostics []string `json:"diagnostics,omitempty"`
}
