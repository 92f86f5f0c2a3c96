// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gameedge/intelligence/internal/models"
)

// Names of the two fixed behavioral segments.
const (
	SegmentHighValueCustomers = "High Value Customers"
	SegmentAtRiskCustomers    = "At Risk Customers"
)

// rfmSegmentOrder fixes the emission order of the RFM segment family.
var rfmSegmentOrder = []string{
	models.RFMSegmentAtRisk,
	models.RFMSegmentLowValue,
	models.RFMSegmentMediumValue,
	models.RFMSegmentHighValue,
}

// SynthesizeSegments runs the full pipeline over the batch (RFM, partition
// clustering, churn) and folds the outputs into segment records. Callers
// that already hold stage results should use SynthesizeSegmentsFrom to avoid
// refitting.
func (e *Engine) SynthesizeSegments(ctx context.Context, rows []models.ActivityRow) []models.SegmentRecord {
	rfm := e.ScoreRFM(ctx, rows)
	clustering := e.Cluster(ctx, rows, models.ClusterModePartition)
	churn := e.PredictChurn(ctx, rows)
	return e.SynthesizeSegmentsFrom(ctx, rows, &rfm, &clustering, &churn)
}

// SynthesizeSegmentsFrom produces the union of four independent segment
// families from previously computed stage outputs:
//
//  1. one segment per distinct RFM segment label present in the batch,
//  2. one segment per non-negative cluster id (noise and unassigned excluded),
//  3. High Value Customers: lifetime value at or above the batch's
//     configured percentile,
//  4. At Risk Customers: churn risk tier "high".
//
// Families are overlapping by design; a customer may appear in several. A
// nil or skipped stage yields its family empty. Records are created fresh on
// every call; RunID is left for the orchestrator to stamp before persisting.
func (e *Engine) SynthesizeSegmentsFrom(ctx context.Context, rows []models.ActivityRow, rfm *models.RFMResult, clustering *models.ClusteringResult, churn *models.ChurnResult) (segments []models.SegmentRecord) {
	defer e.recoverStage("synthesize_segments", func(string) {
		segments = []models.SegmentRecord{}
	})

	segments = []models.SegmentRecord{}
	if contextCancelled(ctx) {
		return segments
	}

	ltvByCustomer := make(map[string]float64, len(rows))
	for i := range rows {
		if rows[i].LifetimeValue != nil {
			ltvByCustomer[rows[i].CustomerID] = *rows[i].LifetimeValue
		}
	}
	probByCustomer := map[string]float64{}
	riskByCustomer := map[string]string{}
	if churn != nil {
		for _, p := range churn.Predictions {
			riskByCustomer[p.CustomerID] = p.RiskLevel
			if p.Probability != nil {
				probByCustomer[p.CustomerID] = *p.Probability
			}
		}
	}

	segments = append(segments, e.rfmFamily(rfm, ltvByCustomer, probByCustomer)...)
	segments = append(segments, e.clusterFamily(clustering, ltvByCustomer, probByCustomer)...)
	segments = append(segments, e.behavioralFamilies(rows, churn, ltvByCustomer, probByCustomer, riskByCustomer)...)

	e.log.Debug().Int("segments", len(segments)).Msg("segment synthesis complete")
	return segments
}

// rfmFamily emits one segment per distinct RFM segment label, in canonical
// label order.
func (e *Engine) rfmFamily(rfm *models.RFMResult, ltv, prob map[string]float64) []models.SegmentRecord {
	if rfm == nil || len(rfm.Scores) == 0 {
		return nil
	}
	members := make(map[string][]string)
	for _, s := range rfm.Scores {
		members[s.Segment] = append(members[s.Segment], s.CustomerID)
	}

	var out []models.SegmentRecord
	for _, name := range rfmSegmentOrder {
		ids, present := members[name]
		if !present {
			continue
		}
		out = append(out, e.newSegment(
			name,
			models.SegmentKindRFM,
			fmt.Sprintf("rfm_segment == %q", name),
			ids, ltv, prob,
		))
	}
	return out
}

// clusterFamily emits one segment per non-negative cluster id, ascending.
func (e *Engine) clusterFamily(clustering *models.ClusteringResult, ltv, prob map[string]float64) []models.SegmentRecord {
	if clustering == nil || clustering.Skipped {
		return nil
	}
	members := make(map[int][]string)
	for _, a := range clustering.Assignments {
		if a.ClusterID < 0 {
			continue // noise and unassigned never form segments
		}
		members[a.ClusterID] = append(members[a.ClusterID], a.CustomerID)
	}
	ids := make([]int, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []models.SegmentRecord
	for _, id := range ids {
		out = append(out, e.newSegment(
			fmt.Sprintf("Cluster %d", id),
			models.SegmentKindClustering,
			fmt.Sprintf("cluster_id == %d", id),
			members[id], ltv, prob,
		))
	}
	return out
}

// behavioralFamilies emits the two fixed behavioral segments. High Value
// requires at least one row with a lifetime value (otherwise the percentile
// is undefined); At Risk requires the churn stage to have run.
func (e *Engine) behavioralFamilies(rows []models.ActivityRow, churn *models.ChurnResult, ltv, prob map[string]float64, risk map[string]string) []models.SegmentRecord {
	var out []models.SegmentRecord

	if len(ltv) > 0 {
		values := make([]float64, 0, len(ltv))
		for i := range rows {
			if rows[i].LifetimeValue != nil {
				values = append(values, *rows[i].LifetimeValue)
			}
		}
		threshold := exclusiveQuantile(values, e.cfg.HighValueQuantile)
		var members []string
		for i := range rows {
			if rows[i].LifetimeValue != nil && *rows[i].LifetimeValue >= threshold {
				members = append(members, rows[i].CustomerID)
			}
		}
		out = append(out, e.newSegment(
			SegmentHighValueCustomers,
			models.SegmentKindBehavioral,
			fmt.Sprintf("lifetime_value >= %.2f", threshold),
			members, ltv, prob,
		))
	}

	if churn != nil && !churn.Skipped {
		var members []string
		for i := range rows {
			if risk[rows[i].CustomerID] == models.RiskHigh {
				members = append(members, rows[i].CustomerID)
			}
		}
		out = append(out, e.newSegment(
			SegmentAtRiskCustomers,
			models.SegmentKindBehavioral,
			`churn_risk_level == "high"`,
			members, ltv, prob,
		))
	}
	return out
}

// newSegment assembles one record with membership statistics. Means are
// computed over the members that carry the respective value; nil when none
// do.
func (e *Engine) newSegment(name, kind, criteria string, memberIDs []string, ltv, prob map[string]float64) models.SegmentRecord {
	rec := models.SegmentRecord{
		ID:          uuid.NewString(),
		Name:        name,
		Kind:        kind,
		MemberCount: len(memberIDs),
		Criteria:    criteria,
		CreatedAt:   time.Now().UTC(),
		MemberIDs:   memberIDs,
	}
	rec.AverageLifetimeValue = meanOver(memberIDs, ltv)
	rec.AverageChurnRisk = meanOver(memberIDs, prob)
	return rec
}

// meanOver averages values for the ids present in the map; nil if none are.
func meanOver(ids []string, values map[string]float64) *float64 {
	var sum float64
	count := 0
	for _, id := range ids {
		if v, ok := values[id]; ok {
			sum += v
			count++
		}
	}
	if count == 0 {
		return nil
	}
	mean := sum / float64(count)
	return &mean
}
