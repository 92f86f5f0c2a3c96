// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package analytics

import (
	"context"

	"github.com/gameedge/intelligence/internal/models"
)

// upsellLifetimeValueThreshold gates the VIP upsell recommendation. The
// comparison is strictly greater-than: a lifetime value of exactly 1000 does
// not trigger it.
const upsellLifetimeValueThreshold = 1000.0

// Recommendation messages. These are stable API strings; downstream CRM
// automations match on them.
const (
	msgRetention  = "Consider offering personalized promotions to re-engage this customer"
	msgEngagement = "Send targeted communication to increase engagement"
	msgUpsell     = "Offer VIP services and exclusive betting opportunities"
)

// Recommend evaluates the three recommendation triggers for one customer
// against previously computed stage outputs. rfm and churn may be nil; the
// segment is then derived from the customer's own row when its RFM inputs
// are present. An unknown customer id yields Found=false with an empty set,
// never an error.
//
// Triggers fire independently and the set preserves a fixed order:
// retention, then engagement, then upsell.
func (e *Engine) Recommend(ctx context.Context, customerID string, rows []models.ActivityRow, rfm *models.RFMResult, churn *models.ChurnResult) (res models.RecommendationSet) {
	defer e.recoverStage("recommend", func(string) {
		res = models.RecommendationSet{
			CustomerID:      customerID,
			Recommendations: []models.Recommendation{},
		}
	})

	res = models.RecommendationSet{
		CustomerID:      customerID,
		Recommendations: []models.Recommendation{},
	}
	if contextCancelled(ctx) {
		return res
	}

	row, ok := findRow(rows, customerID)
	if !ok {
		e.log.Debug().Str("customer_id", customerID).Msg("recommendation lookup for unknown customer")
		return res
	}
	res.Found = true
	res.LifetimeValue = row.LifetimeValue
	res.Segment = e.segmentFor(row, rfm)
	res.RiskLevel = riskFor(customerID, churn)

	if res.RiskLevel == models.RiskHigh {
		res.Recommendations = append(res.Recommendations, models.Recommendation{
			Type:     models.RecommendationRetention,
			Priority: models.PriorityHigh,
			Message:  msgRetention,
		})
	}
	if res.Segment == models.RFMSegmentAtRisk {
		res.Recommendations = append(res.Recommendations, models.Recommendation{
			Type:     models.RecommendationEngagement,
			Priority: models.PriorityHigh,
			Message:  msgEngagement,
		})
	}
	if row.LifetimeValue != nil && *row.LifetimeValue > upsellLifetimeValueThreshold {
		res.Recommendations = append(res.Recommendations, models.Recommendation{
			Type:     models.RecommendationUpsell,
			Priority: models.PriorityMedium,
			Message:  msgUpsell,
		})
	}
	return res
}

func findRow(rows []models.ActivityRow, customerID string) (models.ActivityRow, bool) {
	for i := range rows {
		if rows[i].CustomerID == customerID {
			return rows[i], true
		}
	}
	return models.ActivityRow{}, false
}

// segmentFor prefers the precomputed RFM result and falls back to scoring
// the single row. Blank when the row lacks RFM inputs.
func (e *Engine) segmentFor(row models.ActivityRow, rfm *models.RFMResult) string {
	if rfm != nil {
		for _, s := range rfm.Scores {
			if s.CustomerID == row.CustomerID {
				return s.Segment
			}
		}
	}
	if !row.HasRFMFields() {
		return ""
	}
	composite := e.compositeScore(
		scoreRecency(*row.RecencyDays),
		scoreFrequency(*row.Frequency),
		scoreMonetary(*row.Monetary),
	)
	return segmentForScore(composite)
}

func riskFor(customerID string, churn *models.ChurnResult) string {
	if churn == nil {
		return models.RiskUnknown
	}
	for _, p := range churn.Predictions {
		if p.CustomerID == customerID {
			return p.RiskLevel
		}
	}
	return models.RiskUnknown
}
