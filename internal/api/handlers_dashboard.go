// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package api

import (
	"context"
	"net/http"

	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/models"
)

// dashboardResponse is the dashboard payload: stored aggregates plus the
// computed risk distribution and the most recent analysis runs.
type dashboardResponse struct {
	models.DashboardStats
	RecentRuns []models.AnalysisReport `json:"recent_runs"`
}

// GetDashboard returns the aggregated analytics dashboard.
//
// Storage supplies counts, monetary aggregates, and the stored segment
// distribution; the churn stage supplies the risk distribution because risk
// tiers are computed, not stored. The whole payload rides the read cache,
// so a dashboard poll costs one cache hit between runs.
//
// @Summary Get analytics dashboard
// @Description Returns customer and bet counts, wagered totals, average lifetime value, segment and churn-risk distributions, and the most recent analysis runs.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} APIResponse{data=dashboardResponse} "Dashboard assembled"
// @Failure 500 {object} APIResponse "Query failed"
// @Router /api/v1/analytics/dashboard [get]
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	executor := newQueryExecutor(h)
	executor.Execute(w, r, "Dashboard", nil, func(ctx context.Context) (interface{}, error) {
		stats, err := h.db.GetDashboardStats(ctx)
		if err != nil {
			return nil, err
		}

		if h.engine != nil {
			rows, err := h.db.GetCustomerActivity(ctx)
			if err != nil {
				return nil, err
			}
			churn := h.engine.PredictChurn(ctx, rows)
			for _, p := range churn.Predictions {
				stats.RiskDistribution[p.RiskLevel]++
			}
		}

		resp := dashboardResponse{
			DashboardStats: *stats,
			RecentRuns:     []models.AnalysisReport{},
		}
		if h.ledger != nil {
			runs, err := h.ledger.Latest(ctx, 5)
			if err != nil {
				logging.Ctx(ctx).Warn().Err(err).Msg("Run ledger read failed")
			} else {
				resp.RecentRuns = runs
			}
		}
		return resp, nil
	})
}
