// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package api

import (
	"net/http"
	"time"

	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/models"
)

// Version is reported by the health endpoint and startup logging.
const Version = "1.0.0"

// healthStatus is the health probe payload.
type healthStatus struct {
	Status            string     `json:"status"`
	Version           string     `json:"version"`
	DatabaseConnected bool       `json:"database_connected"`
	PipelineRunning   bool       `json:"pipeline_running"`
	Customers         int64      `json:"customers"`
	Bets              int64      `json:"bets"`
	Feedback          int64      `json:"feedback"`
	LastAnalysisRun   *time.Time `json:"last_analysis_run,omitempty"`
	UptimeSeconds     float64    `json:"uptime_seconds"`
}

// Health reports process health: database connectivity, pipeline state,
// table counts, and the time of the last analysis run.
//
// Degraded means the process serves requests but a dependency is down: the
// database is unreachable, or the bet pipeline is configured and not
// running. The endpoint itself always answers 200 so orchestration probes
// distinguish "unhealthy dependency" from "dead process" by body, not code.
//
// @Summary Get system health
// @Description Returns database connectivity, bet pipeline state, stored record counts, last analysis run time, and uptime.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=healthStatus} "Health collected"
// @Router /healthz [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	pipelineConfigured := h.config != nil && h.config.Events.Enabled
	pipelineRunning := h.pipeline.IsRunning()

	status := "healthy"
	if !dbConnected {
		status = "degraded"
	} else if pipelineConfigured && !pipelineRunning {
		status = "degraded"
	}

	health := healthStatus{
		Status:            status,
		Version:           Version,
		DatabaseConnected: dbConnected,
		PipelineRunning:   pipelineRunning,
		UptimeSeconds:     time.Since(h.startTime).Seconds(),
	}

	if dbConnected {
		customers, bets, feedback, err := h.db.GetRecordCounts(r.Context())
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Record count query failed")
		} else {
			health.Customers = customers
			health.Bets = bets
			health.Feedback = feedback
		}
	}

	if h.ledger != nil {
		if runs, err := h.ledger.Latest(r.Context(), 1); err == nil && len(runs) > 0 {
			health.LastAnalysisRun = lastRunTime(runs[0])
		}
	}

	rw.Success(health)
}

func lastRunTime(run models.AnalysisReport) *time.Time {
	if run.FinishedAt.IsZero() {
		return nil
	}
	t := run.FinishedAt
	return &t
}
