// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gameedge/intelligence/internal/analytics"
	"github.com/gameedge/intelligence/internal/importer"
	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/middleware"
	"github.com/gameedge/intelligence/internal/models"
	"github.com/gameedge/intelligence/internal/validation"
)

// TriggerAnalysis runs a full analysis synchronously and returns the report.
//
// Only one run executes at a time; a second trigger while a run is in flight
// gets a 409 rather than queueing, because back-to-back runs over the same
// activity batch produce identical segments.
//
// @Summary Trigger an analysis run
// @Description Runs RFM scoring, optional clustering and churn prediction over current customer activity, persists the resulting segments, and returns the full report. An empty body runs the hybrid method with defaults.
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest false "Run options"
// @Success 200 {object} APIResponse{data=models.AnalysisReport} "Analysis completed"
// @Failure 400 {object} APIResponse "Invalid method or malformed body"
// @Failure 409 {object} APIResponse "A run is already in progress"
// @Failure 500 {object} APIResponse "Run failed"
// @Router /api/v1/analyze [post]
func (h *Handler) TriggerAnalysis(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.orchestrator == nil {
		rw.ServiceUnavailable("Analysis engine not available")
		return
	}

	var req AnalyzeRequest
	if err := decodeJSON(r, &req, maxRequestBodyBytes); err != nil && !errors.Is(err, errEmptyBody) {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	if !h.analyzing.CompareAndSwap(false, true) {
		rw.Conflict("An analysis run is already in progress")
		return
	}
	defer h.analyzing.Store(false)

	ctx := r.Context()
	if h.config != nil && h.config.Analysis.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Analysis.RunTimeout)
		defer cancel()
	}

	report, err := h.orchestrator.Run(ctx, analytics.RunOptions{
		Method:         req.Method,
		ClusteringMode: req.ClusteringMethod,
		IncludeChurn:   req.IncludeChurnPrediction,
	})
	if err != nil {
		if errors.Is(err, analytics.ErrUnknownAnalysisMethod) {
			rw.BadRequest(err.Error())
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("Analysis run failed")
		rw.InternalError("Analysis run failed")
		return
	}

	// Segments, scores, and the dashboard all changed with this run.
	h.ClearCache()
	rw.Success(report)
}

// RunScheduledAnalysis runs one analysis pass with default options under the
// same single-flight gate as POST /analyze, then drops the read cache. The
// periodic scheduler calls this; a pass that finds a run already in flight
// is skipped, not queued.
func (h *Handler) RunScheduledAnalysis(ctx context.Context) error {
	if h.orchestrator == nil {
		return errors.New("analysis engine not available")
	}
	if !h.analyzing.CompareAndSwap(false, true) {
		logging.Ctx(ctx).Info().Msg("Scheduled analysis skipped, a run is already in progress")
		return nil
	}
	defer h.analyzing.Store(false)

	report, err := h.orchestrator.Run(ctx, analytics.RunOptions{})
	if err != nil {
		return err
	}

	h.ClearCache()
	logging.Ctx(ctx).Info().
		Str("run_id", report.RunID).
		Int("rows_scored", report.RowsScored).
		Int("segments", report.SegmentCount).
		Msg("Scheduled analysis completed")
	return nil
}

// GetRFMScores returns the RFM score batch for current activity.
//
// Scoring is quantile-based over the whole batch, so a customer's score only
// exists relative to that batch; the customer_id filter narrows the response,
// not the computation.
//
// @Summary Get RFM scores
// @Description Scores every customer's recency, frequency, and monetary behavior on 1-5 scales with a weighted composite. Optionally narrows the response to a single customer.
// @Tags Analysis
// @Produce json
// @Param customer_id query string false "Return only this customer's score"
// @Success 200 {object} APIResponse{data=models.RFMResult} "Scores computed"
// @Failure 500 {object} APIResponse "Scoring failed"
// @Router /api/v1/rfm/scores [get]
func (h *Handler) GetRFMScores(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		NewResponseWriter(w, r).ServiceUnavailable("Analysis engine not available")
		return
	}

	customerID := r.URL.Query().Get("customer_id")
	executor := newQueryExecutor(h)
	executor.Execute(w, r, "RFMScores", struct{ CustomerID string }{customerID}, func(ctx context.Context) (interface{}, error) {
		rows, err := h.db.GetCustomerActivity(ctx)
		if err != nil {
			return nil, err
		}
		result := h.engine.ScoreRFM(ctx, rows)
		if customerID != "" {
			narrowed := make([]models.RFMScore, 0, 1)
			for _, s := range result.Scores {
				if s.CustomerID == customerID {
					narrowed = append(narrowed, s)
					break
				}
			}
			result.Scores = narrowed
		}
		if result.Scores == nil {
			result.Scores = []models.RFMScore{}
		}
		return result, nil
	})
}

// GetChurnPredictions returns per-customer churn probabilities and risk
// tiers from a model trained on the current activity batch.
//
// @Summary Get churn predictions
// @Description Trains a random-forest churn model on current activity and returns each customer's churn probability and risk tier. Customers without enough history get an unknown tier.
// @Tags Analysis
// @Produce json
// @Success 200 {object} APIResponse{data=models.ChurnResult} "Predictions computed"
// @Failure 500 {object} APIResponse "Prediction failed"
// @Router /api/v1/churn/predictions [get]
func (h *Handler) GetChurnPredictions(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		NewResponseWriter(w, r).ServiceUnavailable("Analysis engine not available")
		return
	}

	executor := newQueryExecutor(h)
	executor.Execute(w, r, "ChurnPredictions", nil, func(ctx context.Context) (interface{}, error) {
		rows, err := h.db.GetCustomerActivity(ctx)
		if err != nil {
			return nil, err
		}
		result := h.engine.PredictChurn(ctx, rows)
		if result.Predictions == nil {
			result.Predictions = []models.ChurnPrediction{}
		}
		return result, nil
	})
}

// GetChurnRiskDistribution returns customer counts per churn risk tier.
//
// @Summary Get churn risk distribution
// @Description Returns how many customers fall into each churn risk tier (low, medium, high, unknown) under the current model.
// @Tags Analysis
// @Produce json
// @Success 200 {object} APIResponse{data=models.RiskDistribution} "Distribution computed"
// @Failure 500 {object} APIResponse "Prediction failed"
// @Router /api/v1/churn/risk-distribution [get]
func (h *Handler) GetChurnRiskDistribution(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		NewResponseWriter(w, r).ServiceUnavailable("Analysis engine not available")
		return
	}

	executor := newQueryExecutor(h)
	executor.Execute(w, r, "ChurnRiskDistribution", nil, func(ctx context.Context) (interface{}, error) {
		rows, err := h.db.GetCustomerActivity(ctx)
		if err != nil {
			return nil, err
		}
		result := h.engine.PredictChurn(ctx, rows)

		var dist models.RiskDistribution
		for _, p := range result.Predictions {
			switch p.RiskLevel {
			case models.RiskLow:
				dist.Low++
			case models.RiskMedium:
				dist.Medium++
			case models.RiskHigh:
				dist.High++
			default:
				dist.Unknown++
			}
			dist.Total++
		}
		return dist, nil
	})
}

// EngineStatus is the live operational snapshot served by GetEngineStatus.
type EngineStatus struct {
	UptimeSeconds int64                      `json:"uptime_seconds"`
	Engine        engineConfigStatus         `json:"engine"`
	RecentRuns    []models.AnalysisReport    `json:"recent_runs"`
	TotalRuns     int                        `json:"total_runs"`
	AnalysisBusy  bool                       `json:"analysis_in_progress"`
	Pipeline      pipelineStatus             `json:"pipeline"`
	Importer      importerStatus             `json:"importer"`
	Cache         cacheStatus                `json:"cache"`
	Endpoints     []middleware.EndpointStats `json:"endpoints,omitempty"`
}

// engineConfigStatus mirrors the engine configuration fields worth exposing
// over HTTP, in wire casing.
type engineConfigStatus struct {
	RecencyWeight      float64 `json:"recency_weight"`
	FrequencyWeight    float64 `json:"frequency_weight"`
	MonetaryWeight     float64 `json:"monetary_weight"`
	Seed               int64   `json:"seed"`
	ForestTrees        int     `json:"forest_trees"`
	ForestMaxDepth     int     `json:"forest_max_depth"`
	MinClusterRows     int     `json:"min_cluster_rows"`
	MinTrainRows       int     `json:"min_train_rows"`
	HighValueQuantile  float64 `json:"high_value_quantile"`
	ChurnThresholdDays float64 `json:"churn_threshold_days"`
	ModelSource        string  `json:"model_source"`
}

type pipelineStatus struct {
	Enabled      bool   `json:"enabled"`
	Running      bool   `json:"running"`
	BreakerState string `json:"breaker_state,omitempty"`
	Consumed     int64  `json:"consumed"`
	Duplicates   int64  `json:"duplicates"`
	Dropped      int64  `json:"dropped"`
	Failed       int64  `json:"failed"`
}

type importerStatus struct {
	Enabled      bool            `json:"enabled"`
	Running      bool            `json:"running"`
	BreakerState string          `json:"breaker_state,omitempty"`
	LastRun      *importer.Stats `json:"last_run,omitempty"`
}

type cacheStatus struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	Keys      int64   `json:"keys"`
	HitRate   float64 `json:"hit_rate"`
}

// GetEngineStatus reports live engine, pipeline, importer, and cache state.
// Never cached: operators poll this to watch runs and breakers.
//
// @Summary Get engine status
// @Description Returns the engine configuration snapshot, recent analysis runs, bet pipeline and importer state, cache counters, and per-endpoint latency statistics.
// @Tags Analysis
// @Produce json
// @Success 200 {object} APIResponse{data=EngineStatus} "Status collected"
// @Router /api/v1/engine/status [get]
func (h *Handler) GetEngineStatus(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	status := EngineStatus{
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		AnalysisBusy:  h.analyzing.Load(),
		RecentRuns:    []models.AnalysisReport{},
	}

	if h.engine != nil {
		cfg := h.engine.Config()
		status.Engine = engineConfigStatus{
			RecencyWeight:      cfg.RecencyWeight,
			FrequencyWeight:    cfg.FrequencyWeight,
			MonetaryWeight:     cfg.MonetaryWeight,
			Seed:               cfg.Seed,
			ForestTrees:        cfg.ForestTrees,
			ForestMaxDepth:     cfg.ForestMaxDepth,
			MinClusterRows:     cfg.MinClusterRows,
			MinTrainRows:       cfg.MinTrainRows,
			HighValueQuantile:  cfg.HighValueQuantile,
			ChurnThresholdDays: cfg.ChurnThresholdDays,
			ModelSource:        cfg.ModelSource,
		}
	}

	if h.ledger != nil {
		if runs, err := h.ledger.Latest(r.Context(), 5); err == nil {
			status.RecentRuns = runs
		} else {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Run ledger read failed")
		}
		if n, err := h.ledger.Count(r.Context()); err == nil {
			status.TotalRuns = n
		}
	}

	status.Pipeline = pipelineStatus{
		Enabled: h.pipeline != nil,
		Running: h.pipeline.IsRunning(),
	}
	if pub := h.pipeline.Publisher(); pub != nil {
		status.Pipeline.BreakerState = pub.BreakerState()
	}
	pstats := h.pipeline.Stats()
	status.Pipeline.Consumed = pstats.Consumed
	status.Pipeline.Duplicates = pstats.Duplicates
	status.Pipeline.Dropped = pstats.Dropped
	status.Pipeline.Failed = pstats.Failed

	status.Importer = importerStatus{Enabled: h.importer != nil}
	if h.importer != nil {
		status.Importer.Running = h.importer.IsRunning()
		status.Importer.BreakerState = h.importer.FetchBreakerState()
		status.Importer.LastRun = h.importer.LastRun()
	}

	if h.cache != nil {
		cs := h.cache.GetStats()
		status.Cache = cacheStatus{
			Hits:      cs.Hits,
			Misses:    cs.Misses,
			Evictions: cs.Evictions,
			Keys:      cs.TotalKeys,
			HitRate:   h.cache.HitRate(),
		}
	}

	if h.perfMon != nil {
		status.Endpoints = h.perfMon.Stats()
	}

	rw.Success(status)
}
