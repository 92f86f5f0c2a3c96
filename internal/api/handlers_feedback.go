// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gameedge/intelligence/internal/models"
)

// maxTrendDays bounds the sentiment trend window. The feedback table is
// small enough that the cap protects response size, not the query.
const maxTrendDays = 365

// SubmitFeedback stores one piece of customer feedback. Sentiment is scored
// at insert time inside the store, so the returned record already carries
// its score, label, and aspect breakdown.
//
// @Summary Submit feedback
// @Description Stores customer feedback and scores its sentiment synchronously. The response includes the computed sentiment score, label, and per-aspect breakdown.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body FeedbackRequest true "Feedback message"
// @Success 201 {object} APIResponse{data=models.Feedback} "Feedback stored"
// @Failure 400 {object} APIResponse "Malformed body"
// @Failure 500 {object} APIResponse "Insert failed"
// @Router /api/v1/feedback [post]
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.db == nil {
		rw.ServiceUnavailable("Database not available")
		return
	}

	var req FeedbackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	channel := req.Channel
	if channel == "" {
		channel = "app"
	}
	feedback := models.Feedback{
		CustomerID: req.CustomerID,
		Channel:    channel,
		Message:    req.Message,
	}
	if err := h.db.InsertFeedback(r.Context(), &feedback); err != nil {
		rw.DatabaseError("Failed to store feedback", err)
		return
	}
	rw.Created(feedback)
}

// GetSentimentTrends returns daily sentiment aggregates over the requested
// window.
//
// @Summary Get sentiment trends
// @Description Returns per-day feedback counts, mean sentiment score, and positive/negative/neutral tallies over the last N days.
// @Tags Feedback
// @Produce json
// @Param days query int false "Window in days" default(30)
// @Success 200 {object} APIResponse{data=[]models.SentimentTrend} "Trends computed"
// @Failure 400 {object} APIResponse "Invalid window"
// @Failure 500 {object} APIResponse "Query failed"
// @Router /api/v1/sentiment/trends [get]
func (h *Handler) GetSentimentTrends(w http.ResponseWriter, r *http.Request) {
	days := getIntParam(r, "days", 30)
	if days < 1 || days > maxTrendDays {
		NewResponseWriter(w, r).BadRequest("days must be between 1 and 365")
		return
	}

	executor := newQueryExecutor(h)
	executor.Execute(w, r, "SentimentTrends", struct{ Days int }{days}, func(ctx context.Context) (interface{}, error) {
		trends, err := h.db.GetSentimentTrends(ctx, days)
		if err != nil {
			return nil, err
		}
		if trends == nil {
			trends = []models.SentimentTrend{}
		}
		return trends, nil
	})
}

// GetCustomerFeedback lists a customer's feedback, newest first.
//
// @Summary List customer feedback
// @Description Returns the customer's stored feedback records with their sentiment scores, newest first.
// @Tags Feedback
// @Produce json
// @Param id path string true "Customer ID"
// @Param limit query int false "Maximum records to return" default(20)
// @Success 200 {object} APIResponse{data=[]models.Feedback} "Feedback listed"
// @Failure 500 {object} APIResponse "Query failed"
// @Router /api/v1/customers/{id}/feedback [get]
func (h *Handler) GetCustomerFeedback(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	limit := h.pageLimit(r)

	executor := newQueryExecutor(h)
	params := struct {
		CustomerID string
		Limit      int
	}{customerID, limit}
	executor.Execute(w, r, "CustomerFeedback", params, func(ctx context.Context) (interface{}, error) {
		feedback, err := h.db.GetFeedback(ctx, customerID, limit)
		if err != nil {
			return nil, err
		}
		if feedback == nil {
			feedback = []models.Feedback{}
		}
		return feedback, nil
	})
}

// pageLimit resolves the limit query parameter against the configured
// default and ceiling.
func (h *Handler) pageLimit(r *http.Request) int {
	defaultSize, maxSize := 20, 100
	if h.config != nil {
		if h.config.API.DefaultPageSize > 0 {
			defaultSize = h.config.API.DefaultPageSize
		}
		if h.config.API.MaxPageSize > 0 {
			maxSize = h.config.API.MaxPageSize
		}
	}
	limit := getIntParam(r, "limit", defaultSize)
	if limit < 1 {
		return defaultSize
	}
	if limit > maxSize {
		return maxSize
	}
	return limit
}
