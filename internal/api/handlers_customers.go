// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gameedge/intelligence/internal/cache"
	"github.com/gameedge/intelligence/internal/database"
)

// GetCustomer returns one stored customer.
//
// @Summary Get a customer
// @Description Returns the stored customer record by ID.
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} APIResponse{data=models.Customer} "Customer found"
// @Failure 404 {object} APIResponse "No such customer"
// @Failure 500 {object} APIResponse "Query failed"
// @Router /api/v1/customers/{id} [get]
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.db == nil {
		rw.ServiceUnavailable("Database not available")
		return
	}

	id := chi.URLParam(r, "id")
	customer, err := h.db.GetCustomer(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			rw.NotFound(fmt.Sprintf("Customer %q not found", id))
			return
		}
		rw.DatabaseError("Failed to load customer", err)
		return
	}
	rw.Success(customer)
}

// GetCustomerRecommendations returns the recommendation set for one
// customer, derived from batch RFM scoring and churn prediction over
// current activity.
//
// Cached manually rather than through the executor because an unknown
// customer must produce a 404 envelope, which the cache-first path cannot
// express. Only found results are cached.
//
// @Summary Get customer recommendations
// @Description Evaluates retention, engagement, and upsell triggers for one customer against batch RFM and churn outputs, returning the matching recommendations with the customer's segment and risk tier.
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} APIResponse{data=models.RecommendationSet} "Recommendations computed"
// @Failure 404 {object} APIResponse "No such customer"
// @Failure 500 {object} APIResponse "Computation failed"
// @Router /api/v1/customers/{id}/recommendations [get]
func (h *Handler) GetCustomerRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.db == nil {
		rw.ServiceUnavailable("Database not available")
		return
	}
	if h.engine == nil {
		rw.ServiceUnavailable("Analysis engine not available")
		return
	}

	id := chi.URLParam(r, "id")
	cacheKey := cache.GenerateKey("Recommendations", struct{ CustomerID string }{id})
	if h.cache != nil {
		if cached, found := h.cache.Get(cacheKey); found {
			rw.SuccessWithMeta(cached, &APIMeta{Cached: true})
			return
		}
	}

	ctx := r.Context()
	rows, err := h.db.GetCustomerActivity(ctx)
	if err != nil {
		rw.DatabaseError("Failed to load customer activity", err)
		return
	}

	rfm := h.engine.ScoreRFM(ctx, rows)
	churn := h.engine.PredictChurn(ctx, rows)
	set := h.engine.Recommend(ctx, id, rows, &rfm, &churn)
	if !set.Found {
		rw.NotFound(fmt.Sprintf("Customer %q not found", id))
		return
	}

	if h.cache != nil {
		h.cache.Set(cacheKey, set)
	}
	rw.Success(set)
}
