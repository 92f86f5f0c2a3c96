// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gameedge/intelligence/internal/database"
	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/models"
)

// ListSegments returns the latest analysis run's segments.
//
// @Summary List segments
// @Description Returns the segments produced by the most recent analysis run plus any custom behavioral segments, optionally filtered by kind.
// @Tags Segments
// @Produce json
// @Param kind query string false "Filter by segment kind (rfm, clustering, behavioral)"
// @Success 200 {object} APIResponse{data=[]models.SegmentRecord} "Segments listed"
// @Failure 400 {object} APIResponse "Unknown kind"
// @Failure 500 {object} APIResponse "Query failed"
// @Router /api/v1/segments [get]
func (h *Handler) ListSegments(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	switch kind {
	case "", models.SegmentKindRFM, models.SegmentKindClustering, models.SegmentKindBehavioral:
	default:
		NewResponseWriter(w, r).BadRequest(fmt.Sprintf("Unknown segment kind %q", kind))
		return
	}

	executor := newQueryExecutor(h)
	executor.Execute(w, r, "Segments", struct{ Kind string }{kind}, func(ctx context.Context) (interface{}, error) {
		segments, err := h.db.LatestSegments(ctx, kind)
		if err != nil {
			return nil, err
		}
		if segments == nil {
			segments = []models.SegmentRecord{}
		}
		return segments, nil
	})
}

// GetSegment returns one segment by ID. Uncached: it is a primary-key
// lookup, and a cache entry cannot represent "gone after the next run".
//
// @Summary Get a segment
// @Description Returns a single segment record. Member customer IDs are included only when include_members=true because segments can hold tens of thousands of members.
// @Tags Segments
// @Produce json
// @Param id path string true "Segment ID"
// @Param include_members query bool false "Include member customer IDs"
// @Success 200 {object} APIResponse{data=models.SegmentRecord} "Segment found"
// @Failure 404 {object} APIResponse "No such segment"
// @Failure 500 {object} APIResponse "Query failed"
// @Router /api/v1/segments/{id} [get]
func (h *Handler) GetSegment(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.db == nil {
		rw.ServiceUnavailable("Database not available")
		return
	}

	id := chi.URLParam(r, "id")
	segment, err := h.db.GetSegment(r.Context(), id, getBoolParam(r, "include_members"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			rw.NotFound(fmt.Sprintf("Segment %q not found", id))
			return
		}
		rw.DatabaseError("Failed to load segment", err)
		return
	}
	rw.Success(segment)
}

// CreateSegment creates a custom behavioral segment from a criteria rule.
// Membership is computed once at creation time from current customer
// aggregates; subsequent analysis runs do not touch custom segments.
//
// @Summary Create a custom segment
// @Description Creates a behavioral segment whose members are the customers matching a single aggregate criteria rule, such as lifetime_value gte 1000.
// @Tags Segments
// @Accept json
// @Produce json
// @Param request body CreateSegmentRequest true "Segment name and criteria rule"
// @Success 201 {object} APIResponse{data=models.SegmentRecord} "Segment created"
// @Failure 400 {object} APIResponse "Malformed body or invalid rule"
// @Failure 500 {object} APIResponse "Creation failed"
// @Router /api/v1/segments [post]
func (h *Handler) CreateSegment(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.db == nil {
		rw.ServiceUnavailable("Database not available")
		return
	}

	var req CreateSegmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rule := database.CriteriaRule{
		Field:    req.Field,
		Operator: req.Operator,
		Value:    req.Value,
	}
	segment, err := h.db.CreateSegmentFromRule(r.Context(), req.Name, rule)
	if err != nil {
		if errors.Is(err, database.ErrInvalidCriteria) {
			rw.BadRequest(err.Error())
			return
		}
		rw.DatabaseError("Failed to create segment", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("segment_id", segment.ID).
		Str("rule", rule.String()).
		Int("members", segment.MemberCount).
		Msg("Custom segment created")

	// Segment listings changed.
	h.ClearCache()
	rw.Created(segment)
}
