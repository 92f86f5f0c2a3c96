// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

// Request bodies with go-playground/validator tags. Handlers decode into
// these, run validation.ValidateStruct, and answer VALIDATION_FAILED
// envelopes with per-field details on violation.
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/gameedge/intelligence/internal/validation"
)

// maxRequestBodyBytes caps ordinary JSON bodies. The import endpoint has its
// own, much larger configurable cap.
const maxRequestBodyBytes = 1 << 20 // 1 MiB

// errEmptyBody distinguishes an absent body from malformed JSON. Endpoints
// where every field is optional treat it as "use defaults".
var errEmptyBody = errors.New("request body is empty")

// AnalyzeRequest triggers an analysis run.
type AnalyzeRequest struct {
	Method                 string `json:"method" validate:"omitempty,oneof=rfm clustering hybrid"`
	ClusteringMethod       string `json:"clustering_method" validate:"omitempty,oneof=partition density"`
	IncludeChurnPrediction bool   `json:"include_churn_prediction"`
}

// CreateSegmentRequest creates a custom behavioral segment from one
// criteria rule evaluated against customer aggregates.
type CreateSegmentRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=128"`
	Field    string  `json:"field" validate:"required,oneof=lifetime_value total_wagered total_won"`
	Operator string  `json:"operator" validate:"required,oneof=gte lte gt lt"`
	Value    float64 `json:"value"`
}

// PlaceBetRequest records one wager.
type PlaceBetRequest struct {
	CustomerID string  `json:"customer_id" validate:"required,min=1,max=64"`
	Sport      string  `json:"sport" validate:"required,min=1,max=64"`
	Market     string  `json:"market" validate:"omitempty,max=128"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Odds       float64 `json:"odds" validate:"required,gte=1.0"`
	Status     string  `json:"status" validate:"omitempty,oneof=pending won lost void"`
}

// FeedbackRequest stores one piece of customer feedback. Sentiment is scored
// server-side at insert time; clients never submit scores.
type FeedbackRequest struct {
	CustomerID string `json:"customer_id" validate:"required,min=1,max=64"`
	Channel    string `json:"channel" validate:"omitempty,oneof=app email support survey"`
	Message    string `json:"message" validate:"required,min=1,max=4000"`
}

// decodeJSON reads and unmarshals a JSON body into dst. Unknown fields are
// rejected so clients find typos instead of silently losing options.
func decodeJSON(r *http.Request, dst interface{}, maxBytes int64) error {
	body := http.MaxBytesReader(nil, r.Body, maxBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body exceeds %d byte limit", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return errEmptyBody
		default:
			return fmt.Errorf("invalid JSON: %w", err)
		}
	}
	// A second document after the first is a malformed request.
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// decodeAndValidate decodes the body and validates the struct, writing the
// appropriate error envelope itself. Returns false when the handler should
// stop.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	rw := NewResponseWriter(w, r)
	if err := decodeJSON(r, dst, maxRequestBodyBytes); err != nil {
		rw.BadRequest(err.Error())
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

// getIntParam extracts an integer query parameter, falling back to the
// default on absence or garbage.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getBoolParam reports whether a query parameter is an explicit true.
func getBoolParam(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}
