// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/gameedge/intelligence/internal/logging"
)

func recordEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return env
}

func TestSuccessEnvelope(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-123"))
	rec := httptest.NewRecorder()

	NewResponseWriter(rec, req).Success(map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	env := recordEnvelope(t, rec)
	if !env.Success {
		t.Error("success = false, want true")
	}
	if env.Error != nil {
		t.Errorf("error = %+v, want nil", env.Error)
	}
	if env.Meta == nil {
		t.Fatal("meta missing")
	}
	if env.Meta.RequestID != "req-123" {
		t.Errorf("meta.request_id = %q, want req-123", env.Meta.RequestID)
	}
	if env.Meta.Timestamp.IsZero() {
		t.Error("meta.timestamp not set")
	}
	if env.Meta.Cached {
		t.Error("meta.cached = true on uncached response")
	}
}

func TestSuccessWithMetaCached(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	NewResponseWriter(rec, req).SuccessWithMeta("data", &APIMeta{Cached: true})

	env := recordEnvelope(t, rec)
	if env.Meta == nil || !env.Meta.Cached {
		t.Error("meta.cached not preserved")
	}
}

func TestErrorEnvelopes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		write      func(rw *ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{"bad request", func(rw *ResponseWriter) { rw.BadRequest("nope") }, http.StatusBadRequest, ErrCodeBadRequest},
		{"not found", func(rw *ResponseWriter) { rw.NotFound("gone") }, http.StatusNotFound, ErrCodeNotFound},
		{"conflict", func(rw *ResponseWriter) { rw.Conflict("busy") }, http.StatusConflict, ErrCodeConflict},
		{"too many requests", func(rw *ResponseWriter) { rw.TooManyRequests("slow down") }, http.StatusTooManyRequests, ErrCodeTooManyRequests},
		{"internal", func(rw *ResponseWriter) { rw.InternalError("boom") }, http.StatusInternalServerError, ErrCodeInternalError},
		{"unavailable", func(rw *ResponseWriter) { rw.ServiceUnavailable("down") }, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			rec := httptest.NewRecorder()

			tt.write(NewResponseWriter(rec, req))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			env := recordEnvelope(t, rec)
			if env.Success {
				t.Error("success = true on error response")
			}
			if env.Error == nil {
				t.Fatal("error missing")
			}
			if env.Error.Code != tt.wantCode {
				t.Errorf("error.code = %q, want %q", env.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestCreatedAndAcceptedStatus(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/test", nil)

	rec := httptest.NewRecorder()
	NewResponseWriter(rec, req).Created("made")
	if rec.Code != http.StatusCreated {
		t.Errorf("Created status = %d, want 201", rec.Code)
	}

	rec = httptest.NewRecorder()
	NewResponseWriter(rec, req).Accepted("queued")
	if rec.Code != http.StatusAccepted {
		t.Errorf("Accepted status = %d, want 202", rec.Code)
	}
}

func TestValidationErrorCarriesDetails(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	rec := httptest.NewRecorder()

	details := map[string]interface{}{"amount": "must be greater than 0"}
	NewResponseWriter(rec, req).ValidationError("Validation failed", details)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := recordEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != ErrCodeValidationFailed {
		t.Fatalf("error = %+v, want code %s", env.Error, ErrCodeValidationFailed)
	}
	if env.Error.Details == nil {
		t.Error("details dropped")
	}
}

func TestDatabaseErrorHidesInternals(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	NewResponseWriter(rec, req).DatabaseError("Failed to load segment", errors.New("duckdb: io error on block 42"))

	env := recordEnvelope(t, rec)
	if env.Error == nil {
		t.Fatal("error missing")
	}
	if env.Error.Code != ErrCodeDatabaseError {
		t.Errorf("error.code = %q, want %s", env.Error.Code, ErrCodeDatabaseError)
	}
	if env.Error.Message != "Failed to load segment" {
		t.Errorf("error.message = %q, want caller message", env.Error.Message)
	}
	if strings.Contains(rec.Body.String(), "duckdb") {
		t.Error("storage internals leaked into the response body")
	}
}
