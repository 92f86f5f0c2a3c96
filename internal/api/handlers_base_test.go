// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/gameedge/intelligence/internal/analytics"
	"github.com/gameedge/intelligence/internal/config"
	"github.com/gameedge/intelligence/internal/database"
	"github.com/gameedge/intelligence/internal/models"
)

// testDBSemaphore serializes DuckDB lifecycles across tests. Concurrent CGO
// connections under CI resource pressure can hang, so only one test holds an
// active database at a time.
var testDBSemaphore = make(chan struct{}, 1)

// envelope mirrors APIResponse with raw data for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

// newTestHandler builds a handler over a fresh in-memory database with a
// default engine and orchestrator. No ledger, pipeline, or importer: those
// paths are exercised by their own packages.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	db, err := database.New(&config.DatabaseConfig{Path: "", MaxConns: 2}, 90)
	if err != nil {
		t.Fatalf("database.New() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() failed: %v", err)
		}
	})

	engine, err := analytics.NewEngine(analytics.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	orch := analytics.NewOrchestrator(engine, db, db, nil)

	return NewHandler(db, orch, engine, nil, nil)
}

// newTestServer serves the full route tree over the given handler with rate
// limiting disabled.
func newTestServer(t *testing.T, h *Handler) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(NewRouter(h, nil).Setup())
	t.Cleanup(srv.Close)
	return srv
}

func seedTestCustomer(t *testing.T, h *Handler, username string, lifetimeValue float64) string {
	t.Helper()

	c := &models.Customer{
		ID:            uuid.NewString(),
		Username:      username,
		RegisteredAt:  time.Now().UTC().AddDate(0, 0, -365),
		LifetimeValue: lifetimeValue,
		IsActive:      true,
	}
	if err := h.db.UpsertCustomer(context.Background(), c); err != nil {
		t.Fatalf("UpsertCustomer(%s) failed: %v", username, err)
	}
	return c.ID
}

func seedTestBet(t *testing.T, h *Handler, customerID string, daysAgo int, amount float64, status string) {
	t.Helper()

	anchor := time.Now().UTC().AddDate(0, 0, -daysAgo)
	bet := models.Bet{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Sport:      "football",
		Market:     "moneyline",
		Amount:     amount,
		Odds:       2.0,
		Status:     status,
		PlacedAt:   time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 12, 0, 0, 0, time.UTC),
	}
	if _, err := h.db.InsertBet(context.Background(), &bet); err != nil {
		t.Fatalf("InsertBet failed: %v", err)
	}
}

// doGet issues a GET against the test server and decodes the envelope.
func doGet(t *testing.T, srv *httptest.Server, path string) (int, envelope) {
	t.Helper()

	resp, err := srv.Client().Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return decodeEnvelope(t, resp)
}

// doPost issues a JSON POST against the test server and decodes the
// envelope. A nil body sends an empty request body.
func doPost(t *testing.T, srv *httptest.Server, path string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	resp, err := srv.Client().Post(srv.URL+path, "application/json", reader)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return decodeEnvelope(t, resp)
}

func decodeEnvelope(t *testing.T, resp *http.Response) (int, envelope) {
	t.Helper()
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp.StatusCode, env
}

func unmarshalData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("unmarshal envelope data: %v", err)
	}
}

func TestNewHandlerInitializes(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, nil, nil, nil, nil)

	if h.cache == nil {
		t.Error("cache not initialized")
	}
	if h.perfMon == nil {
		t.Error("performance monitor not initialized")
	}
	if h.startTime.IsZero() {
		t.Error("start time not set")
	}
}

func TestNewHandlerCacheFromConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Cache.TTL = time.Minute
	cfg.Cache.MaxEntries = 7

	h := NewHandler(nil, nil, nil, nil, cfg)
	if h.cache == nil {
		t.Fatal("cache not initialized")
	}
}

func TestSetPipelineAndImporter(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, nil, nil, nil, nil)
	h.SetPipeline(nil)
	h.SetImporter(nil)

	if h.pipeline != nil || h.importer != nil {
		t.Error("nil optional dependencies should stay nil")
	}
}
