// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/metrics"
)

const fetchBreakerName = "import-fetch"

// Fetcher downloads import payloads from remote URLs. A circuit breaker
// keeps a flapping source from tying up import requests: three consecutive
// failures open it, and callers fail fast until the cooldown passes.
type Fetcher struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	maxBody int64
}

// NewFetcher builds a fetcher with the given per-request timeout and
// response size cap.
func NewFetcher(timeout time.Duration, maxBody int64) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        fetchBreakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Import fetch breaker state changed")
			metrics.SetCircuitBreakerState(name, int(to))
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})

	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
		maxBody: maxBody,
	}
}

// Fetch downloads the document at url through the circuit breaker.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := f.breaker.Execute(func() ([]byte, error) {
		return f.fetch(ctx, url)
	})
	if err != nil {
		metrics.RecordImportError("fetch")
		return nil, fmt.Errorf("failed to fetch import source: %w", err)
	}
	return body, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Msg("Error closing import source body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned status %d", resp.StatusCode)
	}

	// Read one byte past the cap to tell "exactly at the limit" from
	// "over it".
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read source body: %w", err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, fmt.Errorf("source body exceeds %d byte limit", f.maxBody)
	}
	return body, nil
}

// BreakerState reports the fetch breaker state for the status endpoint.
func (f *Fetcher) BreakerState() string {
	return f.breaker.State().String()
}
