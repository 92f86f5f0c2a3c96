// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/gameedge/intelligence/internal/config"
	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/metrics"
)

// Rate limit tiers. Reads share the configurable default; the two expensive
// triggers (full analysis, bulk import) get a small fixed budget because each
// request costs seconds of CPU or a remote fetch.
var rateLimitHeavy = rateLimitTier{requests: 10, window: time.Minute}

type rateLimitTier struct {
	requests int
	window   time.Duration
}

// ChiMiddleware builds the router's middleware from API configuration.
type ChiMiddleware struct {
	cfg  *config.APIConfig
	cors func(http.Handler) http.Handler
}

// NewChiMiddleware creates the middleware factory. A nil cfg falls back to
// permissive defaults suitable for tests.
func NewChiMiddleware(cfg *config.APIConfig) *ChiMiddleware {
	if cfg == nil {
		cfg = &config.APIConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		}
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Accept", "X-Request-ID"},
		MaxAge:         86400,
	})

	return &ChiMiddleware{cfg: cfg, cors: corsHandler}
}

// CORS returns the go-chi/cors handler, applied globally so OPTIONS
// preflights resolve before routing.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit returns the default per-IP limiter used by read endpoints.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.limit(rateLimitTier{
		requests: m.cfg.RateLimitRequests,
		window:   m.cfg.RateLimitWindow,
	})
}

// RateLimitHeavy returns the strict per-IP limiter for the analysis and
// import triggers.
func (m *ChiMiddleware) RateLimitHeavy() func(http.Handler) http.Handler {
	return m.limit(rateLimitHeavy)
}

func (m *ChiMiddleware) limit(tier rateLimitTier) func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		tier.requests,
		tier.window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimitExceeded),
	)
}

// rateLimitExceeded answers 429 in the standard envelope instead of
// httprate's plain-text default, and counts the rejection.
func rateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	metrics.RecordRateLimitHit(r.URL.Path)
	NewResponseWriter(w, r).TooManyRequests("Rate limit exceeded, retry later")
}

// RequestLogging writes one structured line per request once the response is
// done. Liveness and metrics scrapes stay out of the log; they fire every few
// seconds and say nothing.
func (m *ChiMiddleware) RequestLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapper := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapper, r)

			logging.Ctx(r.Context()).Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapper.statusCode).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("request")
		})
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *loggingResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
