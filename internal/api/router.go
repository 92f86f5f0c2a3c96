// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/gameedge/intelligence/internal/middleware"
)

// Router assembles the HTTP surface: middleware stack, API routes, and the
// operational endpoints (health, metrics, swagger).
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for the given handler. cm may be nil; a
// permissive middleware set is built in that case, which is what tests
// want.
func NewRouter(handler *Handler, cm *ChiMiddleware) *Router {
	if cm == nil {
		cm = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: cm}
}

// Setup builds the chi route tree.
//
// Global middleware order matters: request IDs come first so every later
// log line carries one, RealIP runs before anything that keys on the
// client address, and CORS is global so OPTIONS preflights short-circuit
// before rate limiting.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(router.chiMiddleware.RequestLogging())

	// ========================
	// Health & Observability
	// ========================
	// No rate limiting: probes and scrapers poll these continuously.
	r.Get("/healthz", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// ========================
	// API v1
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.Metrics)
		r.Use(router.handler.perfMon.Middleware)
		r.Use(middleware.Compression)

		// Heavy triggers: an analysis run or an import saturates a core
		// for seconds, so these carry a much tighter limiter.
		r.With(router.chiMiddleware.RateLimitHeavy()).Post("/analyze", router.handler.TriggerAnalysis)
		r.With(router.chiMiddleware.RateLimitHeavy()).Post("/import", router.handler.TriggerImport)

		r.Get("/segments", router.handler.ListSegments)
		r.Post("/segments", router.handler.CreateSegment)
		r.Get("/segments/{id}", router.handler.GetSegment)

		r.Get("/rfm/scores", router.handler.GetRFMScores)
		r.Get("/churn/predictions", router.handler.GetChurnPredictions)
		r.Get("/churn/risk-distribution", router.handler.GetChurnRiskDistribution)

		r.Get("/customers/{id}", router.handler.GetCustomer)
		r.Get("/customers/{id}/recommendations", router.handler.GetCustomerRecommendations)
		r.Get("/customers/{id}/feedback", router.handler.GetCustomerFeedback)

		r.Post("/bets", router.handler.PlaceBet)
		r.Post("/feedback", router.handler.SubmitFeedback)
		r.Get("/sentiment/trends", router.handler.GetSentimentTrends)

		r.Get("/analytics/dashboard", router.handler.GetDashboard)
		r.Get("/engine/status", router.handler.GetEngineStatus)
	})

	// Unmatched routes and wrong methods answer in the envelope shape so
	// clients parse one error format everywhere.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).Error(http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
	})

	return r
}
