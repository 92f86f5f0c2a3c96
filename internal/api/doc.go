// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

// Package api exposes the customer analytics HTTP surface.
//
// Every endpoint answers with the same envelope:
//
//	{"success": true,  "data": ..., "meta": {"request_id": ..., "duration_ms": ...}}
//	{"success": false, "error": {"code": ..., "message": ...}, "meta": ...}
//
// Routing uses chi with per-group httprate limits: reads share a default
// budget while the expensive triggers (analyze, import) get a much smaller
// one. Read endpoints run through a cache-first executor so dashboard polling
// does not recompute analytics on every request.
//
// Handlers are split by concern:
//   - handlers_analysis.go: analysis trigger, RFM scores, churn, engine status
//   - handlers_segments.go: segment listing, lookup, custom creation
//   - handlers_customers.go: customer lookup and recommendations
//   - handlers_bets.go: wager recording (event pipeline or direct insert)
//   - handlers_feedback.go: feedback intake and sentiment trends
//   - handlers_dashboard.go: aggregated dashboard
//   - handlers_import.go: bulk dataset import
//   - handlers_health.go: liveness
package api
