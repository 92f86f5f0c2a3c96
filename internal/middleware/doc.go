// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

// Package middleware provides the HTTP middleware shared by the API router.
//
// All middleware uses the chi-native func(http.Handler) http.Handler shape:
//
//   - RequestID: request/correlation id injection for tracing
//   - Metrics: Prometheus request instrumentation keyed by route pattern
//   - PerformanceMonitor: in-process latency window for the status endpoint
//   - Compression: pooled gzip response compression
//
// Ordering matters: RequestID must run before anything that logs, and Metrics
// must run inside the router so chi has resolved the route pattern by the
// time the request completes.
package middleware
