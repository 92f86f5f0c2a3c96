// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

// Package services wraps the application's long-running components as
// suture services.
//
// Each wrapper adapts one component lifecycle to suture's blocking
// Serve(ctx) contract:
//
//   - HTTPServerService: the chi HTTP server (ListenAndServe/Shutdown)
//   - AnalysisService: the periodic analysis scheduler (ticker loop)
//   - PipelineService: the bet-event pipeline (Start/Shutdown/IsRunning)
//   - LedgerGCService: Badger value-log maintenance for the run ledger
//
// Wrappers depend on small local interfaces rather than the concrete
// component packages, so the supervisor layer never imports upward.
package services
