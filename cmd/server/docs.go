// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

// Package main provides the GameEdge Intelligence HTTP server
//
// GameEdge Intelligence computes customer value scores, segments, churn
// risk, and action recommendations for sports-betting platforms.
//
// @title GameEdge Intelligence API
// @version 1.0
// @description Customer-intelligence backend for sports-betting analytics
// @description
// @description ## Features
// @description
// @description - **RFM Scoring**: recency/frequency/monetary customer-value scores with a weighted composite
// @description - **Clustering**: k-means (silhouette-selected k) or DBSCAN behavioral clustering
// @description - **Churn Prediction**: random-forest churn probabilities with low/medium/high risk tiers
// @description - **Segments**: overlapping RFM, cluster, and behavioral segment families, fresh each run
// @description - **Recommendations**: per-customer retention/engagement/upsell actions
// @description - **Feedback Sentiment**: lexicon scoring with betting-domain aspect extraction
// @description - **Bet Ingestion**: direct inserts or an embedded NATS JetStream event pipeline
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description POST /analyze and POST /import carry a tighter 10 requests per minute limit.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "meta": {
// @description     "request_id": "...",
// @description     "duration_ms": 0
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/gameedge/intelligence/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Analysis
// @tag.description Analysis runs, RFM scores, churn predictions, and engine status
//
// @tag.name Segments
// @tag.description Segment listing, detail, and rule-based custom segments
//
// @tag.name Customers
// @tag.description Customer detail, recommendations, and feedback history
//
// @tag.name Ingestion
// @tag.description Bet placement, feedback submission, and bulk imports
//
// @tag.name Dashboard
// @tag.description Aggregated dashboard statistics and sentiment trends
package main
