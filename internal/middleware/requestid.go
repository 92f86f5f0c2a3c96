// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package middleware

import (
	"net/http"

	"github.com/gameedge/intelligence/internal/logging"
)

// RequestID assigns every request a request id and a fresh correlation id,
// echoes the request id back in the X-Request-ID response header, and stores
// both in the context so downstream log lines and response envelopes can
// reference them.
//
// An X-Request-ID supplied by an upstream proxy is trusted and reused, which
// keeps traces intact across hops.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set("X-Request-ID", requestID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		ctx = logging.ContextWithCorrelationID(ctx, logging.GenerateCorrelationID())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
