// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gameedge/intelligence/internal/cache"
)

// queryExecutor implements the cache-first execution flow shared by the
// read endpoints:
//
//  1. Check the cache under a key derived from the endpoint name and its
//     query parameters.
//  2. On a hit, respond immediately with Cached: true in the metadata.
//  3. On a miss, run the query, cache the result, and respond.
//
// Mutating endpoints and the analysis trigger bypass the executor; the
// cache is cleared after each analysis run so reads never serve results
// from a superseded run for longer than one request.
type queryExecutor struct {
	handler *Handler
}

func newQueryExecutor(h *Handler) *queryExecutor {
	return &queryExecutor{handler: h}
}

// queryFunc runs the underlying read. The result must be JSON-serializable
// because it is stored in the cache and returned inside the response
// envelope.
type queryFunc func(ctx context.Context) (interface{}, error)

// Execute runs query under cacheKeyPrefix+params caching. params carries
// everything that distinguishes one response from another for the same
// endpoint (customer ID, kind, day window); pass nil for parameterless
// reads.
func (e *queryExecutor) Execute(w http.ResponseWriter, r *http.Request, cacheKeyPrefix string, params interface{}, query queryFunc) {
	rw := NewResponseWriter(w, r)

	if e.handler.db == nil {
		rw.ServiceUnavailable("Database not available")
		return
	}

	cacheKey := cache.GenerateKey(cacheKeyPrefix, params)

	if e.handler.cache != nil {
		if cached, found := e.handler.cache.Get(cacheKey); found {
			rw.SuccessWithMeta(cached, &APIMeta{Cached: true})
			return
		}
	}

	data, err := query(r.Context())
	if err != nil {
		rw.DatabaseError(fmt.Sprintf("Failed to execute query: %s", cacheKeyPrefix), err)
		return
	}

	if e.handler.cache != nil {
		e.handler.cache.Set(cacheKey, data)
	}
	rw.Success(data)
}
