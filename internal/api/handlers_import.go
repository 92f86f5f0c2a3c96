// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package api

import (
	"errors"
	"net/http"

	"github.com/gameedge/intelligence/internal/importer"
	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/validation"
)

// TriggerImport runs a bulk import synchronously and returns its stats.
//
// The body names exactly one source: a remote URL or inline rows. Inline
// documents can be large, so the body cap comes from the import
// configuration rather than the ordinary request limit. One import runs at
// a time; concurrent triggers get a 409.
//
// @Summary Trigger a bulk import
// @Description Imports customers and bets from a remote JSON document or inline arrays. Re-importing a byte-identical document short-circuits via checksum. Returns per-table received, imported, skipped, and duplicate counts.
// @Tags Import
// @Accept json
// @Produce json
// @Param request body importer.Request true "Import source"
// @Success 200 {object} APIResponse{data=importer.Stats} "Import completed"
// @Failure 400 {object} APIResponse "No source, both sources, or malformed body"
// @Failure 409 {object} APIResponse "An import is already running"
// @Failure 500 {object} APIResponse "Import failed"
// @Failure 503 {object} APIResponse "Import disabled"
// @Router /api/v1/import [post]
func (h *Handler) TriggerImport(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.importer == nil {
		rw.ServiceUnavailable("Bulk import not enabled")
		return
	}

	maxBytes := int64(32 << 20)
	if h.config != nil && h.config.Import.MaxBodyBytes > 0 {
		maxBytes = h.config.Import.MaxBodyBytes
	}

	var req importer.Request
	if err := decodeJSON(r, &req, maxBytes); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	stats, err := h.importer.Run(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrImportInProgress):
			rw.Conflict("An import is already running")
		case errors.Is(err, importer.ErrNoSource), errors.Is(err, importer.ErrAmbiguousSource):
			rw.BadRequest(err.Error())
		default:
			logging.Ctx(r.Context()).Error().Err(err).Msg("Bulk import failed")
			rw.InternalError("Import failed")
		}
		return
	}

	// Imported rows change every read endpoint's answer.
	h.ClearCache()
	rw.Success(stats)
}
