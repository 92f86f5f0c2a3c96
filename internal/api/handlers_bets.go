// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package api

import (
	"net/http"

	"github.com/gameedge/intelligence/internal/events"
	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/models"
)

// betAccepted is the 202 payload for bets that entered the event pipeline.
// The bet row appears once the consumer processes the event; event_id is the
// dedup key if the client retries.
type betAccepted struct {
	EventID    string `json:"event_id"`
	CustomerID string `json:"customer_id"`
	Status     string `json:"status"`
}

// PlaceBet records one wager.
//
// With the event pipeline running the bet is published to the broker and
// acknowledged with 202; broker-level dedup and the insert-time ID check
// keep retries idempotent. Without the pipeline the bet is inserted
// directly and returned with 201.
//
// Neither path invalidates the read cache: dashboards and trends tolerate
// one TTL of staleness, and clearing on every wager would defeat the cache
// under betting load.
//
// @Summary Place a bet
// @Description Records a wager for a customer. When the event pipeline is enabled the bet is published to the broker and ingested asynchronously (202); otherwise it is inserted directly (201).
// @Tags Bets
// @Accept json
// @Produce json
// @Param request body PlaceBetRequest true "Wager details"
// @Success 201 {object} APIResponse{data=models.Bet} "Bet inserted"
// @Success 202 {object} APIResponse{data=betAccepted} "Bet accepted for ingestion"
// @Failure 400 {object} APIResponse "Malformed body"
// @Failure 503 {object} APIResponse "Pipeline and database unavailable"
// @Router /api/v1/bets [post]
func (h *Handler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req PlaceBetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if h.pipeline.IsRunning() {
		event := events.NewBetEvent(req.CustomerID)
		event.Sport = req.Sport
		event.Market = req.Market
		event.Amount = req.Amount
		event.Odds = req.Odds
		event.Status = req.Status

		if err := h.pipeline.Publisher().PublishEvent(r.Context(), event); err != nil {
			logging.Ctx(r.Context()).Error().Err(err).
				Str("event_id", event.EventID).
				Msg("Bet event publish failed")
			rw.ServiceUnavailable("Bet pipeline unavailable")
			return
		}
		rw.Accepted(betAccepted{
			EventID:    event.EventID,
			CustomerID: event.CustomerID,
			Status:     "accepted",
		})
		return
	}

	if h.db == nil {
		rw.ServiceUnavailable("Database not available")
		return
	}

	bet := models.Bet{
		CustomerID: req.CustomerID,
		Sport:      req.Sport,
		Market:     req.Market,
		Amount:     req.Amount,
		Odds:       req.Odds,
		Status:     req.Status,
	}
	inserted, err := h.db.InsertBet(r.Context(), &bet)
	if err != nil {
		rw.DatabaseError("Failed to record bet", err)
		return
	}
	if !inserted {
		rw.Conflict("Bet already recorded")
		return
	}
	rw.Created(bet)
}
