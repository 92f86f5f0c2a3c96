// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package database

import (
	"context"
	"math"
	"testing"

	"github.com/gameedge/intelligence/internal/models"
)

func TestInsertBetUpdatesAggregates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id := seedCustomer(t, db, "aggregates")

	// A won bet adds stake to wagered and payout (stake * odds) to won.
	won := betAt(id, 1, 100, 2.5, models.BetStatusWon)
	inserted, err := db.InsertBet(ctx, &won)
	if err != nil {
		t.Fatalf("InsertBet(won) failed: %v", err)
	}
	if !inserted {
		t.Error("InsertBet(won) reported duplicate for a fresh bet")
	}

	lost := betAt(id, 2, 50, 1.8, models.BetStatusLost)
	if _, err := db.InsertBet(ctx, &lost); err != nil {
		t.Fatalf("InsertBet(lost) failed: %v", err)
	}

	got, err := db.GetCustomer(ctx, id)
	if err != nil {
		t.Fatalf("GetCustomer() failed: %v", err)
	}

	if math.Abs(got.TotalWagered-150) > 1e-9 {
		t.Errorf("TotalWagered = %v, want 150", got.TotalWagered)
	}
	if math.Abs(got.TotalWon-250) > 1e-9 {
		t.Errorf("TotalWon = %v, want 250 (100 * 2.5)", got.TotalWon)
	}
	if math.Abs(got.LifetimeValue-(-100)) > 1e-9 {
		t.Errorf("LifetimeValue = %v, want -100 (wagered 150 - won 250)", got.LifetimeValue)
	}
}

func TestInsertBetsSkipsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id := seedCustomer(t, db, "dedupe")
	bet := betAt(id, 1, 25, 2.0, models.BetStatusLost)

	inserted, duplicates, err := db.InsertBets(ctx, []models.Bet{bet, bet})
	if err != nil {
		t.Fatalf("InsertBets() failed: %v", err)
	}
	if inserted != 1 || duplicates != 1 {
		t.Errorf("inserted=%d duplicates=%d, want 1 and 1", inserted, duplicates)
	}

	// Redelivery after commit is also skipped.
	inserted, duplicates, err = db.InsertBets(ctx, []models.Bet{bet})
	if err != nil {
		t.Fatalf("InsertBets() redelivery failed: %v", err)
	}
	if inserted != 0 || duplicates != 1 {
		t.Errorf("redelivery inserted=%d duplicates=%d, want 0 and 1", inserted, duplicates)
	}

	// Aggregates reflect the single insert only.
	got, err := db.GetCustomer(ctx, id)
	if err != nil {
		t.Fatalf("GetCustomer() failed: %v", err)
	}
	if math.Abs(got.TotalWagered-25) > 1e-9 {
		t.Errorf("TotalWagered = %v, want 25", got.TotalWagered)
	}
}

func TestInsertBetNormalization(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id := seedCustomer(t, db, "normalize")

	bet := models.Bet{
		CustomerID: id,
		Sport:      "tennis",
		Market:     "total",
		Amount:     40,
		Odds:       3.0,
	}
	if _, err := db.InsertBet(ctx, &bet); err != nil {
		t.Fatalf("InsertBet() failed: %v", err)
	}

	if bet.ID == "" {
		t.Error("ID not assigned")
	}
	if bet.Status != models.BetStatusPending {
		t.Errorf("Status = %q, want pending default", bet.Status)
	}
	if bet.PlacedAt.IsZero() {
		t.Error("PlacedAt not assigned")
	}
	if bet.PotentialPayout == nil || math.Abs(*bet.PotentialPayout-120) > 1e-9 {
		t.Errorf("PotentialPayout = %v, want 120 (40 * 3.0)", bet.PotentialPayout)
	}
	if bet.SettledAt != nil {
		t.Error("SettledAt set for pending bet")
	}

	settled := models.Bet{
		CustomerID: id,
		Sport:      "tennis",
		Market:     "total",
		Amount:     10,
		Odds:       2.0,
		Status:     models.BetStatusWon,
	}
	if _, err := db.InsertBet(ctx, &settled); err != nil {
		t.Fatalf("InsertBet(settled) failed: %v", err)
	}
	if settled.SettledAt == nil {
		t.Error("SettledAt not assigned for won bet")
	}
}

func TestInsertBetsPendingAndVoidExcludedFromWon(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id := seedCustomer(t, db, "statuses")
	bets := []models.Bet{
		betAt(id, 1, 100, 2.0, models.BetStatusPending),
		betAt(id, 2, 100, 2.0, models.BetStatusVoid),
	}
	if _, _, err := db.InsertBets(ctx, bets); err != nil {
		t.Fatalf("InsertBets() failed: %v", err)
	}

	got, err := db.GetCustomer(ctx, id)
	if err != nil {
		t.Fatalf("GetCustomer() failed: %v", err)
	}
	if math.Abs(got.TotalWagered-200) > 1e-9 {
		t.Errorf("TotalWagered = %v, want 200", got.TotalWagered)
	}
	if got.TotalWon != 0 {
		t.Errorf("TotalWon = %v, want 0 for pending and void", got.TotalWon)
	}
	if math.Abs(got.LifetimeValue-200) > 1e-9 {
		t.Errorf("LifetimeValue = %v, want 200", got.LifetimeValue)
	}
}

func TestInsertBetsEmptyBatch(t *testing.T) {
	db := setupTestDB(t)

	inserted, duplicates, err := db.InsertBets(context.Background(), nil)
	if err != nil {
		t.Fatalf("InsertBets(nil) failed: %v", err)
	}
	if inserted != 0 || duplicates != 0 {
		t.Errorf("inserted=%d duplicates=%d, want zeros", inserted, duplicates)
	}
}
