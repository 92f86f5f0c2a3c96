// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package database

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/models"
)

// SeedMockData populates an empty database with a demo dataset spanning
// distinct bettor profiles (whales, regulars, casuals, churned) so analysis
// runs produce meaningful segments out of the box. Seeding is skipped when
// customers already exist. Values are drawn from a fixed-seed generator;
// timestamps are anchored to the current time.
func (db *DB) SeedMockData(ctx context.Context) error {
	customers, _, _, err := db.GetRecordCounts(ctx)
	if err != nil {
		return err
	}
	if customers > 0 {
		logging.Info().Int64("customers", customers).Msg("Database already populated, skipping mock data seed")
		return nil
	}

	logging.Info().Msg("Seeding database with mock data...")
	rng := rand.New(rand.NewSource(42))

	// Bettor profiles. Recency is days since the most recent bet; history
	// spreads the remaining bets back from there.
	profiles := []struct {
		name       string
		count      int
		minBets    int
		maxBets    int
		minStake   float64
		maxStake   float64
		minRecency int
		maxRecency int
		winRate    float64
	}{
		{"whale", 12, 80, 160, 500, 5000, 0, 10, 0.46},
		{"regular", 25, 20, 60, 20, 200, 0, 25, 0.43},
		{"casual", 30, 2, 10, 5, 50, 5, 80, 0.40},
		{"churned", 8, 5, 30, 10, 150, 95, 170, 0.38},
	}

	firstNames := []string{
		"alex", "jordan", "casey", "morgan", "taylor", "riley", "quinn",
		"avery", "jamie", "drew", "reese", "skyler", "devon", "shay",
		"blake", "marley", "rowan", "emery", "finley", "harper",
	}
	countries := []string{"GB", "DE", "SE", "DK", "ES", "IT", "BR", "CA", "AU", "NZ"}
	sports := []string{"football", "basketball", "tennis", "baseball", "hockey", "soccer", "mma", "golf"}
	markets := []string{"moneyline", "spread", "total", "parlay", "prop"}

	strPtr := func(s string) *string { return &s }
	now := time.Now().UTC()

	var (
		mockCustomers []models.Customer
		mockBets      []models.Bet
	)

	seq := 0
	for _, profile := range profiles {
		for i := 0; i < profile.count; i++ {
			seq++
			username := fmt.Sprintf("%s%02d", firstNames[rng.Intn(len(firstNames))], seq)
			recency := profile.minRecency + rng.Intn(profile.maxRecency-profile.minRecency+1)
			lastLogin := now.AddDate(0, 0, -recency)

			customer := models.Customer{
				ID:           uuid.NewString(),
				Username:     username,
				Email:        strPtr(username + "@example.com"),
				Country:      strPtr(countries[rng.Intn(len(countries))]),
				RegisteredAt: now.AddDate(0, 0, -(180 + rng.Intn(360))),
				LastLoginAt:  &lastLogin,
				IsActive:     recency < 90,
			}
			mockCustomers = append(mockCustomers, customer)

			numBets := profile.minBets + rng.Intn(profile.maxBets-profile.minBets+1)
			mockBets = append(mockBets, mockBetsForCustomer(rng, customer.ID, numBets, recency, profile.minStake, profile.maxStake, profile.winRate, sports, markets, now)...)
		}
	}

	if _, err := db.UpsertCustomers(ctx, mockCustomers); err != nil {
		return fmt.Errorf("failed to seed customers: %w", err)
	}
	inserted, _, err := db.InsertBets(ctx, mockBets)
	if err != nil {
		return fmt.Errorf("failed to seed bets: %w", err)
	}

	feedbackCount, err := db.seedFeedback(ctx, rng, mockCustomers, now)
	if err != nil {
		return fmt.Errorf("failed to seed feedback: %w", err)
	}

	logging.Info().
		Int("customers", len(mockCustomers)).
		Int("bets", inserted).
		Int("feedback", feedbackCount).
		Msg("Mock data seeded")
	return nil
}

// mockBetsForCustomer generates one customer's betting history. The most
// recent bet lands exactly recency days ago; the rest spread back over the
// preceding 170 days.
func mockBetsForCustomer(rng *rand.Rand, customerID string, numBets, recency int, minStake, maxStake, winRate float64, sports, markets []string, now time.Time) []models.Bet {
	bets := make([]models.Bet, 0, numBets)
	for i := 0; i < numBets; i++ {
		ageDays := recency
		if i > 0 {
			ageDays = recency + rng.Intn(170)
		}
		placedAt := now.AddDate(0, 0, -ageDays).Add(-time.Duration(rng.Intn(86400)) * time.Second)

		bet := models.Bet{
			ID:         uuid.NewString(),
			CustomerID: customerID,
			Sport:      sports[rng.Intn(len(sports))],
			Market:     markets[rng.Intn(len(markets))],
			Amount:     minStake + rng.Float64()*(maxStake-minStake),
			Odds:       1.5 + rng.Float64()*3.5,
			PlacedAt:   placedAt,
		}

		switch {
		case ageDays < 2:
			bet.Status = models.BetStatusPending
		case rng.Float64() < 0.02:
			bet.Status = models.BetStatusVoid
		case rng.Float64() < winRate:
			bet.Status = models.BetStatusWon
		default:
			bet.Status = models.BetStatusLost
		}

		if bet.Status == models.BetStatusWon || bet.Status == models.BetStatusLost {
			settledAt := placedAt.Add(time.Duration(1+rng.Intn(48)) * time.Hour)
			bet.SettledAt = &settledAt
		}

		bets = append(bets, bet)
	}
	return bets
}

// seedFeedback inserts sample feedback across random customers. Messages
// run through the sentiment analyzer like any other insert.
func (db *DB) seedFeedback(ctx context.Context, rng *rand.Rand, customers []models.Customer, now time.Time) (int, error) {
	messages := []string{
		"Great odds on the game today!",
		"Terrible customer service experience",
		"Love the new mobile app interface",
		"Withdrawal process is too slow",
		"Amazing bonus offers this week",
		"Platform is easy to use",
		"Odds are not competitive",
		"Fast payouts, very satisfied",
		"Difficult to navigate the website",
		"Excellent live betting features",
		"The app keeps crashing during live games",
		"Support agent was really helpful",
		"Deposit was instant, great experience",
		"Promo terms are confusing",
		"Lines update quickly, very reliable",
		"Cash out took a week, not happy",
		"Generous welcome bonus",
		"Login is broken on mobile",
		"Best spreads I have seen",
		"Service was slow but the agent was friendly",
	}
	channels := []string{"app", "email", "support", "survey"}

	count := 0
	for i := 0; i < 60; i++ {
		customer := customers[rng.Intn(len(customers))]
		fb := models.Feedback{
			CustomerID: customer.ID,
			Channel:    channels[rng.Intn(len(channels))],
			Message:    messages[rng.Intn(len(messages))],
			CreatedAt:  now.AddDate(0, 0, -rng.Intn(30)).Add(-time.Duration(rng.Intn(43200)) * time.Second),
		}
		if err := db.InsertFeedback(ctx, &fb); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
