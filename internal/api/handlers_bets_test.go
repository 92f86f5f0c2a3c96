// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package api

import (
	"net/http"
	"testing"

	"github.com/gameedge/intelligence/internal/models"
)

func TestPlaceBetDirectInsert(t *testing.T) {
	h := newTestHandler(t)
	srv := newTestServer(t, h)

	customer := seedTestCustomer(t, h, "punter", 100)

	status, env := doPost(t, srv, "/api/v1/bets", PlaceBetRequest{
		CustomerID: customer,
		Sport:      "tennis",
		Market:     "match winner",
		Amount:     50,
		Odds:       1.85,
	})
	if status != http.StatusCreated {
		t.Fatalf("status = %d, error = %+v", status, env.Error)
	}

	var bet models.Bet
	unmarshalData(t, env, &bet)
	if bet.ID == "" {
		t.Error("bet id not assigned")
	}
	if bet.Status != models.BetStatusPending {
		t.Errorf("status = %q, want pending default", bet.Status)
	}
	if bet.PotentialPayout == nil || *bet.PotentialPayout != 50*1.85 {
		t.Errorf("potential_payout = %v, want 92.5", bet.PotentialPayout)
	}
	if bet.PlacedAt.IsZero() {
		t.Error("placed_at not set")
	}
}

func TestPlaceBetValidation(t *testing.T) {
	h := newTestHandler(t)
	srv := newTestServer(t, h)

	tests := []struct {
		name string
		body PlaceBetRequest
	}{
		{"missing customer", PlaceBetRequest{Sport: "tennis", Amount: 10, Odds: 2}},
		{"missing sport", PlaceBetRequest{CustomerID: "c1", Amount: 10, Odds: 2}},
		{"zero amount", PlaceBetRequest{CustomerID: "c1", Sport: "tennis", Odds: 2}},
		{"negative amount", PlaceBetRequest{CustomerID: "c1", Sport: "tennis", Amount: -5, Odds: 2}},
		{"odds below one", PlaceBetRequest{CustomerID: "c1", Sport: "tennis", Amount: 10, Odds: 0.5}},
		{"bad status", PlaceBetRequest{CustomerID: "c1", Sport: "tennis", Amount: 10, Odds: 2, Status: "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doPost(t, srv, "/api/v1/bets", tt.body)
			if status != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", status)
			}
			if env.Error == nil || env.Error.Code != ErrCodeValidationFailed {
				t.Errorf("error = %+v, want VALIDATION_FAILED", env.Error)
			}
		})
	}
}

func TestSubmitFeedbackScoresSentiment(t *testing.T) {
	h := newTestHandler(t)
	srv := newTestServer(t, h)

	customer := seedTestCustomer(t, h, "happy", 80)

	status, env := doPost(t, srv, "/api/v1/feedback", FeedbackRequest{
		CustomerID: customer,
		Message:    "I love the app, the odds are great and payouts are excellent",
	})
	if status != http.StatusCreated {
		t.Fatalf("status = %d, error = %+v", status, env.Error)
	}

	var fb models.Feedback
	unmarshalData(t, env, &fb)
	if fb.ID == "" {
		t.Error("feedback id not assigned")
	}
	if fb.Channel != "app" {
		t.Errorf("channel = %q, want app default", fb.Channel)
	}
	if fb.SentimentLabel == nil || *fb.SentimentLabel != "positive" {
		t.Errorf("sentiment_label = %v, want positive", fb.SentimentLabel)
	}
	if fb.SentimentScore == nil || *fb.SentimentScore <= 0 {
		t.Errorf("sentiment_score = %v, want > 0", fb.SentimentScore)
	}
}

func TestSentimentTrendsWindowValidation(t *testing.T) {
	h := newTestHandler(t)
	srv := newTestServer(t, h)

	for _, query := range []string{"days=0", "days=-3", "days=400"} {
		status, _ := doGet(t, srv, "/api/v1/sentiment/trends?"+query)
		if status != http.StatusBadRequest {
			t.Errorf("GET ?%s status = %d, want 400", query, status)
		}
	}
}

func TestSentimentTrendsAggregates(t *testing.T) {
	h := newTestHandler(t)
	srv := newTestServer(t, h)

	customer := seedTestCustomer(t, h, "mixed", 60)
	for _, msg := range []string{
		"great app, love the live betting",
		"terrible support, awful experience",
	} {
		status, env := doPost(t, srv, "/api/v1/feedback", FeedbackRequest{CustomerID: customer, Message: msg})
		if status != http.StatusCreated {
			t.Fatalf("feedback insert status = %d, error = %+v", status, env.Error)
		}
	}

	status, env := doGet(t, srv, "/api/v1/sentiment/trends?days=7")
	if status != http.StatusOK {
		t.Fatalf("status = %d, error = %+v", status, env.Error)
	}

	var trends []models.SentimentTrend
	unmarshalData(t, env, &trends)
	if len(trends) == 0 {
		t.Fatal("no trend rows for feedback inserted today")
	}

	today := trends[len(trends)-1]
	if today.FeedbackCount < 2 {
		t.Errorf("feedback_count = %d, want >= 2", today.FeedbackCount)
	}
	if today.PositiveCount < 1 || today.NegativeCount < 1 {
		t.Errorf("positive/negative = %d/%d, want >= 1 each", today.PositiveCount, today.NegativeCount)
	}
}

func TestGetCustomerFeedbackList(t *testing.T) {
	h := newTestHandler(t)
	srv := newTestServer(t, h)

	customer := seedTestCustomer(t, h, "chatty", 90)
	for _, msg := range []string{"good odds", "bad cashout"} {
		status, env := doPost(t, srv, "/api/v1/feedback", FeedbackRequest{CustomerID: customer, Message: msg})
		if status != http.StatusCreated {
			t.Fatalf("feedback insert status = %d, error = %+v", status, env.Error)
		}
	}

	status, env := doGet(t, srv, "/api/v1/customers/"+customer+"/feedback")
	if status != http.StatusOK {
		t.Fatalf("status = %d, error = %+v", status, env.Error)
	}
	var feedback []models.Feedback
	unmarshalData(t, env, &feedback)
	if len(feedback) != 2 {
		t.Errorf("len = %d, want 2", len(feedback))
	}

	status, env = doGet(t, srv, "/api/v1/customers/"+customer+"/feedback?limit=1")
	if status != http.StatusOK {
		t.Fatalf("limited status = %d", status)
	}
	unmarshalData(t, env, &feedback)
	if len(feedback) != 1 {
		t.Errorf("limited len = %d, want 1", len(feedback))
	}
}
