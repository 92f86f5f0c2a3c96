// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package database

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/gameedge/intelligence/internal/models"
)

// InsertFeedback scores the message with the sentiment analyzer and stores
// the feedback row. Scoring runs synchronously on this path so every stored
// row carries sentiment columns; pre-populated sentiment fields on fb are
// overwritten.
func (db *DB) InsertFeedback(ctx context.Context, fb *models.Feedback) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}

	res := db.scorer.Analyze(fb.Message)
	fb.SentimentScore = &res.Score
	fb.SentimentLabel = &res.Label
	fb.Aspects = nil
	if len(res.Aspects) > 0 {
		raw, err := json.Marshal(res.Aspects)
		if err != nil {
			return fmt.Errorf("failed to marshal feedback aspects: %w", err)
		}
		aspects := string(raw)
		fb.Aspects = &aspects
	}

	query := `INSERT INTO feedback (
		id, customer_id, channel, message,
		sentiment_score, sentiment_label, aspects, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.conn.ExecContext(ctx, query,
		fb.ID, fb.CustomerID, fb.Channel, fb.Message,
		fb.SentimentScore, fb.SentimentLabel, fb.Aspects, fb.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback %s: %w", fb.ID, err)
	}
	return nil
}

// GetSentimentTrends aggregates feedback sentiment per day over the last
// days days. Days without feedback are absent from the result.
func (db *DB) GetSentimentTrends(ctx context.Context, days int) ([]models.SentimentTrend, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	query := `
	SELECT
		DATE_TRUNC('day', created_at) AS day,
		COUNT(*) AS feedback_count,
		COALESCE(AVG(sentiment_score), 0) AS average_score,
		SUM(CASE WHEN sentiment_label = 'positive' THEN 1 ELSE 0 END) AS positive_count,
		SUM(CASE WHEN sentiment_label = 'negative' THEN 1 ELSE 0 END) AS negative_count,
		SUM(CASE WHEN sentiment_label = 'neutral' THEN 1 ELSE 0 END) AS neutral_count
	FROM feedback
	WHERE created_at >= ?
	GROUP BY DATE_TRUNC('day', created_at)
	ORDER BY day ASC`

	rows, err := db.conn.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query sentiment trends: %w", err)
	}
	defer rows.Close()

	var trends []models.SentimentTrend
	for rows.Next() {
		var t models.SentimentTrend
		if err := rows.Scan(&t.Day, &t.FeedbackCount, &t.AverageScore,
			&t.PositiveCount, &t.NegativeCount, &t.NeutralCount); err != nil {
			return nil, fmt.Errorf("failed to scan sentiment trend: %w", err)
		}
		trends = append(trends, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sentiment trends: %w", err)
	}

	return trends, nil
}

// GetFeedback retrieves recent feedback newest first. An empty customerID
// returns feedback across all customers.
func (db *DB) GetFeedback(ctx context.Context, customerID string, limit int) ([]models.Feedback, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}

	query := `SELECT
		id, customer_id, channel, message,
		sentiment_score, sentiment_label, aspects, created_at
	FROM feedback`
	args := []any{}
	if customerID != "" {
		query += ` WHERE customer_id = ?`
		args = append(args, customerID)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var items []models.Feedback
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.CustomerID, &fb.Channel, &fb.Message,
			&fb.SentimentScore, &fb.SentimentLabel, &fb.Aspects, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		items = append(items, fb)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback: %w", err)
	}

	return items, nil
}
