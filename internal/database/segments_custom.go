// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gameedge/intelligence/internal/models"
)

// ErrInvalidCriteria marks custom segment rules referencing fields or
// operators outside the allow-lists below.
var ErrInvalidCriteria = errors.New("invalid segment criteria")

// CriteriaRule selects customers by comparing one monetary column against a
// threshold. Field and Operator are validated against allow-lists; the
// column name is never interpolated from request input.
type CriteriaRule struct {
	Field    string  `json:"field"`    // lifetime_value, total_wagered, total_won
	Operator string  `json:"operator"` // gte, lte, gt, lt
	Value    float64 `json:"value"`
}

// criteriaColumns maps rule fields to customer table columns.
var criteriaColumns = map[string]string{
	"lifetime_value": "lifetime_value",
	"total_wagered":  "total_wagered",
	"total_won":      "total_won",
}

// criteriaOperators maps rule operators to SQL comparison symbols.
var criteriaOperators = map[string]string{
	"gte": ">=",
	"lte": "<=",
	"gt":  ">",
	"lt":  "<",
}

// String renders the rule the way segment criteria are stored, e.g.
// "lifetime_value >= 1500.00".
func (r CriteriaRule) String() string {
	symbol, ok := criteriaOperators[r.Operator]
	if !ok {
		symbol = r.Operator
	}
	return fmt.Sprintf("%s %s %.2f", r.Field, symbol, r.Value)
}

// CreateSegmentFromRule evaluates a criteria rule against the customers
// table and stores the matching set as an ad hoc behavioral segment. The
// segment is superseded by the next analysis run like any other.
func (db *DB) CreateSegmentFromRule(ctx context.Context, name string, rule CriteriaRule) (*models.SegmentRecord, error) {
	column, ok := criteriaColumns[rule.Field]
	if !ok {
		return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidCriteria, rule.Field)
	}
	symbol, ok := criteriaOperators[rule.Operator]
	if !ok {
		return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidCriteria, rule.Operator)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf("SELECT id, lifetime_value FROM customers WHERE %s %s ? ORDER BY id", column, symbol)
	rows, err := db.conn.QueryContext(ctx, query, rule.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate segment criteria: %w", err)
	}
	defer rows.Close()

	var (
		members  []string
		ltvTotal float64
	)
	for rows.Next() {
		var (
			id  string
			ltv float64
		)
		if err := rows.Scan(&id, &ltv); err != nil {
			return nil, fmt.Errorf("failed to scan criteria match: %w", err)
		}
		members = append(members, id)
		ltvTotal += ltv
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating criteria matches: %w", err)
	}

	seg := &models.SegmentRecord{
		ID:          uuid.NewString(),
		RunID:       adhocRunID,
		Name:        name,
		Kind:        models.SegmentKindBehavioral,
		MemberCount: len(members),
		Criteria:    rule.String(),
		CreatedAt:   time.Now().UTC(),
		MemberIDs:   members,
	}
	if len(members) > 0 {
		avg := ltvTotal / float64(len(members))
		seg.AverageLifetimeValue = &avg
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := insertSegmentTx(ctx, tx, seg); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return nil, fmt.Errorf("rollback failed: %v after: %w", rbErr, err)
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit custom segment: %w", err)
	}

	return seg, nil
}
