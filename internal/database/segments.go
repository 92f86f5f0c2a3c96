// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/models"
)

// RunID stored on segments created ad hoc through the API rather than by an
// analysis run. They live until the next run supersedes all segments.
const adhocRunID = "adhoc"

// ReplaceSegments atomically replaces all stored segments and memberships
// with the given run's records. It implements analytics.SegmentSink. The
// previous run's records are fully superseded, including ad hoc segments.
func (db *DB) ReplaceSegments(ctx context.Context, runID string, segments []models.SegmentRecord) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM segment_members"); err != nil {
		return fmt.Errorf("failed to clear segment members: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM segments"); err != nil {
		return fmt.Errorf("failed to clear segments: %w", err)
	}

	for i := range segments {
		seg := &segments[i]
		if seg.ID == "" {
			seg.ID = uuid.NewString()
		}
		if seg.RunID == "" {
			seg.RunID = runID
		}
		if seg.CreatedAt.IsZero() {
			seg.CreatedAt = time.Now().UTC()
		}
		if err = insertSegmentTx(ctx, tx, seg); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit segment replacement: %w", err)
	}

	logging.Debug().Str("run_id", runID).Int("segments", len(segments)).Msg("Segments replaced")
	return nil
}

// insertSegmentTx writes one segment row plus its membership rows.
func insertSegmentTx(ctx context.Context, tx *sql.Tx, seg *models.SegmentRecord) error {
	query := `INSERT INTO segments (
		id, run_id, name, kind, member_count,
		average_lifetime_value, average_churn_risk, criteria, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := tx.ExecContext(ctx, query,
		seg.ID, seg.RunID, seg.Name, seg.Kind, seg.MemberCount,
		seg.AverageLifetimeValue, seg.AverageChurnRisk, seg.Criteria, seg.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert segment %s: %w", seg.Name, err)
	}

	if len(seg.MemberIDs) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO segment_members (segment_id, customer_id) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare member insert: %w", err)
	}
	defer closeWithLog(stmt, "segment member statement")

	for _, customerID := range seg.MemberIDs {
		if _, err := stmt.ExecContext(ctx, seg.ID, customerID); err != nil {
			return fmt.Errorf("failed to insert member %s of segment %s: %w", customerID, seg.Name, err)
		}
	}
	return nil
}

// LatestSegments returns the stored segments, which always belong to the
// latest run. kind narrows to one segment family when non-empty. MemberIDs
// are left nil; use GetSegment with includeMembers for membership.
func (db *DB) LatestSegments(ctx context.Context, kind string) ([]models.SegmentRecord, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT
		id, run_id, name, kind, member_count,
		average_lifetime_value, average_churn_risk, criteria, created_at
	FROM segments`
	args := []interface{}{}

	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY kind, name"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer rows.Close()

	var segments []models.SegmentRecord
	for rows.Next() {
		seg, err := scanSegment(rows)
		if err != nil {
			return nil, err
		}
		segments = append(segments, *seg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating segments: %w", err)
	}

	return segments, nil
}

// GetSegment retrieves one segment by id. Returns ErrNotFound for unknown
// ids. includeMembers additionally loads the member customer ids.
func (db *DB) GetSegment(ctx context.Context, id string, includeMembers bool) (*models.SegmentRecord, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT
		id, run_id, name, kind, member_count,
		average_lifetime_value, average_churn_risk, criteria, created_at
	FROM segments WHERE id = ?`

	row := db.conn.QueryRowContext(ctx, query, id)
	seg, err := scanSegment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("segment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if includeMembers {
		members, err := db.segmentMembers(ctx, id)
		if err != nil {
			return nil, err
		}
		seg.MemberIDs = members
	}

	return seg, nil
}

func (db *DB) segmentMembers(ctx context.Context, segmentID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT customer_id FROM segment_members WHERE segment_id = ? ORDER BY customer_id", segmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query segment members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan segment member: %w", err)
		}
		members = append(members, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating segment members: %w", err)
	}
	return members, nil
}

// scanner covers *sql.Row and *sql.Rows for shared scan code.
type scanner interface {
	Scan(dest ...any) error
}

func scanSegment(s scanner) (*models.SegmentRecord, error) {
	var (
		seg      models.SegmentRecord
		avgLTV   sql.NullFloat64
		avgChurn sql.NullFloat64
	)
	err := s.Scan(
		&seg.ID, &seg.RunID, &seg.Name, &seg.Kind, &seg.MemberCount,
		&avgLTV, &avgChurn, &seg.Criteria, &seg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan segment: %w", err)
	}
	seg.AverageLifetimeValue = nullableFloat(avgLTV)
	seg.AverageChurnRisk = nullableFloat(avgChurn)
	return &seg, nil
}
