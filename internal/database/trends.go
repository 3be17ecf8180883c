// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/dinewise/internal/models"
)

const trendColumns = `venue_id, scope, time_window, bucket_date, score, bookings, reviews, rating, computed_at`

// UpsertTrendSnapshots writes snapshots keyed by (venue, scope, window, date).
// Rerunning on the same date overwrites the existing rows.
func (db *DB) UpsertTrendSnapshots(ctx context.Context, snapshots []models.TrendSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin trend upsert: %w", err)
	}
	defer rollbackQuietly(tx)

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO trend_snapshots (`+trendColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (venue_id, scope, time_window, bucket_date) DO UPDATE SET
			score = excluded.score,
			bookings = excluded.bookings,
			reviews = excluded.reviews,
			rating = excluded.rating,
			computed_at = excluded.computed_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare trend upsert: %w", err)
	}
	defer closeWithLog(stmt, "statement")

	for i := range snapshots {
		s := &snapshots[i]
		if _, err := stmt.ExecContext(ctx, s.VenueID, s.Scope, string(s.Window), s.Date,
			s.Score, s.Counts.Bookings, s.Counts.Reviews, s.Counts.Rating, toMicros(s.ComputedAt)); err != nil {
			return fmt.Errorf("failed to upsert trend snapshot for %s: %w", s.VenueID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trend upsert: %w", err)
	}
	return nil
}

// ListTrendSnapshots returns the snapshots of one (scope, window, date), highest score first.
func (db *DB) ListTrendSnapshots(ctx context.Context, scope string, window models.TimeWindow, date string) ([]models.TrendSnapshot, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + trendColumns + `
		FROM trend_snapshots
		WHERE scope = ? AND time_window = ? AND bucket_date = ?
		ORDER BY score DESC, venue_id`

	return db.queryTrends(ctx, query, scope, string(window), date)
}

// GetLatestTrendSnapshots returns, per venue, the most recent snapshot for the
// window. When several scopes share the latest date the highest score wins.
func (db *DB) GetLatestTrendSnapshots(ctx context.Context, venueIDs []string, window models.TimeWindow) (map[string]models.TrendSnapshot, error) {
	out := make(map[string]models.TrendSnapshot, len(venueIDs))
	if len(venueIDs) == 0 {
		return out, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + trendColumns + `
		FROM trend_snapshots
		WHERE time_window = ? AND venue_id IN (` + placeholders(len(venueIDs)) + `)
		ORDER BY venue_id, bucket_date DESC, score DESC`
	args := append([]any{string(window)}, stringArgs(venueIDs)...)

	snapshots, err := db.queryTrends(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	for _, s := range snapshots {
		if _, seen := out[s.VenueID]; !seen {
			out[s.VenueID] = s
		}
	}
	return out, nil
}

func (db *DB) queryTrends(ctx context.Context, query string, args ...any) ([]models.TrendSnapshot, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trend snapshots: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var out []models.TrendSnapshot
	for rows.Next() {
		var (
			s          models.TrendSnapshot
			window     string
			computedAt int64
		)
		if err := rows.Scan(&s.VenueID, &s.Scope, &window, &s.Date, &s.Score,
			&s.Counts.Bookings, &s.Counts.Reviews, &s.Counts.Rating, &computedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trend snapshot: %w", err)
		}
		s.Window = models.TimeWindow(window)
		s.ComputedAt = fromMicros(computedAt)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trend snapshots: %w", err)
	}
	return out, nil
}
