// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/dinewise/internal/models"
)

// AppendInteraction inserts an interaction row. Interactions are never updated.
func (db *DB) AppendInteraction(ctx context.Context, in *models.Interaction) error {
	query := `INSERT INTO interactions (id, user_id, venue_id, type, weight, rating, completed, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.conn.ExecContext(ctx, query,
		in.ID, in.UserID, in.VenueID, string(in.Type), in.Weight,
		nullableFloat(in.Rating), in.Completed, toMicros(in.OccurredAt),
	)
	if err != nil {
		return fmt.Errorf("failed to append interaction: %w", err)
	}
	return nil
}

// GetUserInteractions returns a user's interactions, newest first.
func (db *DB) GetUserInteractions(ctx context.Context, userID string) ([]models.Interaction, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT id, user_id, venue_id, type, weight, rating, completed, occurred_at
		FROM interactions
		WHERE user_id = ?
		ORDER BY occurred_at DESC, id`

	rows, err := db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var out []models.Interaction
	for rows.Next() {
		var (
			in         models.Interaction
			typ        string
			rating     sql.NullFloat64
			occurredAt int64
		)
		if err := rows.Scan(&in.ID, &in.UserID, &in.VenueID, &typ, &in.Weight,
			&rating, &in.Completed, &occurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		in.Type = models.InteractionType(typ)
		in.Rating = floatPtr(rating)
		in.OccurredAt = fromMicros(occurredAt)
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interactions: %w", err)
	}
	return out, nil
}

// GetCompletedBookers returns the distinct users with a completed booking,
// per venue. User ids are sorted.
func (db *DB) GetCompletedBookers(ctx context.Context) (map[string][]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT DISTINCT venue_id, user_id
		FROM interactions
		WHERE type = 'booked' AND completed
		ORDER BY venue_id, user_id`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed bookings: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out := make(map[string][]string)
	for rows.Next() {
		var venueID, userID string
		if err := rows.Scan(&venueID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan completed booking: %w", err)
		}
		out[venueID] = append(out[venueID], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating completed bookings: %w", err)
	}
	return out, nil
}

// GetVenueBookers returns the distinct users with a completed booking at one venue.
func (db *DB) GetVenueBookers(ctx context.Context, venueID string) ([]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT DISTINCT user_id
		FROM interactions
		WHERE venue_id = ? AND type = 'booked' AND completed
		ORDER BY user_id`

	rows, err := db.conn.QueryContext(ctx, query, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookers for %s: %w", venueID, err)
	}
	defer closeWithLog(rows, "rows")

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan booker: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookers: %w", err)
	}
	return users, nil
}

// CountActivity counts completed bookings and reviews per venue for events
// with since < occurred_at <= until. Rating is left for the caller.
func (db *DB) CountActivity(ctx context.Context, since, until time.Time) (map[string]models.TrendCounts, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT venue_id,
			CAST(SUM(CASE WHEN type = 'booked' AND completed THEN 1 ELSE 0 END) AS BIGINT),
			CAST(SUM(CASE WHEN type = 'reviewed' THEN 1 ELSE 0 END) AS BIGINT)
		FROM interactions
		WHERE occurred_at > ? AND occurred_at <= ?
		GROUP BY venue_id`

	rows, err := db.conn.QueryContext(ctx, query, toMicros(since), toMicros(until))
	if err != nil {
		return nil, fmt.Errorf("failed to count activity: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out := make(map[string]models.TrendCounts)
	for rows.Next() {
		var (
			venueID           string
			bookings, reviews int64
		)
		if err := rows.Scan(&venueID, &bookings, &reviews); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		out[venueID] = models.TrendCounts{Bookings: int(bookings), Reviews: int(reviews)}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity: %w", err)
	}
	return out, nil
}
