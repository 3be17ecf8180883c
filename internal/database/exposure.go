// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dinewise/internal/models"
)

// InsertExposure appends an exposure log entry.
func (db *DB) InsertExposure(ctx context.Context, e *models.ExposureLogEntry) error {
	venueIDs, err := encodeJSON(e.VenueIDs)
	if err != nil {
		return fmt.Errorf("failed to encode exposure venues: %w", err)
	}
	scores, err := encodeJSON(e.Scores)
	if err != nil {
		return fmt.Errorf("failed to encode exposure scores: %w", err)
	}

	query := `INSERT INTO exposure_log (id, user_id, venue_ids, scores, algorithm, request_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := db.conn.ExecContext(ctx, query, e.ID, e.UserID, venueIDs, scores,
		e.Algorithm, e.RequestID, toMicros(e.CreatedAt)); err != nil {
		return fmt.Errorf("failed to insert exposure %s: %w", e.ID, err)
	}
	return nil
}

// AnnotateExposure records the outcome of an exposure. It reports false when
// no entry has the id.
func (db *DB) AnnotateExposure(ctx context.Context, id string, outcome *models.ExposureOutcome) (bool, error) {
	query := `UPDATE exposure_log
		SET outcome_venue_id = ?, outcome_action = ?, outcome_at = ?
		WHERE id = ?`

	res, err := db.conn.ExecContext(ctx, query, outcome.VenueID, string(outcome.Action), toMicros(outcome.At), id)
	if err != nil {
		return false, fmt.Errorf("failed to annotate exposure %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read annotate result: %w", err)
	}
	return n > 0, nil
}

// GetExposure returns an exposure entry, or models.ErrNotFound.
func (db *DB) GetExposure(ctx context.Context, id string) (*models.ExposureLogEntry, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT id, user_id, venue_ids, scores, algorithm, request_id, created_at,
			outcome_venue_id, outcome_action, outcome_at
		FROM exposure_log WHERE id = ?`

	var (
		e                           models.ExposureLogEntry
		venueIDs, scores            string
		createdAt                   int64
		outcomeVenue, outcomeAction sql.NullString
		outcomeAt                   sql.NullInt64
	)
	err := db.conn.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.UserID, &venueIDs, &scores,
		&e.Algorithm, &e.RequestID, &createdAt, &outcomeVenue, &outcomeAction, &outcomeAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get exposure %s: %w", id, notFound(err))
	}

	if e.VenueIDs, err = decodeStrings(venueIDs); err != nil {
		return nil, fmt.Errorf("invalid venue ids for exposure %s: %w", id, err)
	}
	if scores != "" && scores != "[]" {
		if err := json.Unmarshal([]byte(scores), &e.Scores); err != nil {
			return nil, fmt.Errorf("invalid scores for exposure %s: %w", id, err)
		}
	}
	e.CreatedAt = fromMicros(createdAt)
	if outcomeVenue.Valid {
		e.Outcome = &models.ExposureOutcome{
			VenueID: outcomeVenue.String,
			Action:  models.InteractionType(outcomeAction.String),
			At:      fromMicros(outcomeAt.Int64),
		}
	}
	return &e, nil
}
