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

// GetPreferenceWeights returns a user's preference weights ordered by type and value.
func (db *DB) GetPreferenceWeights(ctx context.Context, userID string) ([]models.PreferenceWeight, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT user_id, pref_type, value, confidence, source, updated_at
		FROM preference_weights
		WHERE user_id = ?
		ORDER BY pref_type, value`

	rows, err := db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var out []models.PreferenceWeight
	for rows.Next() {
		var (
			p         models.PreferenceWeight
			prefType  string
			updatedAt int64
		)
		if err := rows.Scan(&p.UserID, &prefType, &p.Value, &p.Confidence, &p.Source, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		p.Type = models.PreferenceType(prefType)
		p.UpdatedAt = fromMicros(updatedAt)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preferences: %w", err)
	}
	return out, nil
}

// UpsertPreferenceWeight stores a weight, last writer wins.
func (db *DB) UpsertPreferenceWeight(ctx context.Context, p *models.PreferenceWeight) error {
	query := `INSERT INTO preference_weights (user_id, pref_type, value, confidence, source, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, pref_type, value) DO UPDATE SET
			confidence = excluded.confidence,
			source = excluded.source,
			updated_at = excluded.updated_at`

	if _, err := db.conn.ExecContext(ctx, query, p.UserID, string(p.Type), p.Value,
		p.Confidence, p.Source, toMicros(p.UpdatedAt)); err != nil {
		return fmt.Errorf("failed to upsert preference %s=%s: %w", p.Type, p.Value, err)
	}
	return nil
}
