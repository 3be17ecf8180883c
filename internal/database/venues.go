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

const venueColumns = `id, name, cuisines, price_tier, latitude, longitude, city,
	features, meal_periods, rating, verified, active, updated_at`

// UpsertVenue inserts or replaces a venue snapshot.
func (db *DB) UpsertVenue(ctx context.Context, v *models.Venue) error {
	cuisines, err := encodeJSON(v.Cuisines)
	if err != nil {
		return fmt.Errorf("failed to encode cuisines: %w", err)
	}
	features, err := encodeJSON(v.Features)
	if err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}
	meals, err := encodeJSON(v.MealPeriods)
	if err != nil {
		return fmt.Errorf("failed to encode meal periods: %w", err)
	}

	updatedAt := v.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	query := `INSERT INTO venues (` + venueColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			cuisines = excluded.cuisines,
			price_tier = excluded.price_tier,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			city = excluded.city,
			features = excluded.features,
			meal_periods = excluded.meal_periods,
			rating = excluded.rating,
			verified = excluded.verified,
			active = excluded.active,
			updated_at = excluded.updated_at`

	_, err = db.conn.ExecContext(ctx, query,
		v.ID, v.Name, cuisines, v.PriceTier,
		nullableFloat(v.Latitude), nullableFloat(v.Longitude), v.City,
		features, meals, v.Rating, v.Verified, v.Active, toMicros(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert venue %s: %w", v.ID, err)
	}
	return nil
}

// GetVenue returns a venue by id, or models.ErrNotFound.
func (db *DB) GetVenue(ctx context.Context, id string) (*models.Venue, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id)
	v, err := scanVenue(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get venue %s: %w", id, notFound(err))
	}
	return v, nil
}

// GetVenuesByIDs returns the venues that exist among ids, keyed by id.
func (db *DB) GetVenuesByIDs(ctx context.Context, ids []string) (map[string]models.Venue, error) {
	out := make(map[string]models.Venue, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + venueColumns + ` FROM venues WHERE id IN (` + placeholders(len(ids)) + `)`
	rows, err := db.conn.QueryContext(ctx, query, stringArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}
		out[v.ID] = *v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating venues: %w", err)
	}
	return out, nil
}

// ListVenues returns venues ordered by id.
func (db *DB) ListVenues(ctx context.Context, filter models.VenueFilter) ([]models.Venue, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + venueColumns + ` FROM venues WHERE 1=1`
	if filter.ActiveOnly {
		query += ` AND active`
	}
	if filter.VerifiedOnly {
		query += ` AND verified`
	}
	query += ` ORDER BY id`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var venues []models.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}
		venues = append(venues, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating venues: %w", err)
	}
	return venues, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*models.Venue, error) {
	var (
		v                        models.Venue
		lat, lon                 sql.NullFloat64
		cuisines, features, meal string
		updatedAt                int64
	)
	if err := row.Scan(&v.ID, &v.Name, &cuisines, &v.PriceTier, &lat, &lon, &v.City,
		&features, &meal, &v.Rating, &v.Verified, &v.Active, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if v.Cuisines, err = decodeStrings(cuisines); err != nil {
		return nil, fmt.Errorf("invalid cuisines for venue %s: %w", v.ID, err)
	}
	if v.Features, err = decodeStrings(features); err != nil {
		return nil, fmt.Errorf("invalid features for venue %s: %w", v.ID, err)
	}
	if v.MealPeriods, err = decodeStrings(meal); err != nil {
		return nil, fmt.Errorf("invalid meal periods for venue %s: %w", v.ID, err)
	}
	v.Latitude = floatPtr(lat)
	v.Longitude = floatPtr(lon)
	v.UpdatedAt = fromMicros(updatedAt)
	return &v, nil
}
