// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// initialize creates tables and indexes. Both steps are idempotent.
func (db *DB) initialize() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	for _, query := range indexQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}

// similarityEdgeColumns is shared by the live and staging tables.
const similarityEdgeColumns = `
	venue_a TEXT NOT NULL,
	venue_b TEXT NOT NULL,
	kind TEXT NOT NULL,
	score DOUBLE NOT NULL,
	evidence TEXT NOT NULL,
	computed_at BIGINT NOT NULL`

func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS venues (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			cuisines TEXT NOT NULL DEFAULT '[]',
			price_tier INTEGER NOT NULL DEFAULT 0,
			latitude DOUBLE,
			longitude DOUBLE,
			city TEXT NOT NULL DEFAULT '',
			features TEXT NOT NULL DEFAULT '[]',
			meal_periods TEXT NOT NULL DEFAULT '[]',
			rating DOUBLE NOT NULL DEFAULT 0,
			verified BOOLEAN NOT NULL DEFAULT FALSE,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			updated_at BIGINT NOT NULL DEFAULT 0
		)`,

		// Append-only: no UPDATE or DELETE is ever issued against interactions.
		`CREATE TABLE IF NOT EXISTS interactions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			venue_id TEXT NOT NULL,
			type TEXT NOT NULL,
			weight DOUBLE NOT NULL,
			rating DOUBLE,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			occurred_at BIGINT NOT NULL
		)`,

		// No primary key: rows are deleted and re-inserted with the same
		// identity inside the swap transaction.
		`CREATE TABLE IF NOT EXISTS similarity_edges (` + similarityEdgeColumns + `
		)`,
		`CREATE TABLE IF NOT EXISTS similarity_edges_staging (` + similarityEdgeColumns + `
		)`,

		`CREATE TABLE IF NOT EXISTS trend_snapshots (
			venue_id TEXT NOT NULL,
			scope TEXT NOT NULL,
			time_window TEXT NOT NULL,
			bucket_date TEXT NOT NULL,
			score DOUBLE NOT NULL,
			bookings INTEGER NOT NULL,
			reviews INTEGER NOT NULL,
			rating DOUBLE NOT NULL,
			computed_at BIGINT NOT NULL,
			PRIMARY KEY (venue_id, scope, time_window, bucket_date)
		)`,

		`CREATE TABLE IF NOT EXISTS preference_weights (
			user_id TEXT NOT NULL,
			pref_type TEXT NOT NULL,
			value TEXT NOT NULL,
			confidence DOUBLE NOT NULL,
			source TEXT NOT NULL,
			updated_at BIGINT NOT NULL,
			PRIMARY KEY (user_id, pref_type, value)
		)`,

		`CREATE TABLE IF NOT EXISTS exposure_log (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL DEFAULT '',
			venue_ids TEXT NOT NULL,
			scores TEXT NOT NULL DEFAULT '[]',
			algorithm TEXT NOT NULL,
			request_id TEXT NOT NULL DEFAULT '',
			created_at BIGINT NOT NULL,
			outcome_venue_id TEXT,
			outcome_action TEXT,
			outcome_at BIGINT
		)`,
	}
}

func indexQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_venue_time ON interactions(venue_id, occurred_at)`,
		`CREATE INDEX IF NOT EXISTS idx_similarity_edges_lookup ON similarity_edges(venue_a, kind)`,
	}
}
