// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/dinewise/internal/config"
	"github.com/tomtom215/dinewise/internal/models"
)

// setupTestDB opens a SQLite database in the test's temp directory.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "dinewise.db"),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func f64(v float64) *float64 { return &v }

func mustUpsertVenue(t *testing.T, db *DB, v models.Venue) {
	t.Helper()
	if err := db.UpsertVenue(testContext(t), &v); err != nil {
		t.Fatalf("UpsertVenue(%s) error = %v", v.ID, err)
	}
}

func mustAppend(t *testing.T, db *DB, in models.Interaction) {
	t.Helper()
	if in.Weight == 0 {
		in.Weight = in.Type.Weight()
	}
	if err := db.AppendInteraction(testContext(t), &in); err != nil {
		t.Fatalf("AppendInteraction(%s) error = %v", in.ID, err)
	}
}
