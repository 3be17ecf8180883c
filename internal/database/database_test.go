// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package database

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/tomtom215/dinewise/internal/config"
	"github.com/tomtom215/dinewise/internal/models"
)

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(&config.DatabaseConfig{Driver: "oracle", Path: t.TempDir() + "/x.db"})
	if err == nil {
		t.Fatal("New() with unknown driver should fail")
	}
}

func TestDB_Ping(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Ping(testContext(t)); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if db.Driver() != config.DriverSQLite {
		t.Errorf("Driver() = %q, want sqlite", db.Driver())
	}
}

func TestVenues_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	mustUpsertVenue(t, db, models.Venue{
		ID:          "v1",
		Name:        "Trattoria",
		Cuisines:    []string{"italian"},
		PriceTier:   2,
		Latitude:    f64(41.9),
		Longitude:   f64(12.5),
		City:        "Rome",
		Features:    []string{"wifi"},
		MealPeriods: []string{models.MealDinner},
		Rating:      4.5,
		Verified:    true,
		Active:      true,
	})
	mustUpsertVenue(t, db, models.Venue{ID: "v2", Name: "Closed", Active: false, Verified: true})
	mustUpsertVenue(t, db, models.Venue{ID: "v3", Name: "Unverified", Active: true})

	got, err := db.GetVenue(ctx, "v1")
	if err != nil {
		t.Fatalf("GetVenue() error = %v", err)
	}
	if got.Name != "Trattoria" || got.PriceTier != 2 || got.Rating != 4.5 || !got.Verified || !got.Active {
		t.Errorf("GetVenue() = %+v", got)
	}
	if !got.HasLocation() || *got.Latitude != 41.9 {
		t.Errorf("coordinates not preserved: %v, %v", got.Latitude, got.Longitude)
	}
	if !slices.Equal(got.Cuisines, []string{"italian"}) || !slices.Equal(got.MealPeriods, []string{models.MealDinner}) {
		t.Errorf("tags not preserved: %+v", got)
	}

	if _, err := db.GetVenue(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetVenue(missing) error = %v, want ErrNotFound", err)
	}

	// Upsert overwrites.
	mustUpsertVenue(t, db, models.Venue{ID: "v1", Name: "Trattoria Nuova", Rating: 4.0, Active: true, Verified: true})
	got, err = db.GetVenue(ctx, "v1")
	if err != nil {
		t.Fatalf("GetVenue() error = %v", err)
	}
	if got.Name != "Trattoria Nuova" || got.HasLocation() {
		t.Errorf("upsert did not overwrite: %+v", got)
	}

	active, err := db.ListVenues(ctx, models.VenueFilter{ActiveOnly: true, VerifiedOnly: true})
	if err != nil {
		t.Fatalf("ListVenues() error = %v", err)
	}
	if len(active) != 1 || active[0].ID != "v1" {
		t.Errorf("ListVenues(active, verified) = %v, want [v1]", active)
	}

	byID, err := db.GetVenuesByIDs(ctx, []string{"v2", "v3", "nope"})
	if err != nil {
		t.Fatalf("GetVenuesByIDs() error = %v", err)
	}
	if len(byID) != 2 {
		t.Errorf("GetVenuesByIDs() returned %d venues, want 2", len(byID))
	}
}

func TestInteractions_BookersAndActivity(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	for i, u := range []string{"u1", "u2", "u3"} {
		mustAppend(t, db, models.Interaction{ID: "a" + u, UserID: u, VenueID: "A", Type: models.InteractionBooked, Completed: true, OccurredAt: now.Add(-time.Duration(i+1) * time.Hour)})
	}
	for _, u := range []string{"u2", "u3", "u4"} {
		mustAppend(t, db, models.Interaction{ID: "b" + u, UserID: u, VenueID: "B", Type: models.InteractionBooked, Completed: true, OccurredAt: now.Add(-48 * time.Hour)})
	}
	// Uncompleted bookings and other types are not bookers.
	mustAppend(t, db, models.Interaction{ID: "x1", UserID: "u9", VenueID: "A", Type: models.InteractionBooked, OccurredAt: now})
	mustAppend(t, db, models.Interaction{ID: "x2", UserID: "u8", VenueID: "A", Type: models.InteractionReviewed, Rating: f64(5), OccurredAt: now.Add(-time.Minute)})
	// Duplicate completed booking by the same user.
	mustAppend(t, db, models.Interaction{ID: "x3", UserID: "u1", VenueID: "A", Type: models.InteractionBooked, Completed: true, OccurredAt: now.Add(-10 * 24 * time.Hour)})

	bookers, err := db.GetCompletedBookers(ctx)
	if err != nil {
		t.Fatalf("GetCompletedBookers() error = %v", err)
	}
	if !slices.Equal(bookers["A"], []string{"u1", "u2", "u3"}) {
		t.Errorf("bookers[A] = %v", bookers["A"])
	}
	if !slices.Equal(bookers["B"], []string{"u2", "u3", "u4"}) {
		t.Errorf("bookers[B] = %v", bookers["B"])
	}

	venueBookers, err := db.GetVenueBookers(ctx, "B")
	if err != nil {
		t.Fatalf("GetVenueBookers() error = %v", err)
	}
	if !slices.Equal(venueBookers, []string{"u2", "u3", "u4"}) {
		t.Errorf("GetVenueBookers(B) = %v", venueBookers)
	}

	counts, err := db.CountActivity(ctx, now.Add(-24*time.Hour), now)
	if err != nil {
		t.Fatalf("CountActivity() error = %v", err)
	}
	if counts["A"].Bookings != 3 || counts["A"].Reviews != 1 {
		t.Errorf("counts[A] = %+v, want 3 bookings 1 review", counts["A"])
	}
	if _, ok := counts["B"]; ok {
		t.Errorf("counts[B] = %+v, want no activity inside the window", counts["B"])
	}

	history, err := db.GetUserInteractions(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUserInteractions() error = %v", err)
	}
	if len(history) != 2 || history[0].ID != "au1" {
		t.Errorf("GetUserInteractions(u1) = %v, want newest first", history)
	}
}

func TestCountActivity_WindowBoundaries(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	mustAppend(t, db, models.Interaction{ID: "at-start", UserID: "u", VenueID: "V", Type: models.InteractionBooked, Completed: true, OccurredAt: start})
	mustAppend(t, db, models.Interaction{ID: "inside", UserID: "u", VenueID: "V", Type: models.InteractionBooked, Completed: true, OccurredAt: start.Add(time.Hour)})
	mustAppend(t, db, models.Interaction{ID: "at-end", UserID: "u", VenueID: "V", Type: models.InteractionBooked, Completed: true, OccurredAt: end})
	mustAppend(t, db, models.Interaction{ID: "future", UserID: "u", VenueID: "V", Type: models.InteractionBooked, Completed: true, OccurredAt: end.Add(time.Second)})

	counts, err := db.CountActivity(ctx, start, end)
	if err != nil {
		t.Fatalf("CountActivity() error = %v", err)
	}
	if got := counts["V"].Bookings; got != 2 {
		t.Errorf("bookings = %d, want 2 (start exclusive, end inclusive, future excluded)", got)
	}
}
