// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package recommend

import (
	"io"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/tomtom215/dinewise/internal/config"
	"github.com/tomtom215/dinewise/internal/database"
	"github.com/tomtom215/dinewise/internal/logging"
	"github.com/tomtom215/dinewise/internal/models"
)

func setupSQLiteEngine(t *testing.T) (*Engine, *database.DB) {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "engine.db"),
	})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	e, err := New(db, DefaultConfig(), logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	e.now = func() time.Time { return testNow }
	return e, db
}

func TestIntegration_BatchAndOnlinePaths(t *testing.T) {
	e, db := setupSQLiteEngine(t)
	ctx := testCtx(t)

	venues := []models.Venue{
		venue("trattoria", []string{"italian"}, 2, 4.5),
		venue("osteria", []string{"italian"}, 2, 4.5),
		venue("pizzeria", []string{"italian", "pizza"}, 2, 4.3),
		venue("izakaya", []string{"japanese"}, 3, 3.9),
	}
	venues[0].Latitude, venues[0].Longitude = f64(52.5200), f64(13.4050)
	venues[1].Latitude, venues[1].Longitude = f64(52.5200+3/111.195), f64(13.4050)
	for _, v := range venues {
		if err := e.UpsertVenue(ctx, v); err != nil {
			t.Fatal(err)
		}
	}

	booked := func(user, venueID string, ago time.Duration) {
		t.Helper()
		if _, err := e.RecordInteraction(ctx, models.Interaction{
			UserID: user, VenueID: venueID, Type: models.InteractionBooked, Completed: true,
			OccurredAt: testNow.Add(-ago),
		}); err != nil {
			t.Fatal(err)
		}
	}
	for _, u := range []string{"u1", "u2", "u3"} {
		booked(u, "trattoria", 48*time.Hour)
	}
	for _, u := range []string{"u2", "u3", "u4"} {
		booked(u, "osteria", 24*time.Hour)
	}
	booked("u4", "pizzeria", time.Hour)

	// Similarity batch, twice: the stored edge set must not change.
	if _, err := e.RunSimilarityComputation(ctx); err != nil {
		t.Fatalf("RunSimilarityComputation() error = %v", err)
	}
	first, err := db.ListSimilarityEdges(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.RunSimilarityComputation(ctx); err != nil {
		t.Fatal(err)
	}
	second, err := db.ListSimilarityEdges(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.EqualFunc(stripComputedAt(first), stripComputedAt(second), edgesEqual) {
		t.Error("similarity runs are not idempotent")
	}
	for _, edge := range second {
		if edge.Kind == models.SimilarityHybrid && edge.Score < 0.3 {
			t.Errorf("hybrid edge below threshold persisted: %+v", edge)
		}
	}

	similar, err := e.GetSimilar(ctx, "trattoria", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(similar) == 0 || similar[0].Venue.ID != "osteria" {
		t.Fatalf("similar = %+v", similar)
	}
	if similar[0].Evidence.SharedBookers != 2 {
		t.Errorf("shared bookers = %d, want 2", similar[0].Evidence.SharedBookers)
	}

	// Trend batch, twice on the same day.
	for range 2 {
		if _, err := e.RunTrendComputation(ctx, "", models.WindowWeekly); err != nil {
			t.Fatal(err)
		}
	}
	snaps, err := db.ListTrendSnapshots(ctx, "", models.WindowWeekly, "2026-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != len(venues) {
		t.Errorf("snapshots = %d, want one per venue", len(snaps))
	}

	// u1 booked trattoria: personalization expands to its neighbors.
	resp, err := e.GetPersonalizedRecommendations(ctx, Request{UserID: "u1", Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Algorithm != models.AlgorithmHybridPersonalized || len(resp.Recommendations) == 0 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Recommendations[0].Venue.ID != "osteria" {
		t.Errorf("top = %s, want osteria", resp.Recommendations[0].Venue.ID)
	}

	anon, err := e.GetPersonalizedRecommendations(ctx, Request{})
	if err != nil {
		t.Fatal(err)
	}
	if anon.Algorithm != models.AlgorithmTrending {
		t.Errorf("anonymous algorithm = %q", anon.Algorithm)
	}

	// Feedback attributed to the exposure.
	res, err := e.RecordFeedback(ctx, models.Feedback{
		UserID: "u1", VenueID: "osteria", FeedbackType: models.FeedbackPositive,
		Action: models.InteractionClicked, ExposureID: resp.ExposureID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.ExposureAnnotated || len(res.Warnings) != 0 {
		t.Errorf("feedback result = %+v", res)
	}
	exposure, err := db.GetExposure(ctx, resp.ExposureID)
	if err != nil {
		t.Fatal(err)
	}
	if exposure.Outcome == nil || exposure.Outcome.VenueID != "osteria" {
		t.Errorf("exposure outcome = %+v", exposure.Outcome)
	}

	prefs, err := e.GetUserPreferences(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(prefs) != 3 {
		t.Errorf("preferences = %+v, want cuisine, price and location", prefs)
	}
}
