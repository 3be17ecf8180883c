// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package recommend

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/tomtom215/dinewise/internal/logging"
	"github.com/tomtom215/dinewise/internal/models"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, store Store, mutate ...func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	for _, m := range mutate {
		m(cfg)
	}
	e, err := New(store, cfg, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	e.now = func() time.Time { return testNow }
	return e
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func f64(v float64) *float64 { return &v }
func intPtr(v int) *int      { return &v }

// venue returns an active, verified venue in Berlin.
func venue(id string, cuisines []string, tier int, rating float64) models.Venue {
	return models.Venue{
		ID:        id,
		Name:      id,
		Cuisines:  cuisines,
		PriceTier: tier,
		City:      "Berlin",
		Rating:    rating,
		Verified:  true,
		Active:    true,
	}
}

func (f *fakeStore) addVenues(vs ...models.Venue) {
	for i := range vs {
		f.venues[vs[i].ID] = vs[i]
	}
}

func (f *fakeStore) addInteraction(user, venueID string, typ models.InteractionType, at time.Time) {
	f.interactions = append(f.interactions, models.Interaction{
		ID:         user + "-" + venueID + "-" + string(typ) + "-" + at.Format(time.RFC3339Nano),
		UserID:     user,
		VenueID:    venueID,
		Type:       typ,
		Weight:     typ.Weight(),
		Completed:  typ == models.InteractionBooked,
		OccurredAt: at,
	})
}

// addHybridEdge stores a hybrid edge in both directions.
func (f *fakeStore) addHybridEdge(a, b string, score float64, reasons ...string) {
	e := models.SimilarityEdge{
		VenueA:     a,
		VenueB:     b,
		Kind:       models.SimilarityHybrid,
		Score:      score,
		Evidence:   models.SimilarityEvidence{Reasons: reasons},
		ComputedAt: testNow,
	}
	f.edges = append(f.edges, e, e.Reverse())
}

func TestNew(t *testing.T) {
	if _, err := New(nil, nil, logging.NewTestLogger(io.Discard)); err == nil {
		t.Error("expected error for nil store")
	}

	bad := DefaultConfig()
	bad.Content.Cuisine = 0.9
	if _, err := New(newFakeStore(), bad, logging.NewTestLogger(io.Discard)); err == nil {
		t.Error("expected error for content weights not summing to 1")
	}

	e, err := New(newFakeStore(), nil, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("New() with nil config error = %v", err)
	}
	if e.neighbors == nil {
		t.Error("expected neighbor cache with default config")
	}

	noCache := newTestEngine(t, newFakeStore(), func(c *Config) { c.NeighborCacheSize = 0 })
	if noCache.neighbors != nil {
		t.Error("expected no neighbor cache when size is 0")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"threshold above one", func(c *Config) { c.Hybrid.HybridThreshold = 1.2 }},
		{"negative trend weight", func(c *Config) { c.Trend.Review = -1 }},
		{"bad boost window", func(c *Config) { c.TrendBoostWindow = "yearly" }},
		{"max below default", func(c *Config) { c.MaxLimit = 5 }},
		{"zero batch size", func(c *Config) { c.EdgeBatchSize = 0 }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"negative dismissal step", func(c *Config) { c.Feedback.Dismissed = -0.1 }},
		{"zero exposure timeout", func(c *Config) { c.ExposureTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestEngine_Limit(t *testing.T) {
	e := newTestEngine(t, newFakeStore())
	tests := []struct {
		in      int
		want    int
		wantErr bool
	}{
		{in: 0, want: 10},
		{in: 1, want: 1},
		{in: 100, want: 100},
		{in: 101, wantErr: true},
		{in: -1, wantErr: true},
	}
	for _, tt := range tests {
		got, err := e.limit(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("limit(%d) error = %v, want ErrInvalidInput", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("limit(%d) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
}

func TestEngine_Status(t *testing.T) {
	store := newFakeStore()
	store.addVenues(venue("a", []string{"thai"}, 2, 4), venue("b", []string{"thai"}, 2, 4))
	e := newTestEngine(t, store)
	ctx := testCtx(t)

	if _, err := e.RunSimilarityComputation(ctx); err != nil {
		t.Fatalf("RunSimilarityComputation() error = %v", err)
	}
	store.setFail("ListVenues", true)
	if _, err := e.RunTrendComputation(ctx, "", models.WindowDaily); err == nil {
		t.Fatal("expected trend run to fail")
	}

	s := e.Status()
	if s.Similarity.Runs != 1 || s.Similarity.Failures != 0 || s.LastSimilarity == nil {
		t.Errorf("similarity status = %+v", s.Similarity)
	}
	if s.Trend.Runs != 1 || s.Trend.Failures != 1 || s.Trend.LastError == "" {
		t.Errorf("trend status = %+v", s.Trend)
	}
	if s.Similarity.Running || s.Trend.Running {
		t.Error("no job should be running")
	}
	if s.ExposureBreaker != "closed" {
		t.Errorf("breaker = %q, want closed", s.ExposureBreaker)
	}
	if !s.NeighborCache.Enabled {
		t.Error("neighbor cache should be reported enabled")
	}
}
