// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package recommend

import (
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/dinewise/internal/models"
	"github.com/tomtom215/dinewise/internal/recommend/algorithms"
)

// FeedbackSteps is the preference confidence step applied per feedback action.
type FeedbackSteps struct {
	Booked    float64 `json:"booked"`
	Reviewed  float64 `json:"reviewed"`
	Clicked   float64 `json:"clicked"`
	Dismissed float64 `json:"dismissed"`
}

// Step returns the step for an action, or 0 for actions that carry none.
func (s FeedbackSteps) Step(action models.InteractionType) float64 {
	switch action {
	case models.InteractionBooked:
		return s.Booked
	case models.InteractionReviewed:
		return s.Reviewed
	case models.InteractionClicked:
		return s.Clicked
	case models.InteractionDismissed:
		return s.Dismissed
	default:
		return 0
	}
}

// Config contains all tunables of the engine.
type Config struct {
	Content  algorithms.ContentWeights `json:"content"`
	Hybrid   algorithms.HybridConfig   `json:"hybrid"`
	Trend    algorithms.TrendWeights   `json:"trend"`
	Feedback FeedbackSteps             `json:"feedback"`

	// PreferenceBoost scales the summed confidence of matching preferences.
	PreferenceBoost float64 `json:"preference_boost"`

	// TrendBoostMax is the largest relative boost trending can add to a personalized score.
	TrendBoostMax float64 `json:"trend_boost_max"`

	// TrendBoostWindow selects the snapshots used for the trend boost.
	TrendBoostWindow models.TimeWindow `json:"trend_boost_window"`

	// FallbackConfidence is reported on trending fallback results.
	FallbackConfidence float64 `json:"fallback_confidence"`

	DefaultLimit    int     `json:"default_limit"`
	MaxLimit        int     `json:"max_limit"`
	DefaultRadiusKm float64 `json:"default_radius_km"`

	EdgeBatchSize int `json:"edge_batch_size"`
	Workers       int `json:"workers"`

	// NeighborCacheSize of 0 disables the per-seed neighbor cache.
	NeighborCacheSize int           `json:"neighbor_cache_size"`
	NeighborCacheTTL  time.Duration `json:"neighbor_cache_ttl"`

	ExposureTimeout time.Duration `json:"exposure_timeout"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Content: algorithms.DefaultContentWeights(),
		Hybrid:  algorithms.DefaultHybridConfig(),
		Trend:   algorithms.DefaultTrendWeights(),
		Feedback: FeedbackSteps{
			Booked:    0.30,
			Reviewed:  0.20,
			Clicked:   0.10,
			Dismissed: 0.20,
		},
		PreferenceBoost:    0.2,
		TrendBoostMax:      0.1,
		TrendBoostWindow:   models.WindowWeekly,
		FallbackConfidence: 0.5,
		DefaultLimit:       10,
		MaxLimit:           100,
		DefaultRadiusKm:    25,
		EdgeBatchSize:      1000,
		Workers:            4,
		NeighborCacheSize:  10000,
		NeighborCacheTTL:   10 * time.Minute,
		ExposureTimeout:    2 * time.Second,
	}
}

// Validate checks that the configuration is usable.
//
//nolint:gocyclo // one check per field
func (c *Config) Validate() error {
	unit := []struct {
		name  string
		value float64
	}{
		{"hybrid.collaborative_weight", c.Hybrid.CollaborativeWeight},
		{"hybrid.content_weight", c.Hybrid.ContentWeight},
		{"hybrid.hybrid_threshold", c.Hybrid.HybridThreshold},
		{"hybrid.collaborative_threshold", c.Hybrid.CollaborativeThreshold},
		{"hybrid.content_threshold", c.Hybrid.ContentThreshold},
		{"feedback.booked", c.Feedback.Booked},
		{"feedback.reviewed", c.Feedback.Reviewed},
		{"feedback.clicked", c.Feedback.Clicked},
		{"feedback.dismissed", c.Feedback.Dismissed},
		{"preference_boost", c.PreferenceBoost},
		{"trend_boost_max", c.TrendBoostMax},
		{"fallback_confidence", c.FallbackConfidence},
	}
	for _, u := range unit {
		if u.value < 0 || u.value > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %f", u.name, u.value)
		}
	}

	if sum := c.Content.Sum(); math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("content weights must sum to 1.0, got %f", sum)
	}
	if c.Content.GeoCutoffKm <= 0 {
		return fmt.Errorf("content.geo_cutoff_km must be positive, got %f", c.Content.GeoCutoffKm)
	}
	if c.Trend.Booking < 0 || c.Trend.Review < 0 || c.Trend.Rating < 0 {
		return fmt.Errorf("trend weights must be non-negative")
	}
	if !c.TrendBoostWindow.Valid() {
		return fmt.Errorf("trend_boost_window %q is not a valid window", c.TrendBoostWindow)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit must be >= default_limit, got %d < %d", c.MaxLimit, c.DefaultLimit)
	}
	if c.DefaultRadiusKm <= 0 {
		return fmt.Errorf("default_radius_km must be positive, got %f", c.DefaultRadiusKm)
	}
	if c.EdgeBatchSize < 1 {
		return fmt.Errorf("edge_batch_size must be positive, got %d", c.EdgeBatchSize)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.NeighborCacheSize < 0 {
		return fmt.Errorf("neighbor_cache_size must be non-negative, got %d", c.NeighborCacheSize)
	}
	if c.ExposureTimeout <= 0 {
		return fmt.Errorf("exposure_timeout must be positive, got %v", c.ExposureTimeout)
	}
	return nil
}

// Clone returns a copy of the configuration. All fields are values.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
