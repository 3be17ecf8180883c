// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package config

import (
	"fmt"
	"math"
	"slices"
)

var (
	validDrivers    = []string{DriverDuckDB, DriverSQLite}
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error"}
	validLogFormats = []string{"json", "console"}
	validWindows    = []string{"daily", "weekly", "monthly"}
)

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateBatch()
}

func (c *Config) validateDatabase() error {
	if !slices.Contains(validDrivers, c.Database.Driver) {
		return fmt.Errorf("database.driver must be one of %v, got %q", validDrivers, c.Database.Driver)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database.threads must be non-negative, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be positive, got %v", c.Server.RequestTimeout)
	}
	if !c.Server.RateLimitDisabled && (c.Server.RateLimitRequests < 1 || c.Server.RateLimitWindow <= 0) {
		return fmt.Errorf("server.rate_limit_requests and server.rate_limit_window must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of %v, got %q", validLogLevels, c.Logging.Level)
	}
	if !slices.Contains(validLogFormats, c.Logging.Format) {
		return fmt.Errorf("logging.format must be one of %v, got %q", validLogFormats, c.Logging.Format)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := &c.Recommend

	weights := []struct {
		name  string
		value float64
	}{
		{"recommend.content.cuisine_weight", r.Content.CuisineWeight},
		{"recommend.content.price_weight", r.Content.PriceWeight},
		{"recommend.content.rating_weight", r.Content.RatingWeight},
		{"recommend.content.geo_weight", r.Content.GeoWeight},
		{"recommend.content.feature_weight", r.Content.FeatureWeight},
		{"recommend.hybrid.collaborative_weight", r.Hybrid.CollaborativeWeight},
		{"recommend.hybrid.content_weight", r.Hybrid.ContentWeight},
		{"recommend.hybrid.threshold", r.Hybrid.Threshold},
		{"recommend.hybrid.collaborative_threshold", r.Hybrid.CollaborativeThreshold},
		{"recommend.hybrid.content_threshold", r.Hybrid.ContentThreshold},
		{"recommend.preference_boost", r.PreferenceBoost},
		{"recommend.trend_boost_max", r.TrendBoostMax},
		{"recommend.fallback_confidence", r.FallbackConfidence},
		{"recommend.feedback.booked_step", r.Feedback.BookedStep},
		{"recommend.feedback.reviewed_step", r.Feedback.ReviewedStep},
		{"recommend.feedback.clicked_step", r.Feedback.ClickedStep},
		{"recommend.feedback.dismissed_step", r.Feedback.DismissedStep},
	}
	for _, w := range weights {
		if w.value < 0 || w.value > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %f", w.name, w.value)
		}
	}

	contentSum := r.Content.CuisineWeight + r.Content.PriceWeight + r.Content.RatingWeight +
		r.Content.GeoWeight + r.Content.FeatureWeight
	if math.Abs(contentSum-1) > 1e-6 {
		return fmt.Errorf("recommend.content weights must sum to 1.0, got %f", contentSum)
	}
	if math.Abs(r.Hybrid.CollaborativeWeight+r.Hybrid.ContentWeight-1) > 1e-6 {
		return fmt.Errorf("recommend.hybrid weights must sum to 1.0, got %f",
			r.Hybrid.CollaborativeWeight+r.Hybrid.ContentWeight)
	}
	if r.Content.GeoCutoffKm <= 0 {
		return fmt.Errorf("recommend.content.geo_cutoff_km must be positive, got %f", r.Content.GeoCutoffKm)
	}
	if r.Trend.BookingWeight < 0 || r.Trend.ReviewWeight < 0 || r.Trend.RatingWeight < 0 {
		return fmt.Errorf("recommend.trend weights must be non-negative")
	}
	if r.DefaultLimit < 1 || r.MaxLimit < r.DefaultLimit {
		return fmt.Errorf("recommend.default_limit must be >= 1 and <= max_limit, got %d/%d", r.DefaultLimit, r.MaxLimit)
	}
	if r.DefaultRadiusKm <= 0 {
		return fmt.Errorf("recommend.default_radius_km must be positive, got %f", r.DefaultRadiusKm)
	}
	if r.EdgeBatchSize < 1 {
		return fmt.Errorf("recommend.edge_batch_size must be positive, got %d", r.EdgeBatchSize)
	}
	if r.Workers < 0 {
		return fmt.Errorf("recommend.workers must be non-negative, got %d", r.Workers)
	}
	if r.NeighborCacheSize < 0 {
		return fmt.Errorf("recommend.neighbor_cache_size must be non-negative, got %d", r.NeighborCacheSize)
	}
	return nil
}

func (c *Config) validateBatch() error {
	if !c.Batch.Enabled {
		return nil
	}
	if c.Batch.SimilarityInterval <= 0 || c.Batch.TrendInterval <= 0 {
		return fmt.Errorf("batch intervals must be positive, got similarity=%v trend=%v",
			c.Batch.SimilarityInterval, c.Batch.TrendInterval)
	}
	if c.Batch.RunTimeout <= 0 {
		return fmt.Errorf("batch.run_timeout must be positive, got %v", c.Batch.RunTimeout)
	}
	if len(c.Batch.TrendWindows) == 0 {
		return fmt.Errorf("batch.trend_windows must not be empty")
	}
	for _, w := range c.Batch.TrendWindows {
		if !slices.Contains(validWindows, w) {
			return fmt.Errorf("batch.trend_windows entries must be one of %v, got %q", validWindows, w)
		}
	}
	return nil
}
