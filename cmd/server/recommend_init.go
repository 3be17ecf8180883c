// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package main

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/tomtom215/dinewise/internal/config"
	"github.com/tomtom215/dinewise/internal/models"
	"github.com/tomtom215/dinewise/internal/recommend"
	"github.com/tomtom215/dinewise/internal/supervisor"
	"github.com/tomtom215/dinewise/internal/supervisor/services"
)

// initRecommend builds the engine and, when batch.enabled, schedules the
// similarity and trend jobs on the batch layer of the tree.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(store recommend.Store, cfg *config.Config, logger zerolog.Logger, tree *supervisor.SupervisorTree) (*recommend.Engine, error) {
	engineCfg := buildEngineConfig(cfg)
	engine, err := recommend.New(store, engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	logger.Info().
		Int("workers", engineCfg.Workers).
		Int("default_limit", engineCfg.DefaultLimit).
		Int("max_limit", engineCfg.MaxLimit).
		Int("neighbor_cache_size", engineCfg.NeighborCacheSize).
		Msg("Recommendation engine initialized")

	if !cfg.Batch.Enabled {
		logger.Info().Msg("Batch jobs disabled (BATCH_ENABLED=false); use the admin endpoints to run them")
		return engine, nil
	}

	tree.AddBatchService(services.NewSimilarityBatchService(engine, services.BatchServiceConfig{
		Interval:     cfg.Batch.SimilarityInterval,
		RunTimeout:   cfg.Batch.RunTimeout,
		RunOnStartup: cfg.Batch.RunOnStartup,
	}, logger))

	tree.AddBatchService(services.NewTrendBatchService(engine, cfg.Batch.TrendScopes, trendWindows(cfg.Batch.TrendWindows), services.BatchServiceConfig{
		Interval:     cfg.Batch.TrendInterval,
		RunTimeout:   cfg.Batch.RunTimeout,
		RunOnStartup: cfg.Batch.RunOnStartup,
	}, logger))

	logger.Info().
		Dur("similarity_interval", cfg.Batch.SimilarityInterval).
		Dur("trend_interval", cfg.Batch.TrendInterval).
		Strs("trend_scopes", cfg.Batch.TrendScopes).
		Strs("trend_windows", cfg.Batch.TrendWindows).
		Msg("Batch jobs scheduled")

	return engine, nil
}

// buildEngineConfig maps the koanf configuration onto the engine's.
// Tunables without a config key keep their recommend.DefaultConfig values.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	rc := cfg.Recommend
	engineCfg := recommend.DefaultConfig()

	engineCfg.Content.Cuisine = rc.Content.CuisineWeight
	engineCfg.Content.Price = rc.Content.PriceWeight
	engineCfg.Content.Rating = rc.Content.RatingWeight
	engineCfg.Content.Geo = rc.Content.GeoWeight
	engineCfg.Content.Feature = rc.Content.FeatureWeight
	engineCfg.Content.GeoCutoffKm = rc.Content.GeoCutoffKm

	engineCfg.Hybrid.CollaborativeWeight = rc.Hybrid.CollaborativeWeight
	engineCfg.Hybrid.ContentWeight = rc.Hybrid.ContentWeight
	engineCfg.Hybrid.HybridThreshold = rc.Hybrid.Threshold
	engineCfg.Hybrid.CollaborativeThreshold = rc.Hybrid.CollaborativeThreshold
	engineCfg.Hybrid.ContentThreshold = rc.Hybrid.ContentThreshold

	engineCfg.Trend.Booking = rc.Trend.BookingWeight
	engineCfg.Trend.Review = rc.Trend.ReviewWeight
	engineCfg.Trend.Rating = rc.Trend.RatingWeight

	engineCfg.Feedback = recommend.FeedbackSteps{
		Booked:    rc.Feedback.BookedStep,
		Reviewed:  rc.Feedback.ReviewedStep,
		Clicked:   rc.Feedback.ClickedStep,
		Dismissed: rc.Feedback.DismissedStep,
	}

	engineCfg.PreferenceBoost = rc.PreferenceBoost
	engineCfg.TrendBoostMax = rc.TrendBoostMax
	engineCfg.FallbackConfidence = rc.FallbackConfidence
	engineCfg.DefaultLimit = rc.DefaultLimit
	engineCfg.MaxLimit = rc.MaxLimit
	engineCfg.DefaultRadiusKm = rc.DefaultRadiusKm
	engineCfg.EdgeBatchSize = rc.EdgeBatchSize
	engineCfg.NeighborCacheSize = rc.NeighborCacheSize
	engineCfg.NeighborCacheTTL = rc.NeighborCacheTTL
	engineCfg.ExposureTimeout = rc.ExposureTimeout

	engineCfg.Workers = rc.Workers
	if engineCfg.Workers <= 0 {
		engineCfg.Workers = runtime.NumCPU()
	}
	return engineCfg
}

// trendWindows converts validated config strings; invalid entries are
// rejected by config validation before this runs.
func trendWindows(raw []string) []models.TimeWindow {
	windows := make([]models.TimeWindow, 0, len(raw))
	for _, w := range raw {
		if tw := models.TimeWindow(w); tw.Valid() {
			windows = append(windows, tw)
		}
	}
	return windows
}
