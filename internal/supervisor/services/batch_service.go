// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/dinewise/internal/models"
	"github.com/tomtom215/dinewise/internal/recommend"
)

// Job is one run of a scheduled batch computation.
type Job func(ctx context.Context) error

// BatchServiceConfig schedules a Job.
type BatchServiceConfig struct {
	// Interval between runs. Default: 1h
	Interval time.Duration

	// RunTimeout bounds a single run. Default: 30m
	RunTimeout time.Duration

	// RunOnStartup triggers a run as soon as the service starts.
	RunOnStartup bool
}

func (c BatchServiceConfig) withDefaults() BatchServiceConfig {
	if c.Interval <= 0 {
		c.Interval = time.Hour
	}
	if c.RunTimeout <= 0 {
		c.RunTimeout = 30 * time.Minute
	}
	return c
}

// BatchService runs a Job on a ticker under suture supervision. A failed run
// is logged and retried at the next tick; only ctx cancellation stops Serve.
type BatchService struct {
	name   string
	job    Job
	config BatchServiceConfig
	logger zerolog.Logger
}

// NewBatchService wraps job as a supervised service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBatchService(name string, job Job, cfg BatchServiceConfig, logger zerolog.Logger) *BatchService {
	return &BatchService{
		name:   name,
		job:    job,
		config: cfg.withDefaults(),
		logger: logger.With().Str("service", name).Logger(),
	}
}

// Serve implements suture.Service.
func (s *BatchService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("run_on_startup", s.config.RunOnStartup).
		Dur("interval", s.config.Interval).
		Msg("batch service starting")

	if s.config.RunOnStartup {
		s.run(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("batch service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *BatchService) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	start := time.Now()
	err := s.job(runCtx)
	switch {
	case err == nil:
		s.logger.Debug().Dur("duration", time.Since(start)).Msg("batch run finished")
	case errors.Is(err, recommend.ErrRunInProgress):
		s.logger.Info().Msg("batch run skipped, previous run still in progress")
	case ctx.Err() != nil:
		// Shutdown in progress; Serve reports it.
	default:
		s.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("batch run failed, will retry on schedule")
	}
}

// String returns the service name for suture's logs.
func (s *BatchService) String() string {
	return s.name
}

// SimilarityRunner is satisfied by *recommend.Engine.
type SimilarityRunner interface {
	RunSimilarityComputation(ctx context.Context) (*recommend.SimilarityRunStats, error)
}

// NewSimilarityBatchService schedules the similarity aggregator.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSimilarityBatchService(engine SimilarityRunner, cfg BatchServiceConfig, logger zerolog.Logger) *BatchService {
	job := func(ctx context.Context) error {
		_, err := engine.RunSimilarityComputation(ctx)
		return err
	}
	return NewBatchService("similarity-batch", job, cfg, logger)
}

// TrendRunner is satisfied by *recommend.Engine.
type TrendRunner interface {
	RunTrendComputation(ctx context.Context, scope string, window models.TimeWindow) (*recommend.TrendRunStats, error)
}

// NewTrendBatchService schedules trend snapshots for the global scope plus
// every configured scope, across all windows. One failing (scope, window)
// does not stop the others; their errors are joined.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrendBatchService(engine TrendRunner, scopes []string, windows []models.TimeWindow, cfg BatchServiceConfig, logger zerolog.Logger) *BatchService {
	allScopes := []string{""}
	for _, scope := range scopes {
		scope = strings.ToLower(strings.TrimSpace(scope))
		if !slices.Contains(allScopes, scope) {
			allScopes = append(allScopes, scope)
		}
	}
	job := func(ctx context.Context) error {
		var errs []error
		for _, scope := range allScopes {
			for _, window := range windows {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				_, err := engine.RunTrendComputation(ctx, scope, window)
				if err != nil && !errors.Is(err, recommend.ErrRunInProgress) {
					errs = append(errs, fmt.Errorf("scope %q window %s: %w", scope, window, err))
				}
			}
		}
		return errors.Join(errs...)
	}
	return NewBatchService("trend-batch", job, cfg, logger)
}
