// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package recommend

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/tomtom215/dinewise/internal/metrics"
	"github.com/tomtom215/dinewise/internal/models"
	"github.com/tomtom215/dinewise/internal/recommend/algorithms"
)

const jobTrend = "trend"

// TrendRunStats summarizes one trend run.
type TrendRunStats struct {
	Scope      string            `json:"scope"`
	Window     models.TimeWindow `json:"window"`
	Date       string            `json:"date"`
	StartedAt  time.Time         `json:"started_at"`
	DurationMS int64             `json:"duration_ms"`
	Venues     int               `json:"venues"`
	Trending   int               `json:"trending"`
	Snapshots  int               `json:"snapshots"`
}

// GetTrending returns venues ranked by recent activity in scope (a city,
// case-insensitive; empty for global). Only venues with a positive score are
// returned.
func (e *Engine) GetTrending(ctx context.Context, scope string, window models.TimeWindow, limit int) ([]models.TrendingVenue, error) {
	start := time.Now()
	out, err := e.getTrending(ctx, scope, window, limit)
	metrics.RecordRecommendRequest("trending", models.AlgorithmTrending, time.Since(start), err)
	return out, err
}

func (e *Engine) getTrending(ctx context.Context, scope string, window models.TimeWindow, limit int) ([]models.TrendingVenue, error) {
	if window == "" {
		window = models.WindowWeekly
	}
	if !window.Valid() {
		return nil, invalidInputf("window must be one of daily, weekly, monthly, got %q", window)
	}
	n, err := e.limit(limit)
	if err != nil {
		return nil, err
	}

	scored, err := e.scoreTrending(ctx, scope, window, e.now())
	if err != nil {
		return nil, err
	}
	out := positiveTrending(scored)
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// RunTrendComputation scores every active venue in scope and upserts one
// snapshot per venue for today's UTC date. Rerunning on the same day
// overwrites the day's snapshots.
func (e *Engine) RunTrendComputation(ctx context.Context, scope string, window models.TimeWindow) (*TrendRunStats, error) {
	if !window.Valid() {
		return nil, invalidInputf("window must be one of daily, weekly, monthly, got %q", window)
	}
	if !e.trendMu.TryLock() {
		metrics.RecordBatchRun(jobTrend, metrics.OutcomeSkipped, 0)
		return nil, ErrRunInProgress
	}
	defer e.trendMu.Unlock()

	start := e.now()
	e.updateStatus(func(s *Status) { e.startJob(&s.Trend, start) })
	logger := e.logger.With().Str("job", jobTrend).Str("scope", scope).Str("window", string(window)).Logger()

	stats, err := e.runTrend(ctx, scope, window, start)

	e.updateStatus(func(s *Status) {
		e.finishJob(&s.Trend, start, err)
		if err == nil {
			s.LastTrend = stats
		}
	})
	duration := e.now().Sub(start)
	if err != nil {
		metrics.RecordBatchRun(jobTrend, metrics.OutcomeError, duration)
		logger.Error().Err(err).Msg("trend computation failed")
		return nil, err
	}

	metrics.RecordBatchRun(jobTrend, metrics.OutcomeSuccess, duration)
	metrics.RecordTrendSnapshots(string(window), stats.Snapshots)
	logger.Info().
		Str("date", stats.Date).
		Int("venues", stats.Venues).
		Int("trending", stats.Trending).
		Int64("duration_ms", stats.DurationMS).
		Msg("trend computation complete")
	return stats, nil
}

func (e *Engine) runTrend(ctx context.Context, scope string, window models.TimeWindow, now time.Time) (*TrendRunStats, error) {
	scored, err := e.scoreTrending(ctx, scope, window, now)
	if err != nil {
		return nil, err
	}

	date := now.UTC().Format(models.TrendDateLayout)
	scopeKey := normalizeScope(scope)
	snapshots := make([]models.TrendSnapshot, len(scored))
	trending := 0
	for i := range scored {
		snapshots[i] = models.TrendSnapshot{
			VenueID:    scored[i].Venue.ID,
			Scope:      scopeKey,
			Window:     window,
			Date:       date,
			Score:      scored[i].Score,
			Counts:     scored[i].Counts,
			ComputedAt: now.UTC(),
		}
		if scored[i].Score > 0 {
			trending++
		}
	}

	if err := e.store.UpsertTrendSnapshots(ctx, snapshots); err != nil {
		return nil, dependency("upsert trend snapshots", err)
	}

	return &TrendRunStats{
		Scope:      scopeKey,
		Window:     window,
		Date:       date,
		StartedAt:  now,
		DurationMS: e.now().Sub(now).Milliseconds(),
		Venues:     len(scored),
		Trending:   trending,
		Snapshots:  len(snapshots),
	}, nil
}

// scoreTrending scores every active venue in scope, sorted by score
// descending and venue id ascending. Zero scores are included.
func (e *Engine) scoreTrending(ctx context.Context, scope string, window models.TimeWindow, now time.Time) ([]models.TrendingVenue, error) {
	venues, err := e.store.ListVenues(ctx, models.VenueFilter{ActiveOnly: true})
	if err != nil {
		return nil, dependency("list venues", err)
	}
	activity, err := e.store.CountActivity(ctx, now.Add(-window.Duration()), now)
	if err != nil {
		return nil, dependency("count activity", err)
	}

	scopeKey := normalizeScope(scope)
	out := make([]models.TrendingVenue, 0, len(venues))
	for i := range venues {
		v := &venues[i]
		if scopeKey != "" && normalizeScope(v.City) != scopeKey {
			continue
		}
		counts := activity[v.ID]
		counts.Rating = v.Rating
		out = append(out, models.TrendingVenue{
			Venue:   *v,
			Score:   algorithms.TrendScore(counts, e.config.Trend),
			Counts:  counts,
			Reasons: algorithms.TrendReasons(counts, window, e.config.Trend),
		})
	}

	slices.SortFunc(out, func(a, b models.TrendingVenue) int {
		return cmp.Or(cmp.Compare(b.Score, a.Score), cmp.Compare(a.Venue.ID, b.Venue.ID))
	})
	return out, nil
}

func positiveTrending(scored []models.TrendingVenue) []models.TrendingVenue {
	for i := range scored {
		if scored[i].Score <= 0 {
			return scored[:i]
		}
	}
	return scored
}

func normalizeScope(scope string) string {
	return strings.ToLower(strings.TrimSpace(scope))
}
