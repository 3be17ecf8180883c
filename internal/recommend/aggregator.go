// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package recommend

import (
	"cmp"
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/dinewise/internal/metrics"
	"github.com/tomtom215/dinewise/internal/models"
	"github.com/tomtom215/dinewise/internal/recommend/algorithms"
)

const jobSimilarity = "similarity"

// SimilarityRunStats summarizes one similarity run.
type SimilarityRunStats struct {
	StartedAt   time.Time      `json:"started_at"`
	DurationMS  int64          `json:"duration_ms"`
	Venues      int            `json:"venues"`
	Pairs       int            `json:"pairs"`
	Edges       int            `json:"edges"`
	EdgesByKind map[string]int `json:"edges_by_kind"`
	Batches     int            `json:"batches"`
}

// RunSimilarityComputation scores every unordered pair of active, verified
// venues and replaces the similarity table with the qualifying edges.
//
// Venue and booking fetches complete before anything is written, and the
// store swaps the table in one transaction, so an aborted run leaves the
// previous edges in place. Only one run proceeds at a time.
func (e *Engine) RunSimilarityComputation(ctx context.Context) (*SimilarityRunStats, error) {
	if !e.similarityMu.TryLock() {
		metrics.RecordBatchRun(jobSimilarity, metrics.OutcomeSkipped, 0)
		return nil, ErrRunInProgress
	}
	defer e.similarityMu.Unlock()

	start := e.now()
	e.updateStatus(func(s *Status) { e.startJob(&s.Similarity, start) })
	logger := e.logger.With().Str("job", jobSimilarity).Logger()
	logger.Info().Msg("starting similarity computation")

	stats, err := e.runSimilarity(ctx, start)

	e.updateStatus(func(s *Status) {
		e.finishJob(&s.Similarity, start, err)
		if err == nil {
			s.LastSimilarity = stats
		}
	})
	duration := e.now().Sub(start)
	if err != nil {
		metrics.RecordBatchRun(jobSimilarity, metrics.OutcomeError, duration)
		logger.Error().Err(err).Dur("duration", duration).Msg("similarity computation failed")
		return nil, err
	}

	metrics.RecordBatchRun(jobSimilarity, metrics.OutcomeSuccess, duration)
	metrics.RecordSimilarityEdges(stats.Pairs, stats.EdgesByKind)
	logger.Info().
		Int("venues", stats.Venues).
		Int("pairs", stats.Pairs).
		Int("edges", stats.Edges).
		Int("batches", stats.Batches).
		Int64("duration_ms", stats.DurationMS).
		Msg("similarity computation complete")
	return stats, nil
}

func (e *Engine) runSimilarity(ctx context.Context, start time.Time) (*SimilarityRunStats, error) {
	venues, err := e.store.ListVenues(ctx, models.VenueFilter{ActiveOnly: true, VerifiedOnly: true})
	if err != nil {
		return nil, dependency("list venues", err)
	}
	bookers, err := e.store.GetCompletedBookers(ctx)
	if err != nil {
		return nil, dependency("load completed bookings", err)
	}

	edges, pairs, err := e.computeEdges(ctx, venues, bookers, start.UTC())
	if err != nil {
		return nil, err
	}

	batches, err := e.store.ReplaceSimilarityEdges(ctx, edges, e.config.EdgeBatchSize)
	if err != nil {
		return nil, dependency("replace similarity edges", err)
	}
	e.purgeNeighbors()

	stats := &SimilarityRunStats{
		StartedAt:   start,
		DurationMS:  e.now().Sub(start).Milliseconds(),
		Venues:      len(venues),
		Pairs:       pairs,
		Edges:       len(edges),
		EdgesByKind: make(map[string]int, 3),
		Batches:     batches,
	}
	for _, kind := range []models.SimilarityKind{models.SimilarityHybrid, models.SimilarityCollaborative, models.SimilarityContent} {
		stats.EdgesByKind[string(kind)] = 0
	}
	for i := range edges {
		stats.EdgesByKind[string(edges[i].Kind)]++
	}
	return stats, nil
}

// computeEdges scores all pairs across the configured workers. Rows of the
// pair triangle are dealt round-robin so workers get similar amounts of work.
// The result is sorted by (venue_a, venue_b, kind).
func (e *Engine) computeEdges(ctx context.Context, venues []models.Venue, bookers map[string][]string, computedAt time.Time) ([]models.SimilarityEdge, int, error) {
	slices.SortFunc(venues, func(a, b models.Venue) int { return cmp.Compare(a.ID, b.ID) })

	inputs := make([]algorithms.PairInput, len(venues))
	for i := range venues {
		inputs[i] = algorithms.PairInput{Venue: &venues[i], Bookers: bookers[venues[i].ID]}
	}

	workers := min(e.config.Workers, max(len(inputs), 1))
	results := make([][]models.SimilarityEdge, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			var out []models.SimilarityEdge
			for i := w; i < len(inputs); i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				for j := i + 1; j < len(inputs); j++ {
					out = append(out, algorithms.PairEdges(inputs[i], inputs[j], e.config.Content, e.config.Hybrid, computedAt)...)
				}
			}
			results[w] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var edges []models.SimilarityEdge
	for _, r := range results {
		edges = append(edges, r...)
	}
	slices.SortFunc(edges, compareEdges)

	n := len(inputs)
	return edges, n * (n - 1) / 2, nil
}

func compareEdges(a, b models.SimilarityEdge) int {
	return cmp.Or(
		cmp.Compare(a.VenueA, b.VenueA),
		cmp.Compare(a.VenueB, b.VenueB),
		cmp.Compare(a.Kind, b.Kind),
	)
}
