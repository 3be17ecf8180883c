// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package recommend

import (
	"context"
	"strings"
	"time"

	"github.com/tomtom215/dinewise/internal/metrics"
	"github.com/tomtom215/dinewise/internal/models"
)

// GetSimilar returns the hybrid neighbors of a venue, strongest first.
// Unknown or inactive venues simply have no neighbors.
func (e *Engine) GetSimilar(ctx context.Context, venueID string, limit int) ([]models.SimilarVenue, error) {
	start := time.Now()
	out, err := e.getSimilar(ctx, venueID, limit)
	metrics.RecordRecommendRequest("similar", string(models.SimilarityHybrid), time.Since(start), err)
	return out, err
}

func (e *Engine) getSimilar(ctx context.Context, venueID string, limit int) ([]models.SimilarVenue, error) {
	if strings.TrimSpace(venueID) == "" {
		return nil, invalidInputf("venue id is required")
	}
	n, err := e.limit(limit)
	if err != nil {
		return nil, err
	}

	// Over-fetch so venues deactivated since the last run can be dropped,
	// widening until the limit is met or the stored neighbors run out.
	for fetch := 2 * n; ; fetch *= 2 {
		edges, err := e.store.GetSimilarityEdges(ctx, venueID, models.SimilarityHybrid, fetch)
		if err != nil {
			return nil, err
		}
		out, err := e.activeNeighbors(ctx, edges, n)
		if err != nil {
			return nil, err
		}
		if len(out) == n || len(edges) < fetch {
			return out, nil
		}
	}
}

// activeNeighbors keeps the first n edges whose target venue is still active.
func (e *Engine) activeNeighbors(ctx context.Context, edges []models.SimilarityEdge, n int) ([]models.SimilarVenue, error) {
	out := make([]models.SimilarVenue, 0, n)
	if len(edges) == 0 {
		return out, nil
	}

	ids := make([]string, len(edges))
	for i := range edges {
		ids[i] = edges[i].VenueB
	}
	venues, err := e.store.GetVenuesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range edges {
		v, ok := venues[edges[i].VenueB]
		if !ok || !v.Active {
			continue
		}
		out = append(out, models.SimilarVenue{
			Venue:    v,
			Score:    edges[i].Score,
			Kind:     edges[i].Kind,
			Evidence: edges[i].Evidence,
		})
		if len(out) == n {
			break
		}
	}
	return out, nil
}
