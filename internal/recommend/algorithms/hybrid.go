// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package algorithms

import (
	"time"

	"github.com/tomtom215/dinewise/internal/models"
)

// HybridConfig controls blending and pruning of similarity edges.
type HybridConfig struct {
	// CollaborativeWeight and ContentWeight blend the two scores into the hybrid score.
	CollaborativeWeight float64 `json:"collaborative_weight"`
	ContentWeight       float64 `json:"content_weight"`

	// Minimum scores for an edge of each kind to be persisted.
	HybridThreshold        float64 `json:"hybrid_threshold"`
	CollaborativeThreshold float64 `json:"collaborative_threshold"`
	ContentThreshold       float64 `json:"content_threshold"`
}

// DefaultHybridConfig returns the 0.6/0.4 blend with 0.3/0.4/0.5 thresholds.
func DefaultHybridConfig() HybridConfig {
	return HybridConfig{
		CollaborativeWeight:    0.6,
		ContentWeight:          0.4,
		HybridThreshold:        0.3,
		CollaborativeThreshold: 0.4,
		ContentThreshold:       0.5,
	}
}

// HybridScore blends collaborative and content similarity.
func (c HybridConfig) HybridScore(collaborative, content float64) float64 {
	return clamp01(c.CollaborativeWeight*collaborative + c.ContentWeight*content)
}

// PairInput is one venue with its completed-booking user set.
type PairInput struct {
	Venue   *models.Venue
	Bookers []string
}

// PairEdges scores one unordered venue pair and returns every qualifying edge
// in both directions. Kinds are independent: a pair may qualify under several.
func PairEdges(a, b PairInput, weights ContentWeights, cfg HybridConfig, computedAt time.Time) []models.SimilarityEdge {
	content := ContentSimilarity(a.Venue, b.Venue, weights)
	collab, shared := CollaborativeSimilarity(a.Bookers, b.Bookers)
	hybrid := cfg.HybridScore(collab, content.Score)

	var edges []models.SimilarityEdge
	emit := func(kind models.SimilarityKind, score float64, ev models.SimilarityEvidence) {
		e := models.SimilarityEdge{
			VenueA:     a.Venue.ID,
			VenueB:     b.Venue.ID,
			Kind:       kind,
			Score:      score,
			Evidence:   ev,
			ComputedAt: computedAt,
		}
		edges = append(edges, e, e.Reverse())
	}

	if hybrid >= cfg.HybridThreshold {
		ev := content.Evidence
		ev.SharedBookers = shared
		ev.Reasons = append([]string(nil), content.Reasons...)
		if shared > 0 {
			ev.Reasons = append(ev.Reasons, SharedBookersReason(shared))
		}
		emit(models.SimilarityHybrid, hybrid, ev)
	}

	if collab >= cfg.CollaborativeThreshold {
		emit(models.SimilarityCollaborative, collab, models.SimilarityEvidence{
			SharedBookers: shared,
			Reasons:       []string{SharedBookersReason(shared)},
		})
	}

	if content.Score >= cfg.ContentThreshold {
		emit(models.SimilarityContent, content.Score, content.Evidence)
	}

	return edges
}
