// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package models

import "time"

// SimilarityKind identifies which computer produced an edge.
type SimilarityKind string

const (
	SimilarityContent       SimilarityKind = "content"
	SimilarityCollaborative SimilarityKind = "collaborative"
	SimilarityHybrid        SimilarityKind = "hybrid"
)

// Valid reports whether k is a known similarity kind.
func (k SimilarityKind) Valid() bool {
	switch k {
	case SimilarityContent, SimilarityCollaborative, SimilarityHybrid:
		return true
	}
	return false
}

// SimilarityEvidence explains an edge score.
type SimilarityEvidence struct {
	// MatchedTags are the cuisine and feature tags shared by both venues.
	MatchedTags []string `json:"matched_tags,omitempty"`

	PriceMatch bool `json:"price_match"`

	// DistanceKm is nil when either venue lacks coordinates.
	DistanceKm *float64 `json:"distance_km,omitempty"`

	// SharedBookers is the number of users who completed bookings at both venues.
	SharedBookers int `json:"shared_bookers,omitempty"`

	Reasons []string `json:"reasons,omitempty"`
}

// SimilarityEdge is a directed row of a symmetric relation: (A,B) and (B,A)
// are stored separately with identical score and evidence.
type SimilarityEdge struct {
	VenueA     string             `json:"venue_a"`
	VenueB     string             `json:"venue_b"`
	Kind       SimilarityKind     `json:"kind"`
	Score      float64            `json:"score"`
	Evidence   SimilarityEvidence `json:"evidence"`
	ComputedAt time.Time          `json:"computed_at"`
}

// Reverse returns the edge from B to A.
func (e SimilarityEdge) Reverse() SimilarityEdge {
	e.VenueA, e.VenueB = e.VenueB, e.VenueA
	return e
}

// SimilarVenue is one entry of a getSimilar response.
type SimilarVenue struct {
	Venue    Venue              `json:"venue"`
	Score    float64            `json:"score"`
	Kind     SimilarityKind     `json:"kind"`
	Evidence SimilarityEvidence `json:"evidence"`
}
