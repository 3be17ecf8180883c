// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package algorithms

import (
	"math"

	"github.com/tomtom215/dinewise/internal/models"
)

// Reason strings attached to content similarity.
const (
	ReasonSimilarCuisine   = "Similar cuisine"
	ReasonSamePriceRange   = "Same price range"
	ReasonSimilarQuality   = "Similar quality"
	ReasonNearbyLocation   = "Nearby location"
	ReasonSimilarAmenities = "Similar amenities"
)

// maxRating is the top of the rating scale.
const maxRating = 5.0

// ContentWeights configures ContentSimilarity. The five term weights are
// expected to sum to 1.0.
type ContentWeights struct {
	Cuisine float64 `json:"cuisine"`
	Price   float64 `json:"price"`
	Rating  float64 `json:"rating"`
	Geo     float64 `json:"geo"`
	Feature float64 `json:"feature"`

	// GeoCutoffKm is the distance beyond which proximity contributes nothing.
	GeoCutoffKm float64 `json:"geo_cutoff_km"`

	// NearbyKm is the distance under which the "Nearby location" reason applies.
	NearbyKm float64 `json:"nearby_km"`

	// TagOverlapReason is the Jaccard overlap above which cuisine and amenity reasons apply.
	TagOverlapReason float64 `json:"tag_overlap_reason"`

	// QualityReason is the rating proximity above which "Similar quality" applies.
	QualityReason float64 `json:"quality_reason"`
}

// DefaultContentWeights returns the documented content similarity weights.
func DefaultContentWeights() ContentWeights {
	return ContentWeights{
		Cuisine:          0.40,
		Price:            0.25,
		Rating:           0.15,
		Geo:              0.10,
		Feature:          0.10,
		GeoCutoffKm:      20,
		NearbyKm:         5,
		TagOverlapReason: 0.5,
		QualityReason:    0.8,
	}
}

// Sum returns the total of the five term weights.
func (w ContentWeights) Sum() float64 {
	return w.Cuisine + w.Price + w.Rating + w.Geo + w.Feature
}

// ContentResult is the output of ContentSimilarity.
type ContentResult struct {
	Score    float64
	Reasons  []string
	Evidence models.SimilarityEvidence
}

// ContentSimilarity scores two venues from their static attributes.
// The result is symmetric in a and b and lies in [0,1].
func ContentSimilarity(a, b *models.Venue, w ContentWeights) ContentResult {
	var (
		score   float64
		reasons []string
		ev      models.SimilarityEvidence
	)

	cuisinesA, cuisinesB := models.NormalizeTags(a.Cuisines), models.NormalizeTags(b.Cuisines)
	cuisineOverlap := JaccardSimilarity(cuisinesA, cuisinesB)
	score += cuisineOverlap * w.Cuisine
	if cuisineOverlap > w.TagOverlapReason {
		reasons = append(reasons, ReasonSimilarCuisine)
	}

	if a.PriceTier == b.PriceTier {
		score += w.Price
		ev.PriceMatch = true
		reasons = append(reasons, ReasonSamePriceRange)
	}

	ratingProximity := math.Max(0, 1-math.Abs(a.Rating-b.Rating)/maxRating)
	score += ratingProximity * w.Rating
	if ratingProximity > w.QualityReason {
		reasons = append(reasons, ReasonSimilarQuality)
	}

	if a.HasLocation() && b.HasLocation() {
		distance := HaversineKm(*a.Latitude, *a.Longitude, *b.Latitude, *b.Longitude)
		ev.DistanceKm = &distance
		if w.GeoCutoffKm > 0 {
			score += math.Max(0, 1-distance/w.GeoCutoffKm) * w.Geo
		}
		if distance < w.NearbyKm {
			reasons = append(reasons, ReasonNearbyLocation)
		}
	}

	featuresA, featuresB := models.NormalizeTags(a.Features), models.NormalizeTags(b.Features)
	featureOverlap := JaccardSimilarity(featuresA, featuresB)
	score += featureOverlap * w.Feature
	if featureOverlap > w.TagOverlapReason {
		reasons = append(reasons, ReasonSimilarAmenities)
	}

	ev.MatchedTags = append(intersect(cuisinesA, cuisinesB), intersect(featuresA, featuresB)...)
	ev.Reasons = reasons

	return ContentResult{
		Score:    clamp01(score),
		Reasons:  reasons,
		Evidence: ev,
	}
}
