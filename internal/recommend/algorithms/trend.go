// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package algorithms

import (
	"fmt"

	"github.com/tomtom215/dinewise/internal/models"
)

// ReasonHighlyRated is attached to trending venues rated at or above the highly-rated bar.
const ReasonHighlyRated = "Highly rated"

// TrendWeights are the multipliers of the trend score.
type TrendWeights struct {
	Booking float64 `json:"booking"`
	Review  float64 `json:"review"`
	Rating  float64 `json:"rating"`

	// HighlyRated is the rating at or above which "Highly rated" is attached.
	HighlyRated float64 `json:"highly_rated"`
}

// DefaultTrendWeights returns bookings x10, reviews x5, rating x15.
func DefaultTrendWeights() TrendWeights {
	return TrendWeights{
		Booking:     10,
		Review:      5,
		Rating:      15,
		HighlyRated: 4.5,
	}
}

// TrendScore computes the non-negative popularity score of a venue.
func TrendScore(c models.TrendCounts, w TrendWeights) float64 {
	score := float64(c.Bookings)*w.Booking + float64(c.Reviews)*w.Review + c.Rating*w.Rating
	if score < 0 {
		return 0
	}
	return score
}

// TrendReasons describes what drove a trend score.
func TrendReasons(c models.TrendCounts, window models.TimeWindow, w TrendWeights) []string {
	var reasons []string
	if c.Bookings > 0 {
		reasons = append(reasons, fmt.Sprintf("%d bookings in %s", c.Bookings, window.Label()))
	}
	if c.Reviews > 0 {
		reasons = append(reasons, fmt.Sprintf("%d new reviews", c.Reviews))
	}
	if c.Rating >= w.HighlyRated {
		reasons = append(reasons, ReasonHighlyRated)
	}
	return reasons
}
