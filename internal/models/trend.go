// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package models

import "time"

// TimeWindow is the lookback period for trending.
type TimeWindow string

const (
	WindowDaily   TimeWindow = "daily"
	WindowWeekly  TimeWindow = "weekly"
	WindowMonthly TimeWindow = "monthly"
)

// TrendDateLayout formats TrendSnapshot date buckets.
const TrendDateLayout = "2006-01-02"

// Valid reports whether w is a known window.
func (w TimeWindow) Valid() bool {
	return w.Duration() > 0
}

// Duration returns the window length, or 0 for unknown windows.
func (w TimeWindow) Duration() time.Duration {
	switch w {
	case WindowDaily:
		return 24 * time.Hour
	case WindowWeekly:
		return 7 * 24 * time.Hour
	case WindowMonthly:
		return 30 * 24 * time.Hour
	}
	return 0
}

// Label is the human-readable form used in reasons ("in the last week").
func (w TimeWindow) Label() string {
	switch w {
	case WindowDaily:
		return "the last day"
	case WindowWeekly:
		return "the last week"
	case WindowMonthly:
		return "the last month"
	}
	return string(w)
}

// TrendCounts holds the raw inputs of a trend score.
type TrendCounts struct {
	Bookings int     `json:"bookings"`
	Reviews  int     `json:"reviews"`
	Rating   float64 `json:"rating"`
}

// TrendSnapshot is one row per (venue, scope, window, date). Reruns on the
// same date overwrite the row.
type TrendSnapshot struct {
	VenueID    string      `json:"venue_id"`
	Scope      string      `json:"scope"`
	Window     TimeWindow  `json:"window"`
	Date       string      `json:"date"`
	Score      float64     `json:"score"`
	Counts     TrendCounts `json:"counts"`
	ComputedAt time.Time   `json:"computed_at"`
}

// TrendingVenue is one entry of a getTrending response.
type TrendingVenue struct {
	Venue   Venue       `json:"venue"`
	Score   float64     `json:"score"`
	Counts  TrendCounts `json:"counts"`
	Reasons []string    `json:"reasons"`
}
