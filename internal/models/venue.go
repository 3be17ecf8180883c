// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package models

import (
	"slices"
	"strings"
	"time"
)

// Meal periods a venue can declare. Requests may filter on them via time_of_day.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealLateNight = "late_night"
)

// ValidMealPeriod reports whether period is a known meal period.
func ValidMealPeriod(period string) bool {
	switch period {
	case MealBreakfast, MealLunch, MealDinner, MealLateNight:
		return true
	}
	return false
}

// Venue is a read-only snapshot of a restaurant owned by the booking system.
// It is never mutated during a scoring request.
type Venue struct {
	// ID is the booking system's venue identifier.
	ID string `json:"id" validate:"required,max=128"`

	// Name is the display name.
	Name string `json:"name" validate:"max=256"`

	// Cuisines holds cuisine tags (e.g. "italian", "sushi").
	Cuisines []string `json:"cuisines"`

	// PriceTier is the ordinal price level, 1 (cheap) to 4 (fine dining).
	PriceTier int `json:"price_tier" validate:"min=0,max=4"`

	// Latitude and Longitude are optional; both must be set for geo terms to apply.
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`

	// City is the location scope used by trending and location preferences.
	City string `json:"city,omitempty" validate:"max=128"`

	// Features holds amenity and feature tags (e.g. "outdoor_seating", "wifi").
	Features []string `json:"features"`

	// MealPeriods lists the meal periods served. Empty means unspecified.
	MealPeriods []string `json:"meal_periods,omitempty" validate:"dive,meal_period"`

	// Rating is the aggregate rating on a 0-5 scale.
	Rating float64 `json:"rating" validate:"min=0,max=5"`

	Verified bool `json:"verified"`
	Active   bool `json:"active"`

	UpdatedAt time.Time `json:"updated_at"`
}

// VenueFilter restricts catalog listings.
type VenueFilter struct {
	ActiveOnly   bool
	VerifiedOnly bool
}

// HasLocation reports whether both coordinates are present.
func (v *Venue) HasLocation() bool {
	return v.Latitude != nil && v.Longitude != nil
}

// HasCuisine reports whether the venue carries the given cuisine tag (case-insensitive).
func (v *Venue) HasCuisine(cuisine string) bool {
	want := NormalizeTag(cuisine)
	for _, c := range v.Cuisines {
		if NormalizeTag(c) == want {
			return true
		}
	}
	return false
}

// ServesMeal reports whether the venue serves the meal period.
// Venues that declare no meal periods are treated as serving all of them.
func (v *Venue) ServesMeal(period string) bool {
	if len(v.MealPeriods) == 0 {
		return true
	}
	return slices.Contains(v.MealPeriods, period)
}

// NormalizeTag lowercases and trims a tag so tag comparisons are case-insensitive.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags returns the de-duplicated, normalized, sorted form of tags.
// Empty tags are dropped.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if n := NormalizeTag(t); n != "" {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
