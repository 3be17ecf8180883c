// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package models

import (
	"strconv"
	"time"
)

// PreferenceType is the venue attribute a preference applies to.
type PreferenceType string

const (
	PreferenceCuisine    PreferenceType = "cuisine"
	PreferencePriceRange PreferenceType = "price_range"
	PreferenceLocation   PreferenceType = "location"
)

// PreferenceSourceFeedback marks weights learned from recorded feedback.
const PreferenceSourceFeedback = "feedback"

// PreferenceWeight is a per-user, per-attribute soft signal. Confidence is
// always within [0,1].
type PreferenceWeight struct {
	UserID     string         `json:"user_id"`
	Type       PreferenceType `json:"type"`
	Value      string         `json:"value"`
	Confidence float64        `json:"confidence"`
	Source     string         `json:"source"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// PreferenceKey identifies a preference within one user's set.
type PreferenceKey struct {
	Type  PreferenceType
	Value string
}

// Key returns the (type, value) identity of the weight.
func (p *PreferenceWeight) Key() PreferenceKey {
	return PreferenceKey{Type: p.Type, Value: p.Value}
}

// PreferenceKeys returns the attribute keys a venue can match: one per cuisine
// tag, its price tier and its city.
func (v *Venue) PreferenceKeys() []PreferenceKey {
	keys := make([]PreferenceKey, 0, len(v.Cuisines)+2)
	for _, c := range NormalizeTags(v.Cuisines) {
		keys = append(keys, PreferenceKey{Type: PreferenceCuisine, Value: c})
	}
	if v.PriceTier > 0 {
		keys = append(keys, PreferenceKey{Type: PreferencePriceRange, Value: strconv.Itoa(v.PriceTier)})
	}
	if city := NormalizeTag(v.City); city != "" {
		keys = append(keys, PreferenceKey{Type: PreferenceLocation, Value: city})
	}
	return keys
}
