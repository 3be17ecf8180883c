// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package models

import "time"

// Algorithm names recorded on responses and exposure entries.
const (
	AlgorithmHybridPersonalized = "hybrid_personalized"
	AlgorithmTrending           = "trending"
)

// ExposureOutcome is the later-filled result of an exposure.
type ExposureOutcome struct {
	VenueID string          `json:"venue_id"`
	Action  InteractionType `json:"action"`
	At      time.Time       `json:"at"`
}

// ExposureLogEntry records which venues were shown to a user. Entries are
// never deleted.
type ExposureLogEntry struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id,omitempty"`
	VenueIDs  []string         `json:"venue_ids"`
	Scores    []float64        `json:"scores,omitempty"`
	Algorithm string           `json:"algorithm"`
	RequestID string           `json:"request_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Outcome   *ExposureOutcome `json:"outcome,omitempty"`
}

// FeedbackType is the direction of a feedback signal.
type FeedbackType string

const (
	FeedbackPositive FeedbackType = "positive"
	FeedbackNegative FeedbackType = "negative"
	FeedbackNeutral  FeedbackType = "neutral"
)

// Feedback is a post-exposure user signal.
type Feedback struct {
	UserID       string          `json:"user_id" validate:"required,max=128"`
	VenueID      string          `json:"venue_id" validate:"required,max=128"`
	FeedbackType FeedbackType    `json:"feedback_type" validate:"required,oneof=positive negative neutral"`
	Action       InteractionType `json:"action" validate:"required,oneof=clicked booked reviewed dismissed"`
	Rating       *float64        `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`

	// ExposureID optionally references the ExposureLogEntry that led to this feedback.
	ExposureID string `json:"exposure_id,omitempty" validate:"omitempty,max=64"`
}
