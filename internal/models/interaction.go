// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package models

import "time"

// InteractionType classifies a user to venue event.
type InteractionType string

const (
	InteractionViewed    InteractionType = "viewed"
	InteractionClicked   InteractionType = "clicked"
	InteractionBooked    InteractionType = "booked"
	InteractionReviewed  InteractionType = "reviewed"
	InteractionDismissed InteractionType = "dismissed"
)

// interactionWeights orders booked > reviewed > clicked > viewed > dismissed.
var interactionWeights = map[InteractionType]float64{
	InteractionBooked:    1.0,
	InteractionReviewed:  0.8,
	InteractionClicked:   0.3,
	InteractionViewed:    0.1,
	InteractionDismissed: -0.5,
}

// Valid reports whether t is a known interaction type.
func (t InteractionType) Valid() bool {
	_, ok := interactionWeights[t]
	return ok
}

// Weight returns the signal strength of the interaction type.
// Dismissals carry a negative weight; unknown types weigh 0.
func (t InteractionType) Weight() float64 {
	return interactionWeights[t]
}

// Interaction is an append-only record of a user acting on a venue.
// Rows are never updated or deleted.
type Interaction struct {
	ID      string          `json:"id"`
	UserID  string          `json:"user_id" validate:"required,max=128"`
	VenueID string          `json:"venue_id" validate:"required,max=128"`
	Type    InteractionType `json:"type" validate:"required,oneof=viewed clicked booked reviewed dismissed"`

	// Weight is derived from Type when the interaction is recorded.
	// Negative feedback stores it with a negative sign.
	Weight float64 `json:"weight"`

	// Rating is set for reviews (0-5).
	Rating *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`

	// Completed marks a booking as confirmed-complete by the booking system.
	// Only completed bookings feed collaborative similarity and trending.
	Completed bool `json:"completed"`

	OccurredAt time.Time `json:"occurred_at"`
}

// IsCompletedBooking reports whether the interaction belongs to the CompletedBooking view.
func (i *Interaction) IsCompletedBooking() bool {
	return i.Type == InteractionBooked && i.Completed
}

// IsPositive reports whether the interaction signals interest in the venue.
func (i *Interaction) IsPositive() bool {
	return i.Weight > 0 && i.Type != InteractionViewed
}
