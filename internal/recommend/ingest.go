// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package recommend

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/tomtom215/dinewise/internal/models"
	"github.com/tomtom215/dinewise/internal/recommend/algorithms"
	"github.com/tomtom215/dinewise/internal/validation"
)

// UpsertVenue stores a venue snapshot from the booking system. Tags are
// normalized before storage.
func (e *Engine) UpsertVenue(ctx context.Context, v models.Venue) error {
	v.ID = strings.TrimSpace(v.ID)
	if err := validation.ValidateStruct(&v); err != nil {
		return invalidInput(err)
	}
	if (v.Latitude == nil) != (v.Longitude == nil) {
		return invalidInputf("latitude and longitude must be provided together")
	}

	v.Cuisines = models.NormalizeTags(v.Cuisines)
	v.Features = models.NormalizeTags(v.Features)
	v.MealPeriods = models.NormalizeTags(v.MealPeriods)
	v.UpdatedAt = e.now().UTC()
	return e.store.UpsertVenue(ctx, &v)
}

// RecordInteraction appends an interaction reported by the booking system,
// such as a completed booking. The weight always follows the type.
func (e *Engine) RecordInteraction(ctx context.Context, in models.Interaction) (*models.Interaction, error) {
	if err := validation.ValidateStruct(&in); err != nil {
		return nil, invalidInput(err)
	}
	if in.Completed && in.Type != models.InteractionBooked {
		return nil, invalidInputf("only booked interactions can be completed, got %q", in.Type)
	}

	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	in.Weight = in.Type.Weight()
	if in.OccurredAt.IsZero() {
		in.OccurredAt = e.now()
	}
	in.OccurredAt = in.OccurredAt.UTC()

	if err := e.store.AppendInteraction(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// GetUserPreferences returns the user's learned preference weights.
func (e *Engine) GetUserPreferences(ctx context.Context, userID string) ([]models.PreferenceWeight, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalidInputf("user id is required")
	}
	prefs, err := e.store.GetPreferenceWeights(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		prefs = []models.PreferenceWeight{}
	}
	return prefs, nil
}

// CollaborativeSimilarity computes the Jaccard index of the completed-booking
// user sets of two venues.
func (e *Engine) CollaborativeSimilarity(ctx context.Context, a, b string) (float64, error) {
	if a == "" || b == "" {
		return 0, invalidInputf("both venue ids are required")
	}
	bookersA, err := e.store.GetVenueBookers(ctx, a)
	if err != nil {
		return 0, err
	}
	bookersB, err := e.store.GetVenueBookers(ctx, b)
	if err != nil {
		return 0, err
	}
	score, _ := algorithms.CollaborativeSimilarity(bookersA, bookersB)
	return score, nil
}
