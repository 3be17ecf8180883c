// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package recommend

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/dinewise/internal/metrics"
	"github.com/tomtom215/dinewise/internal/models"
	"github.com/tomtom215/dinewise/internal/recommend/algorithms"
	"github.com/tomtom215/dinewise/internal/validation"
)

// FeedbackResult reports what RecordFeedback changed. Warnings list the
// bookkeeping steps that failed without failing the call.
type FeedbackResult struct {
	InteractionID      string                    `json:"interaction_id"`
	PreferencesUpdated []models.PreferenceWeight `json:"preferences_updated"`
	ExposureAnnotated  bool                      `json:"exposure_annotated"`
	Warnings           []string                  `json:"warnings,omitempty"`
}

func (r *FeedbackResult) warn(step string, msg string) {
	metrics.RecordFeedbackSideEffectFailure(step)
	r.Warnings = append(r.Warnings, msg)
}

// RecordFeedback appends an interaction for the feedback, then updates the
// user's preference confidence for the venue's attributes and annotates the
// referenced exposure. Only the interaction append can fail the call.
func (e *Engine) RecordFeedback(ctx context.Context, fb models.Feedback) (*FeedbackResult, error) {
	start := time.Now()
	res, err := e.recordFeedback(ctx, fb)
	metrics.RecordRecommendRequest("feedback", "", time.Since(start), err)
	return res, err
}

func (e *Engine) recordFeedback(ctx context.Context, fb models.Feedback) (*FeedbackResult, error) {
	if err := validation.ValidateStruct(&fb); err != nil {
		return nil, invalidInput(err)
	}

	now := e.now().UTC()
	dir := feedbackDirection(&fb)
	in := &models.Interaction{
		ID:         uuid.NewString(),
		UserID:     fb.UserID,
		VenueID:    fb.VenueID,
		Type:       fb.Action,
		Weight:     feedbackWeight(fb.Action, dir),
		Rating:     fb.Rating,
		OccurredAt: now,
	}
	if err := e.store.AppendInteraction(ctx, in); err != nil {
		return nil, err
	}
	metrics.RecordFeedback(string(fb.Action), string(fb.FeedbackType))

	res := &FeedbackResult{InteractionID: in.ID, PreferencesUpdated: []models.PreferenceWeight{}}
	logger := e.requestLogger(ctx).With().
		Str("user_id", fb.UserID).
		Str("venue_id", fb.VenueID).
		Str("action", string(fb.Action)).
		Logger()

	if dir != 0 {
		if err := e.updatePreferences(ctx, &fb, dir, now, res); err != nil {
			logger.Warn().Err(err).Msg("preference update failed")
		}
	}

	if fb.ExposureID != "" {
		ok, err := e.store.AnnotateExposure(ctx, fb.ExposureID, &models.ExposureOutcome{
			VenueID: fb.VenueID,
			Action:  fb.Action,
			At:      now,
		})
		switch {
		case err != nil:
			logger.Warn().Err(err).Str("exposure_id", fb.ExposureID).Msg("exposure annotation failed")
			res.warn("exposure", "exposure annotation failed")
		case !ok:
			logger.Debug().Str("exposure_id", fb.ExposureID).Msg("feedback references unknown exposure")
		default:
			res.ExposureAnnotated = true
		}
	}

	logger.Info().
		Str("feedback_type", string(fb.FeedbackType)).
		Int("preferences_updated", len(res.PreferencesUpdated)).
		Msg("feedback recorded")
	return res, nil
}

// feedbackDirection is +1 to strengthen preferences, -1 to weaken them and
// 0 to leave them alone. Dismissals always weaken.
func feedbackDirection(fb *models.Feedback) int {
	if fb.Action == models.InteractionDismissed {
		return -1
	}
	switch fb.FeedbackType {
	case models.FeedbackPositive:
		return 1
	case models.FeedbackNegative:
		return -1
	default:
		return 0
	}
}

// feedbackWeight is the interaction weight of a feedback action. Negative
// feedback never carries a positive weight, so a poorly reviewed venue cannot
// seed personalization.
func feedbackWeight(action models.InteractionType, dir int) float64 {
	w := action.Weight()
	if dir < 0 {
		return -math.Abs(w)
	}
	return w
}

// updatePreferences moves the confidence of every attribute of the venue.
// Increases start from 0 for unseen attributes; decreases skip them.
func (e *Engine) updatePreferences(ctx context.Context, fb *models.Feedback, dir int, now time.Time, res *FeedbackResult) error {
	step := e.config.Feedback.Step(fb.Action)
	if step == 0 {
		return nil
	}

	venue, err := e.store.GetVenue(ctx, fb.VenueID)
	if errors.Is(err, models.ErrNotFound) {
		res.warn("venue", "venue not found; preferences unchanged")
		return nil
	}
	if err != nil {
		res.warn("venue", "venue lookup failed; preferences unchanged")
		return err
	}

	existing, err := e.store.GetPreferenceWeights(ctx, fb.UserID)
	if err != nil {
		res.warn("preferences", "preference lookup failed; preferences unchanged")
		return err
	}
	current := make(map[models.PreferenceKey]float64, len(existing))
	for i := range existing {
		current[existing[i].Key()] = existing[i].Confidence
	}

	var firstErr error
	for _, key := range venue.PreferenceKeys() {
		old, ok := current[key]
		var updated float64
		if dir > 0 {
			updated = algorithms.IncreaseConfidence(old, step)
		} else {
			if !ok {
				continue
			}
			updated = algorithms.DecreaseConfidence(old, step)
		}

		pw := models.PreferenceWeight{
			UserID:     fb.UserID,
			Type:       key.Type,
			Value:      key.Value,
			Confidence: updated,
			Source:     models.PreferenceSourceFeedback,
			UpdatedAt:  now,
		}
		if err := e.store.UpsertPreferenceWeight(ctx, &pw); err != nil {
			res.warn("preferences", "failed to update "+string(key.Type)+" preference")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		res.PreferencesUpdated = append(res.PreferencesUpdated, pw)
	}
	return firstErr
}
