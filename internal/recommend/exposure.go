// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package recommend

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/dinewise/internal/logging"
	"github.com/tomtom215/dinewise/internal/metrics"
	"github.com/tomtom215/dinewise/internal/models"
)

// newExposureBreaker opens after five consecutive exposure write failures
// and probes again after thirty seconds.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func newExposureBreaker(logger zerolog.Logger) *gobreaker.CircuitBreaker[struct{}] {
	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "exposure-log",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("exposure log circuit breaker state change")
		},
	})
}

// logExposure records which venues a response showed. Failures are logged
// and counted but never returned; the returned id is empty when nothing was
// written.
func (e *Engine) logExposure(ctx context.Context, userID, algorithm string, recs []Recommendation) string {
	if len(recs) == 0 {
		return ""
	}

	entry := &models.ExposureLogEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		VenueIDs:  make([]string, len(recs)),
		Scores:    make([]float64, len(recs)),
		Algorithm: algorithm,
		RequestID: logging.RequestIDFromContext(ctx),
		CreatedAt: e.now().UTC(),
	}
	for i := range recs {
		entry.VenueIDs[i] = recs[i].Venue.ID
		entry.Scores[i] = recs[i].Score
	}

	// The write outlives a cancelled request but not the exposure timeout.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.config.ExposureTimeout)
	defer cancel()

	_, err := e.exposureBreaker.Execute(func() (struct{}, error) {
		return struct{}{}, e.store.InsertExposure(writeCtx, entry)
	})
	metrics.RecordExposureWrite(err)
	if err != nil {
		logger := e.requestLogger(ctx)
		logger.Warn().Err(err).
			Str("user_id", userID).
			Str("algorithm", algorithm).
			Int("venues", len(recs)).
			Msg("failed to write exposure log entry")
		return ""
	}
	return entry.ID
}
