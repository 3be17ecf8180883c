// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/dinewise/internal/models"
)

// VenueStore reads and writes the venue snapshot.
type VenueStore interface {
	UpsertVenue(ctx context.Context, v *models.Venue) error
	GetVenue(ctx context.Context, id string) (*models.Venue, error)
	GetVenuesByIDs(ctx context.Context, ids []string) (map[string]models.Venue, error)
	ListVenues(ctx context.Context, filter models.VenueFilter) ([]models.Venue, error)
}

// InteractionStore is the append-only interaction log.
type InteractionStore interface {
	AppendInteraction(ctx context.Context, in *models.Interaction) error
	GetUserInteractions(ctx context.Context, userID string) ([]models.Interaction, error)

	// GetCompletedBookers maps venue ids to the sorted distinct users with a
	// completed booking there.
	GetCompletedBookers(ctx context.Context) (map[string][]string, error)
	GetVenueBookers(ctx context.Context, venueID string) ([]string, error)

	// CountActivity counts completed bookings and reviews per venue with
	// since < occurred_at <= until.
	CountActivity(ctx context.Context, since, until time.Time) (map[string]models.TrendCounts, error)
}

// SimilarityStore holds the derived similarity graph.
type SimilarityStore interface {
	// ReplaceSimilarityEdges swaps the whole edge table and returns the
	// number of insert batches used.
	ReplaceSimilarityEdges(ctx context.Context, edges []models.SimilarityEdge, batchSize int) (int, error)
	GetSimilarityEdges(ctx context.Context, venueID string, kind models.SimilarityKind, limit int) ([]models.SimilarityEdge, error)
}

// TrendStore holds trend snapshots.
type TrendStore interface {
	UpsertTrendSnapshots(ctx context.Context, snapshots []models.TrendSnapshot) error
	GetLatestTrendSnapshots(ctx context.Context, venueIDs []string, window models.TimeWindow) (map[string]models.TrendSnapshot, error)
}

// PreferenceStore holds per-user preference weights.
type PreferenceStore interface {
	GetPreferenceWeights(ctx context.Context, userID string) ([]models.PreferenceWeight, error)
	UpsertPreferenceWeight(ctx context.Context, p *models.PreferenceWeight) error
}

// ExposureStore holds the exposure log.
type ExposureStore interface {
	InsertExposure(ctx context.Context, e *models.ExposureLogEntry) error
	AnnotateExposure(ctx context.Context, id string, outcome *models.ExposureOutcome) (bool, error)
}

// Store is everything the engine reads and writes. *database.DB implements it.
type Store interface {
	VenueStore
	InteractionStore
	SimilarityStore
	TrendStore
	PreferenceStore
	ExposureStore
}
