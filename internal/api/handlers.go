// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package api

import (
	"context"
	"time"

	"github.com/tomtom215/dinewise/internal/models"
	"github.com/tomtom215/dinewise/internal/recommend"
)

// Engine is the subset of *recommend.Engine the handlers call.
type Engine interface {
	GetPersonalizedRecommendations(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	GetTrending(ctx context.Context, scope string, window models.TimeWindow, limit int) ([]models.TrendingVenue, error)
	GetSimilar(ctx context.Context, venueID string, limit int) ([]models.SimilarVenue, error)
	RecordFeedback(ctx context.Context, fb models.Feedback) (*recommend.FeedbackResult, error)

	UpsertVenue(ctx context.Context, v models.Venue) error
	RecordInteraction(ctx context.Context, in models.Interaction) (*models.Interaction, error)
	GetUserPreferences(ctx context.Context, userID string) ([]models.PreferenceWeight, error)

	RunSimilarityComputation(ctx context.Context) (*recommend.SimilarityRunStats, error)
	RunTrendComputation(ctx context.Context, scope string, window models.TimeWindow) (*recommend.TrendRunStats, error)
	Status() recommend.Status
}

// Pinger reports store reachability for /readyz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandlerConfig tunes request handling.
type HandlerConfig struct {
	// RequestTimeout bounds online endpoints. Default: 10s
	RequestTimeout time.Duration

	// AdminRunTimeout bounds batch runs triggered over HTTP. The run is
	// detached from the client connection. Default: 30m
	AdminRunTimeout time.Duration

	Version string
}

// Handler serves the recommendation API.
type Handler struct {
	engine    Engine
	store     Pinger
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates a handler. store may be nil, in which case /readyz
// only reports the process as up.
func NewHandler(engine Engine, store Pinger, cfg HandlerConfig) *Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.AdminRunTimeout <= 0 {
		cfg.AdminRunTimeout = 30 * time.Minute
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &Handler{
		engine:    engine,
		store:     store,
		config:    cfg,
		startTime: time.Now(),
	}
}

func (h *Handler) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.config.RequestTimeout)
}

func (h *Handler) adminContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), h.config.AdminRunTimeout)
}
