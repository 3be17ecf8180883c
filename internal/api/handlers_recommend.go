// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/dinewise/internal/models"
	"github.com/tomtom215/dinewise/internal/recommend"
)

// Recommendations handles GET /api/v1/recommendations.
//
// Query: user_id, latitude, longitude, radius_km, location, cuisine,
// price_range, rating, time_of_day, limit. The response metadata carries
// the algorithm and the exposure id to quote back in feedback.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	p := newQueryParser(r.URL.Query())
	req := recommend.Request{
		UserID:     p.str("user_id"),
		Latitude:   p.float("latitude"),
		Longitude:  p.float("longitude"),
		RadiusKm:   p.floatOr("radius_km", 0),
		Location:   p.str("location"),
		Cuisine:    p.str("cuisine"),
		PriceRange: p.int("price_range"),
		Rating:     p.float("rating"),
		TimeOfDay:  p.str("time_of_day"),
		Limit:      p.intOr("limit", 0),
	}
	if err := p.err(); err != nil {
		respondEngineError(w, r, err)
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	resp, err := h.engine.GetPersonalizedRecommendations(ctx, req)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	meta := metadata(r, start)
	meta.Algorithm = resp.Algorithm
	meta.ExposureID = resp.ExposureID
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     resp.Recommendations,
		Metadata: meta,
	})
}

// Trending handles GET /api/v1/trending?location&window&limit.
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	p := newQueryParser(r.URL.Query())
	location := p.str("location")
	window := models.TimeWindow(p.str("window"))
	limit := p.intOr("limit", 0)
	if err := p.err(); err != nil {
		respondEngineError(w, r, err)
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	venues, err := h.engine.GetTrending(ctx, location, window, limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, venues, start)
}

// Similar handles GET /api/v1/venues/{id}/similar?limit.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	p := newQueryParser(r.URL.Query())
	limit := p.intOr("limit", 0)
	if err := p.err(); err != nil {
		respondEngineError(w, r, err)
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	similar, err := h.engine.GetSimilar(ctx, chi.URLParam(r, "id"), limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, similar, start)
}

// Feedback handles POST /api/v1/feedback. Bookkeeping failures after the
// interaction is stored show up as warnings in a 200 response.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var fb models.Feedback
	if !decodeJSON(w, r, &fb) {
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	result, err := h.engine.RecordFeedback(ctx, fb)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, result, start)
}
