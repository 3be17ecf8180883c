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
	"github.com/tomtom215/dinewise/internal/validation"
)

// UpsertVenue handles PUT /api/v1/venues/{id}. The path id wins; a
// conflicting id in the body is rejected.
func (h *Handler) UpsertVenue(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var v models.Venue
	if !decodeJSON(w, r, &v) {
		return
	}
	id := chi.URLParam(r, "id")
	if v.ID != "" && v.ID != id {
		respondError(w, http.StatusBadRequest, validation.ErrorCode, "Body id does not match path id",
			map[string]any{"field": "id", "tag": "eqfield"})
		return
	}
	v.ID = id

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	if err := h.engine.UpsertVenue(ctx, v); err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, map[string]string{"id": id}, start)
}

// RecordInteraction handles POST /api/v1/interactions.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var in models.Interaction
	if !decodeJSON(w, r, &in) {
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	stored, err := h.engine.RecordInteraction(ctx, in)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusCreated, stored, start)
}

// UserPreferences handles GET /api/v1/users/{id}/preferences.
func (h *Handler) UserPreferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	prefs, err := h.engine.GetUserPreferences(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, prefs, start)
}
