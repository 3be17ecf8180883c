// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/dinewise/internal/logging"
	"github.com/tomtom215/dinewise/internal/models"
)

// RunSimilarity handles POST /api/v1/admin/similarity/run. The run is
// synchronous and returns its stats; 409 when a run is already active.
func (h *Handler) RunSimilarity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := h.adminContext(r.Context())
	defer cancel()

	logging.Ctx(r.Context()).Info().Msg("Similarity run triggered over HTTP")
	stats, err := h.engine.RunSimilarityComputation(ctx)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, stats, start)
}

// RunTrends handles POST /api/v1/admin/trends/run?location&window.
// window defaults to weekly.
func (h *Handler) RunTrends(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	p := newQueryParser(r.URL.Query())
	location := p.str("location")
	window := models.TimeWindow(p.str("window"))
	if window == "" {
		window = models.WindowWeekly
	}

	ctx, cancel := h.adminContext(r.Context())
	defer cancel()

	logging.Ctx(r.Context()).Info().
		Str("location", location).
		Str("window", string(window)).
		Msg("Trend run triggered over HTTP")
	stats, err := h.engine.RunTrendComputation(ctx, location, window)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, stats, start)
}

// Status handles GET /api/v1/admin/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, h.engine.Status(), time.Now())
}
