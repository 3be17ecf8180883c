// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/dinewise/internal/logging"
)

// readyTimeout bounds the store ping behind /readyz.
const readyTimeout = 2 * time.Second

// Healthz is the liveness probe: 200 while the process is up.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]any{
		"alive":   true,
		"version": h.config.Version,
		"uptime":  time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// Readyz is the readiness probe: 503 until the store answers a ping.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed")
			respondError(w, http.StatusServiceUnavailable, codeDatabase, "Store is not reachable",
				map[string]any{"ready": false})
			return
		}
	}
	respondSuccess(w, r, http.StatusOK, map[string]any{"ready": true}, start)
}
