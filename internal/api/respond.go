// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dinewise/internal/logging"
	"github.com/tomtom215/dinewise/internal/models"
	"github.com/tomtom215/dinewise/internal/recommend"
	"github.com/tomtom215/dinewise/internal/validation"
)

// Error codes beyond validation.ErrorCode.
const (
	codeNotFound = "NOT_FOUND"
	codeConflict = "CONFLICT"
	codeDatabase = "DATABASE_ERROR"
	codeTimeout  = "TIMEOUT"
	codeInternal = "INTERNAL_ERROR"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess writes data with timing and request id metadata.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data any, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: metadata(r, start),
	})
}

func metadata(r *http.Request, start time.Time) models.Metadata {
	return models.Metadata{
		Timestamp:   time.Now().UTC(),
		QueryTimeMS: time.Since(start).Milliseconds(),
		RequestID:   logging.RequestIDFromContext(r.Context()),
	}
}

func respondError(w http.ResponseWriter, status int, code, message string, details map[string]any) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondEngineError maps engine sentinel errors to HTTP status codes.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *validation.RequestValidationError
	switch {
	case errors.As(err, &validationErr):
		apiErr := validationErr.ToAPIError()
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
	case errors.Is(err, recommend.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, validation.ErrorCode, err.Error(), nil)
	case errors.Is(err, recommend.ErrNotFound):
		respondError(w, http.StatusNotFound, codeNotFound, "Resource not found", nil)
	case errors.Is(err, recommend.ErrRunInProgress):
		respondError(w, http.StatusConflict, codeConflict, "A run is already in progress", nil)
	case errors.Is(err, recommend.ErrDependency):
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Storage dependency failed")
		respondError(w, http.StatusServiceUnavailable, codeDatabase, "Storage is unavailable", nil)
	case errors.Is(err, context.DeadlineExceeded):
		logging.Ctx(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("Request timed out")
		respondError(w, http.StatusGatewayTimeout, codeTimeout, "Request timed out", nil)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		respondError(w, http.StatusInternalServerError, codeInternal, "Internal server error", nil)
	}
}

// decodeJSON reads a bounded JSON body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, validation.ErrorCode, "Invalid JSON body: "+err.Error(), nil)
		return false
	}
	return true
}
