// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

// Package logging provides the process-wide zerolog logger.
//
// Init configures level, format and caller reporting once at startup; the
// package-level helpers (Info, Warn, Error, Debug) write through the shared
// logger. Components derive child loggers with With():
//
//	logger := logging.With().Str("component", "similarity").Logger()
//	logger.Info().Int("edges", n).Msg("Similarity run complete")
//
// Request-scoped logging carries the request id stored by
// ContextWithRequestID:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("Exposure log write failed")
//
// NewSlogLogger bridges the same logger into log/slog for libraries that
// require it, such as the suture event hook.
package logging
