// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

/*
Package middleware provides the chi-compatible HTTP middleware shared by the
API router.

  - RequestID: X-Request-ID propagation into the logging context
  - PrometheusMetrics: per-route request count and latency
  - Compression: gzip for clients that accept it

Typical order, outermost first:

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

PrometheusMetrics labels requests with the chi route pattern
("/api/v1/venues/{id}/similar") rather than the raw path so the label set
stays bounded.
*/
package middleware
