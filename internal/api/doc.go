// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

/*
Package api exposes the recommendation engine over HTTP using the chi router.

Every endpoint answers with the models.APIResponse envelope:

	GET  /api/v1/recommendations        personalized or trending venues
	GET  /api/v1/trending               trending venues for a location and window
	GET  /api/v1/venues/{id}/similar    precomputed hybrid neighbors
	PUT  /api/v1/venues/{id}            venue snapshot ingest
	POST /api/v1/interactions           interaction snapshot ingest
	POST /api/v1/feedback               post-exposure feedback
	GET  /api/v1/users/{id}/preferences learned preference weights
	POST /api/v1/admin/similarity/run   trigger the similarity aggregator
	POST /api/v1/admin/trends/run       trigger a trend snapshot run
	GET  /api/v1/admin/status           batch job and cache status

/healthz, /readyz and /metrics sit outside /api/v1 and are not rate limited.

Engine errors map to status codes in respondEngineError: invalid input is
400 with field details, unknown ids 404, a held run lock 409 and a storage
failure during a batch 503.
*/
package api
