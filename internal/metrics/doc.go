// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

// Package metrics defines the Prometheus metrics of the recommendation core.
//
// Metrics are registered on the default registry through promauto and served
// by promhttp at /metrics. Callers use the Record* helpers rather than the
// vectors directly so label values stay consistent.
package metrics
