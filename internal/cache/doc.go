// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

// Package cache provides a generic, thread-safe LRU cache with TTL expiry.
//
// The recommendation engine uses it to memoize per-seed similarity neighbor
// lists between batch runs. A completed similarity run purges the cache so
// no request observes edges from two different runs.
package cache
