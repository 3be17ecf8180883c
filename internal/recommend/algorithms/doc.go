// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

// Package algorithms holds the storage-agnostic scoring functions of the
// recommendation core. Everything here is a pure function over plain data:
// no I/O, no clocks, no shared state.
//
// # Similarity
//
// ContentSimilarity scores two venue snapshots as a fixed weighted sum:
//
//	content(a, b) = 0.40 * jaccard(cuisines) +
//	                0.25 * [price tiers equal] +
//	                0.15 * max(0, 1 - |rating_a - rating_b| / 5) +
//	                0.10 * max(0, 1 - distance_km / 20) +
//	                0.10 * jaccard(features)
//
// CollaborativeSimilarity is the Jaccard index of the user sets with
// completed bookings at each venue. PairEdges blends both into a hybrid score
// (0.6 collaborative, 0.4 content) and emits the qualifying edges of every
// kind in both directions.
//
// # Trending
//
//	trend = bookings * 10 + reviews * 5 + rating * 15
//
// # Preferences
//
// Confidence moves toward 1 on positive feedback and toward 0 on negative
// feedback with diminishing returns, and never leaves [0,1].
package algorithms
