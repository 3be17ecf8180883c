// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package algorithms

import "fmt"

// CollaborativeSimilarity returns the Jaccard index of two booker sets and the
// number of shared bookers. A venue with no bookers scores 0 against every
// other venue.
func CollaborativeSimilarity(bookersA, bookersB []string) (float64, int) {
	return jaccard(bookersA, bookersB)
}

// SharedBookersReason describes collaborative evidence.
func SharedBookersReason(shared int) string {
	if shared == 1 {
		return "Booked by 1 of the same guests"
	}
	return fmt.Sprintf("Booked by %d of the same guests", shared)
}
