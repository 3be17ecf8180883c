// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

/*
Package models defines the data structures shared by the recommendation core.

Entity snapshots consumed from the surrounding booking system:

  - Venue: a restaurant with cuisine tags, price tier, coordinates, feature tags and rating
  - Interaction: append-only user to venue event (viewed, clicked, booked, reviewed, dismissed)

Derived tables written by the core:

  - SimilarityEdge: venue to venue similarity, stored in both directions per kind
  - TrendSnapshot: time-windowed popularity per (venue, scope, window, date)
  - PreferenceWeight: per-user attribute confidence in [0,1]
  - ExposureLogEntry: which venues were shown to whom by which algorithm

API Models:

  - APIResponse, APIError, Metadata: the JSON envelope used by every endpoint

Usage Example:

	v := models.Venue{
	    ID:        "v-123",
	    Cuisines:  []string{"italian"},
	    PriceTier: 2,
	    Rating:    4.5,
	    Active:    true,
	    Verified:  true,
	}
	if v.HasLocation() {
	    // geo terms apply
	}
*/
package models
