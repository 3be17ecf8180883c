// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

// Package recommend implements the restaurant recommendation engine.
//
// # Architecture
//
// Scoring is split into two layers:
//
//   - algorithms: pure functions over venue snapshots (content, collaborative
//     and hybrid similarity, trend scores, preference confidence updates)
//   - Engine: the orchestration layer that reads snapshots from a Store,
//     calls the algorithms and persists derived tables
//
// The engine has two execution modes. The offline batch path
// (RunSimilarityComputation, RunTrendComputation) is single-writer and
// guarded by a run lock per job. The online path
// (GetPersonalizedRecommendations, GetTrending, GetSimilar, RecordFeedback)
// is request-scoped and safe for concurrent use.
//
// # Usage
//
//	engine, err := recommend.New(db, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	resp, err := engine.GetPersonalizedRecommendations(ctx, recommend.Request{
//	    UserID: "u-42",
//	    Limit:  10,
//	})
//
// # Fallbacks
//
// Anonymous users, users without history and users whose neighbor expansion
// yields nothing receive trending venues tagged with algorithm "trending".
// Only an unreachable venue catalog is returned as an error.
package recommend
