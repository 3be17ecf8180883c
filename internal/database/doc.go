// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

/*
Package database is the storage layer of the recommendation core.

It holds the Interaction Store (append-only user to venue events), the venue
snapshot fed by the booking system, and the derived tables written by the
batch and feedback paths:

  - similarity_edges: replaced wholesale on every similarity run
  - trend_snapshots: upserted per (venue, scope, window, date)
  - preference_weights: upserted per (user, type, value)
  - exposure_log: append-only, outcome annotated in place

Two drivers are supported through database/sql. DuckDB is the default and
suits the analytical batch path; SQLite (modernc.org/sqlite, pure Go) is used
for embedded deployments and by the test suite. All SQL is written to run
unchanged on both: ? placeholders, timestamps as unix microseconds, tag sets
as JSON text.

Similarity Replacement:

ReplaceSimilarityEdges writes the new edge set into similarity_edges_staging
in fixed-size batches, then swaps it into similarity_edges inside one short
transaction. A run that fails or is killed before the swap leaves the live
table untouched, and readers never observe a partially cleared table.
*/
package database
