// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

// Package services provides suture.Service wrappers for the scheduled
// recommendation jobs and the HTTP server.
package services
