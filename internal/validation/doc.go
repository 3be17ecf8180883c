// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

// Package validation wraps go-playground/validator with a shared instance,
// the custom tags used by request and model structs, and translation of
// field errors into the API error envelope.
//
// Custom tags:
//   - time_window: daily, weekly or monthly
//   - meal_period: breakfast, lunch, dinner or late_night
//   - trimmed: the string has no surrounding whitespace
package validation
