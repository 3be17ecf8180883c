// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package models

import "errors"

// ErrNotFound is returned by store lookups when the requested record does not exist.
var ErrNotFound = errors.New("not found")
