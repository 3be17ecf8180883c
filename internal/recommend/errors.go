// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package recommend

import (
	"errors"
	"fmt"

	"github.com/tomtom215/dinewise/internal/models"
)

var (
	// ErrInvalidInput marks requests rejected before any computation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned by store lookups for unknown ids.
	ErrNotFound = models.ErrNotFound

	// ErrDependency marks a storage failure that aborted a batch run.
	ErrDependency = errors.New("dependency failure")

	// ErrRunInProgress is returned when a batch job is already running.
	ErrRunInProgress = errors.New("run already in progress")
)

func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func dependency(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDependency, step, err)
}
