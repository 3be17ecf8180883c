// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package algorithms

// IncreaseConfidence moves confidence toward 1 with diminishing returns:
// new = old + (1 - old) * step.
func IncreaseConfidence(old, step float64) float64 {
	old, step = clamp01(old), clamp01(step)
	return clamp01(old + (1-old)*step)
}

// DecreaseConfidence moves confidence toward 0 with the same shape:
// new = old - old * step. It never goes negative.
func DecreaseConfidence(old, step float64) float64 {
	old, step = clamp01(old), clamp01(step)
	return clamp01(old - old*step)
}
