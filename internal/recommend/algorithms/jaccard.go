// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package algorithms

// JaccardSimilarity returns |A∩B| / |A∪B| over the distinct elements of a and b.
// Two empty inputs yield 0.
func JaccardSimilarity(a, b []string) float64 {
	score, _ := jaccard(a, b)
	return score
}

// jaccard also reports the intersection size.
func jaccard(a, b []string) (float64, int) {
	if len(a) == 0 && len(b) == 0 {
		return 0, 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}

	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[s] = struct{}{}
	}

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0, 0
	}
	return float64(intersection) / float64(union), intersection
}

// intersect returns the sorted elements present in both sorted, de-duplicated slices.
func intersect(a, b []string) []string {
	var out []string
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
