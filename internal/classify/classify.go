// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides whether an author's name/affiliation text points
// to a commercial rather than an academic affiliation.
package classify

import "strings"

// Markers are matched as lowercase substrings.
var (
	commercialMarkers = []string{"inc.", "ltd.", "biotech", "pharma", "corporation"}
	academicMarkers   = []string{"university", "institute", "academy", "research lab"}
)

// IsNonAcademic applies the keyword heuristic, first match wins:
// a commercial marker means non-academic, otherwise an academic marker means
// academic, otherwise the author is treated as non-academic.
func IsNonAcademic(text string) bool {
	lower := strings.ToLower(text)
	if containsAny(lower, commercialMarkers) {
		return true
	}
	if containsAny(lower, academicMarkers) {
		return false
	}
	return true
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
