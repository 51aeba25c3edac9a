package dedup

import (
	"strings"

	"github.com/woodlandsapp/woodlands-events/internal/event"
)

// Similarity thresholds: titles alone must be near-identical, or moderately
// similar titles must be backed by a near-identical venue.
const (
	titleOnlyThreshold  = 0.85
	titleVenueThreshold = 0.60
	venueThreshold      = 0.80
)

// Deduplicate returns the input with near-duplicates removed. The result
// preserves input order; for each duplicate cluster the first-seen event
// survives.
func Deduplicate(events []event.Event) []event.Event {
	unique := make([]event.Event, 0, len(events))

	for _, candidate := range events {
		duplicate := false
		for _, existing := range unique {
			if Similar(candidate, existing) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, candidate)
		}
	}

	return unique
}

// Similar reports whether two events describe the same real-world listing.
// Events on different dates are never similar.
func Similar(a, b event.Event) bool {
	if a.Date != b.Date {
		return false
	}

	titleSimilarity := StringSimilarity(
		strings.ToLower(a.Title),
		strings.ToLower(b.Title),
	)
	if titleSimilarity > titleOnlyThreshold {
		return true
	}

	venueSimilarity := StringSimilarity(
		strings.ToLower(a.Venue.Name),
		strings.ToLower(b.Venue.Name),
	)
	return titleSimilarity > titleVenueThreshold && venueSimilarity > venueThreshold
}

// StringSimilarity computes a normalized edit-distance similarity in [0, 1]:
// 1 minus the Levenshtein distance divided by the longer string's length.
// Two empty strings are fully similar.
func StringSimilarity(a, b string) float64 {
	longer, shorter := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		longer, shorter = shorter, longer
	}

	if len(longer) == 0 {
		return 1.0
	}

	distance := levenshtein(longer, shorter)
	return float64(len(longer)-distance) / float64(len(longer))
}

// levenshtein computes the edit distance between two rune slices with unit
// insertion, deletion, and substitution costs.
func levenshtein(ra, rb []rune) int {
	matrix := make([][]int, len(rb)+1)
	for j := range matrix {
		matrix[j] = make([]int, len(ra)+1)
		matrix[j][0] = j
	}
	for i := 0; i <= len(ra); i++ {
		matrix[0][i] = i
	}

	for j := 1; j <= len(rb); j++ {
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			matrix[j][i] = min(
				matrix[j][i-1]+1,      // deletion
				matrix[j-1][i]+1,      // insertion
				matrix[j-1][i-1]+cost, // substitution
			)
		}
	}

	return matrix[len(rb)][len(ra)]
}
