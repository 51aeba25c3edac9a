// Package normalize validates raw candidate events and converts them into
// canonical Event records.
//
// Validation is a gate: candidates with a missing or past date, a too-short
// title, or no venue name are rejected and reported as errors, never as a
// failure of the whole run. Normalization is a set of pure transforms over
// the raw fields (text cleaning, date and time canonicalization, category
// inference, price normalization), so normalizing the same raw event twice
// always yields an identical result.
package normalize
