// Package dedup collapses near-duplicate events reported by different
// sources for the same calendar day.
//
// Deduplication is order-sensitive by design: events are compared against the
// survivors accepted so far, and the first occurrence always wins. Whichever
// source's event is processed first for a given day and title is the one that
// reaches the catalog; later near-matches are dropped along with whatever
// price or description they disagreed on.
package dedup
