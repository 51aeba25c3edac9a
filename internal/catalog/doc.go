// Package catalog persists and serves the deduplicated event catalog.
//
// Writer partitions each run's surviving events by calendar date and writes
// every partition, run metadata, and per-source diagnostics into the
// key-value store with bounded TTLs, so stale partitions clean themselves up.
// Reader is the query side: events over a date range sorted for display, a
// single event by ID, run metadata, and per-source health.
//
// Keys: events:<yyyy-mm-dd> holds one day's events, event:<id> one record,
// events:meta the latest run metadata, scrape:last:<source> and
// scrape:errors:<source> the per-source diagnostics.
package catalog
