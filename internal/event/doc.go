// Package event defines the data model shared across the ingestion pipeline.
//
// RawEvent is the unvalidated candidate a source adapter reports. Event is the
// canonical record that survives validation and normalization: cleaned text,
// an ISO calendar date, 24-hour times, a fixed category, and a deterministic
// ID derived from its source, date, and title. Raw events are never persisted;
// only Events reach the catalog.
package event
