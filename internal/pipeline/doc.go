// Package pipeline orchestrates one ingestion run: fan out to every source
// adapter concurrently, normalize and validate the raw events, deduplicate
// the merged set, and persist the surviving events as date partitions.
//
// A run always reaches a terminal state. Adapter failures, rejected events,
// and parse problems are recorded in the run summary and never abort the run;
// only a store failure marks the run unsuccessful, and only a misconfigured
// service (no sources at all) fails before producing a summary.
package pipeline
