// Package api exposes the HTTP surface: event queries, manual scrape
// triggering, run diagnostics, health, and Prometheus metrics.
package api
