// Package cli implements the command-line interface for woodlands-events.
//
// The cli package provides the Cobra-based CLI with subcommands for running a
// single ingestion pass (ingest), serving the HTTP API with scheduled scrapes
// (serve), and querying the stored catalog (events). It coordinates the
// scraper, pipeline, catalog, and store packages.
package cli
