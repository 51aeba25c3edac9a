// Package metrics defines the Prometheus instrumentation for the ingestion
// pipeline. All collectors are registered on the default registry and exposed
// by the serve command's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsScraped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "woodlands_events_scraped_total",
		Help: "Total raw candidate events reported, labelled by source.",
	}, []string{"source"})

	EventsAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "woodlands_events_accepted_total",
		Help: "Total events that passed validation, labelled by source.",
	}, []string{"source"})

	ScrapeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "woodlands_scrape_errors_total",
		Help: "Total scrape and validation errors, labelled by source.",
	}, []string{"source"})

	UniqueEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "woodlands_events_unique",
		Help: "Unique events in the catalog after the last run's dedup pass.",
	})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "woodlands_run_duration_seconds",
		Help:    "End-to-end ingestion run duration in seconds.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	Runs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "woodlands_runs_total",
		Help: "Total ingestion runs, labelled by terminal state.",
	}, []string{"state"})
)
