package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/woodlandsapp/woodlands-events/internal/event"
	"github.com/woodlandsapp/woodlands-events/internal/store"
)

const (
	// DefaultPartitionTTL bounds how long a date partition survives without
	// being refreshed by a run.
	DefaultPartitionTTL = 30 * 24 * time.Hour

	// DefaultDiagnosticsTTL bounds per-source error logs.
	DefaultDiagnosticsTTL = 7 * 24 * time.Hour

	// maxSourceErrors caps the rolling per-source error log.
	maxSourceErrors = 10
)

// Meta is the run metadata record written under MetaKey after every run.
type Meta struct {
	RunID       string         `json:"runId"`
	TotalEvents int            `json:"totalEvents"`
	Sources     []event.Source `json:"sources"`
	Errors      []string       `json:"errors"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// SourceError is one entry in a source's rolling error log.
type SourceError struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Writer persists run output into the key-value store.
//
// Precondition: at most one run writes at a time. Concurrent runs would race
// on the same date-partition keys with last-write-wins results; callers must
// serialize runs (the pipeline does).
type Writer struct {
	store          store.Store
	partitionTTL   time.Duration
	diagnosticsTTL time.Duration
}

// NewWriter creates a Writer with the default TTLs.
func NewWriter(s store.Store) *Writer {
	return &Writer{
		store:          s,
		partitionTTL:   DefaultPartitionTTL,
		diagnosticsTTL: DefaultDiagnosticsTTL,
	}
}

// WithPartitionTTL overrides the partition expiry.
func (w *Writer) WithPartitionTTL(ttl time.Duration) *Writer {
	w.partitionTTL = ttl
	return w
}

// Persist groups events by calendar date and overwrites each date's partition,
// plus one record per event for by-ID lookup. Partition writes are independent
// and issued concurrently; the first error aborts the caller's run summary as
// a store failure.
func (w *Writer) Persist(ctx context.Context, events []event.Event) error {
	byDate := make(map[string][]event.Event)
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(byDate)+len(events))

	for date, dateEvents := range byDate {
		wg.Add(1)
		go func(date string, dateEvents []event.Event) {
			defer wg.Done()
			encoded, err := json.Marshal(dateEvents)
			if err != nil {
				errCh <- fmt.Errorf("encoding partition %s: %w", date, err)
				return
			}
			if err := w.store.Set(ctx, PartitionKey(date), encoded, w.partitionTTL); err != nil {
				errCh <- fmt.Errorf("writing partition %s: %w", date, err)
			}
		}(date, dateEvents)
	}

	for _, e := range events {
		wg.Add(1)
		go func(e event.Event) {
			defer wg.Done()
			encoded, err := json.Marshal(e)
			if err != nil {
				errCh <- fmt.Errorf("encoding event %s: %w", e.ID, err)
				return
			}
			if err := w.store.Set(ctx, EventKey(e.ID), encoded, w.partitionTTL); err != nil {
				errCh <- fmt.Errorf("writing event %s: %w", e.ID, err)
			}
		}(e)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		return err
	}
	return nil
}

// WriteMeta fully overwrites the run metadata record.
func (w *Writer) WriteMeta(ctx context.Context, meta Meta) error {
	encoded, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if err := w.store.Set(ctx, MetaKey, encoded, w.partitionTTL); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

// RecordSuccess stamps a source's last successful scrape time.
func (w *Writer) RecordSuccess(ctx context.Context, source event.Source, at time.Time) error {
	encoded, err := json.Marshal(at)
	if err != nil {
		return fmt.Errorf("encoding timestamp for %s: %w", source, err)
	}
	if err := w.store.Set(ctx, LastRunKey(source), encoded, w.partitionTTL); err != nil {
		return fmt.Errorf("recording success for %s: %w", source, err)
	}
	return nil
}

// RecordError prepends an entry to a source's rolling error log, keeping the
// most recent entries only.
func (w *Writer) RecordError(ctx context.Context, source event.Source, message string) error {
	var log []SourceError
	existing, err := w.store.Get(ctx, ErrorsKey(source))
	if err == nil {
		// Best effort: an undecodable log is replaced rather than fatal.
		_ = json.Unmarshal(existing, &log)
	} else if err != store.ErrNotFound {
		return fmt.Errorf("reading error log for %s: %w", source, err)
	}

	log = append([]SourceError{{Timestamp: time.Now().UTC(), Message: message}}, log...)
	if len(log) > maxSourceErrors {
		log = log[:maxSourceErrors]
	}

	encoded, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encoding error log for %s: %w", source, err)
	}
	if err := w.store.Set(ctx, ErrorsKey(source), encoded, w.diagnosticsTTL); err != nil {
		return fmt.Errorf("writing error log for %s: %w", source, err)
	}
	return nil
}
