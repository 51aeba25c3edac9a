package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/woodlandsapp/woodlands-events/internal/event"
	"github.com/woodlandsapp/woodlands-events/internal/store"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("catalog: event not found")

// Reader serves catalog queries for the presentation layer.
type Reader struct {
	store store.Store
}

// NewReader creates a Reader over the given store.
func NewReader(s store.Store) *Reader {
	return &Reader{store: s}
}

// EventsByDateRange returns all events with dates in [start, end], inclusive,
// sorted ascending by date then start time. Days with no partition simply
// contribute nothing.
func (r *Reader) EventsByDateRange(ctx context.Context, start, end time.Time) ([]event.Event, error) {
	events := make([]event.Event, 0)

	for day := startOfDay(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		key := PartitionKey(day.Format("2006-01-02"))
		data, err := r.store.Get(ctx, key)
		if err == store.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading partition %s: %w", key, err)
		}

		var dayEvents []event.Event
		if err := json.Unmarshal(data, &dayEvents); err != nil {
			return nil, fmt.Errorf("decoding partition %s: %w", key, err)
		}
		events = append(events, dayEvents...)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].StartTime < events[j].StartTime
	})

	return events, nil
}

// EventByID returns a single event, or ErrNotFound.
func (r *Reader) EventByID(ctx context.Context, id string) (event.Event, error) {
	data, err := r.store.Get(ctx, EventKey(id))
	if err == store.ErrNotFound {
		return event.Event{}, ErrNotFound
	}
	if err != nil {
		return event.Event{}, fmt.Errorf("reading event %s: %w", id, err)
	}

	var e event.Event
	if err := json.Unmarshal(data, &e); err != nil {
		return event.Event{}, fmt.Errorf("decoding event %s: %w", id, err)
	}
	return e, nil
}

// Meta returns the latest run metadata. A catalog that has never been written
// returns ErrNotFound.
func (r *Reader) Meta(ctx context.Context) (Meta, error) {
	data, err := r.store.Get(ctx, MetaKey)
	if err == store.ErrNotFound {
		return Meta{}, ErrNotFound
	}
	if err != nil {
		return Meta{}, fmt.Errorf("reading metadata: %w", err)
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return Meta{}, fmt.Errorf("decoding metadata: %w", err)
	}
	return meta, nil
}

// LastRun returns a source's last successful scrape time, or the zero time
// when the source has never succeeded.
func (r *Reader) LastRun(ctx context.Context, source event.Source) (time.Time, error) {
	data, err := r.store.Get(ctx, LastRunKey(source))
	if err == store.ErrNotFound {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading last run for %s: %w", source, err)
	}

	var at time.Time
	if err := json.Unmarshal(data, &at); err != nil {
		return time.Time{}, fmt.Errorf("decoding last run for %s: %w", source, err)
	}
	return at, nil
}

// SourceErrors returns a source's rolling error log, most recent first.
func (r *Reader) SourceErrors(ctx context.Context, source event.Source) ([]SourceError, error) {
	data, err := r.store.Get(ctx, ErrorsKey(source))
	if err == store.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading error log for %s: %w", source, err)
	}

	var log []SourceError
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("decoding error log for %s: %w", source, err)
	}
	return log, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
