package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/woodlandsapp/woodlands-events/internal/event"
	"github.com/woodlandsapp/woodlands-events/internal/store"
)

func makeEvent(id, title, date, startTime string) event.Event {
	return event.Event{
		ID:        id,
		Title:     title,
		Date:      date,
		StartTime: startTime,
		Venue:     event.Venue{Name: "Market Street"},
		Category:  event.CategoryCommunity,
		Price:     "Free",
		Source:    event.SourceTownship,
	}
}

func TestPersistAndReadRange(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	w := NewWriter(s)
	r := NewReader(s)

	events := []event.Event{
		makeEvent("c", "Evening Concert", "2026-09-06", "19:00"),
		makeEvent("a", "Farmers Market", "2026-09-05", "09:00"),
		makeEvent("b", "Story Time", "2026-09-05", "14:00"),
	}

	if err := w.Persist(ctx, events); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	start := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	got, err := r.EventsByDateRange(ctx, start, end)
	if err != nil {
		t.Fatalf("EventsByDateRange failed: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}

	// Sorted by date then start time.
	wantOrder := []string{"a", "b", "c"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d: expected %q, got %q", i, id, got[i].ID)
		}
	}
}

func TestReadRangeSkipsMissingDays(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	w := NewWriter(s)
	r := NewReader(s)

	if err := w.Persist(ctx, []event.Event{makeEvent("a", "Farmers Market", "2026-09-05", "09:00")}); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	got, err := r.EventsByDateRange(ctx, start, end)
	if err != nil {
		t.Fatalf("EventsByDateRange failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 event across sparse range, got %d", len(got))
	}
}

func TestPersistOverwritesPartition(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	w := NewWriter(s)
	r := NewReader(s)

	_ = w.Persist(ctx, []event.Event{
		makeEvent("a", "Farmers Market", "2026-09-05", "09:00"),
		makeEvent("b", "Story Time", "2026-09-05", "14:00"),
	})
	_ = w.Persist(ctx, []event.Event{
		makeEvent("c", "Jazz Night", "2026-09-05", "19:30"),
	})

	day := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	got, err := r.EventsByDateRange(ctx, day, day)
	if err != nil {
		t.Fatalf("EventsByDateRange failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("expected latest run to fully replace the partition, got %+v", got)
	}
}

func TestEventByID(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	w := NewWriter(s)
	r := NewReader(s)

	e := makeEvent("township-20260905-farmers-market", "Farmers Market", "2026-09-05", "09:00")
	if err := w.Persist(ctx, []event.Event{e}); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	got, err := r.EventByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("EventByID failed: %v", err)
	}
	if got.Title != "Farmers Market" {
		t.Errorf("unexpected event: %+v", got)
	}

	_, err = r.EventByID(ctx, "no-such-event")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	w := NewWriter(s)
	r := NewReader(s)

	meta := Meta{
		RunID:       "run-1",
		TotalEvents: 7,
		Sources:     event.Sources(),
		Errors:      []string{"Failed to scrape pavilion: timeout"},
		LastUpdated: time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC),
	}
	if err := w.WriteMeta(ctx, meta); err != nil {
		t.Fatalf("WriteMeta failed: %v", err)
	}

	got, err := r.Meta(ctx)
	if err != nil {
		t.Fatalf("Meta failed: %v", err)
	}
	if got.RunID != "run-1" || got.TotalEvents != 7 || len(got.Errors) != 1 {
		t.Errorf("unexpected metadata: %+v", got)
	}
}

func TestSourceDiagnostics(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	w := NewWriter(s)
	r := NewReader(s)

	at := time.Date(2026, 9, 5, 8, 0, 0, 0, time.UTC)
	if err := w.RecordSuccess(ctx, event.SourceTownship, at); err != nil {
		t.Fatalf("RecordSuccess failed: %v", err)
	}

	last, err := r.LastRun(ctx, event.SourceTownship)
	if err != nil {
		t.Fatalf("LastRun failed: %v", err)
	}
	if !last.Equal(at) {
		t.Errorf("expected last run %v, got %v", at, last)
	}

	// A source that never succeeded reports the zero time, not an error.
	last, err = r.LastRun(ctx, event.SourcePavilion)
	if err != nil {
		t.Fatalf("LastRun failed: %v", err)
	}
	if !last.IsZero() {
		t.Errorf("expected zero time for unseen source, got %v", last)
	}
}

func TestRecordErrorKeepsMostRecentTen(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	w := NewWriter(s)
	r := NewReader(s)

	for i := 0; i < 13; i++ {
		if err := w.RecordError(ctx, event.SourcePavilion, string(rune('a'+i))); err != nil {
			t.Fatalf("RecordError failed: %v", err)
		}
	}

	log, err := r.SourceErrors(ctx, event.SourcePavilion)
	if err != nil {
		t.Fatalf("SourceErrors failed: %v", err)
	}
	if len(log) != 10 {
		t.Fatalf("expected log capped at 10 entries, got %d", len(log))
	}
	if log[0].Message != "m" {
		t.Errorf("expected most recent entry first, got %q", log[0].Message)
	}
}
