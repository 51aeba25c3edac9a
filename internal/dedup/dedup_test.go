package dedup

import (
	"reflect"
	"testing"

	"github.com/woodlandsapp/woodlands-events/internal/event"
)

func makeEvent(id, title, date, venue string, source event.Source) event.Event {
	return event.Event{
		ID:     id,
		Title:  title,
		Date:   date,
		Venue:  event.Venue{Name: venue},
		Source: source,
	}
}

func TestStringSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"identical strings", "Farmers Market", "Farmers Market", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "Farmers Market", "", 0.0},
		{"completely different same length", "abcd", "wxyz", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StringSimilarity(tt.a, tt.b); got != tt.expected {
				t.Errorf("StringSimilarity(%q, %q) = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestStringSimilarityNearMatch(t *testing.T) {
	// One apostrophe of difference across 15 characters.
	got := StringSimilarity("farmers market", "farmer's market")
	if got <= 0.85 {
		t.Errorf("expected similarity > 0.85 for near-identical titles, got %v", got)
	}
}

func TestSimilar(t *testing.T) {
	tests := []struct {
		name    string
		a       event.Event
		b       event.Event
		similar bool
	}{
		{
			name:    "same title different dates never merge",
			a:       makeEvent("a", "Farmers Market", "2026-09-05", "Market Street", event.SourceTownship),
			b:       makeEvent("b", "Farmers Market", "2026-09-06", "Market Street", event.SourcePavilion),
			similar: false,
		},
		{
			name:    "near-identical titles on same date merge",
			a:       makeEvent("a", "Farmers Market", "2026-09-05", "Market Street", event.SourceTownship),
			b:       makeEvent("b", "Farmer's Market", "2026-09-05", "Town Green Park", event.SourcePavilion),
			similar: true,
		},
		{
			name:    "moderate title match with matching venue merges",
			a:       makeEvent("a", "Yoga in the Park Session", "2026-09-05", "Riva Row Boat House", event.SourceTownship),
			b:       makeEvent("b", "Yoga in the Park", "2026-09-05", "Riva Row Boat House", event.SourceWoodlandsOnline),
			similar: true,
		},
		{
			name:    "unrelated titles on same date stay separate",
			a:       makeEvent("a", "Jazz Night", "2026-09-05", "Pavilion", event.SourcePavilion),
			b:       makeEvent("b", "Hazardous Waste Collection", "2026-09-05", "Township Warehouse", event.SourceTownship),
			similar: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similar(tt.a, tt.b); got != tt.similar {
				t.Errorf("Similar() = %v, expected %v", got, tt.similar)
			}
		})
	}
}

func TestDeduplicateFirstSeenWins(t *testing.T) {
	first := makeEvent("township-1", "Farmers Market", "2026-09-05", "Market Street", event.SourceTownship)
	second := makeEvent("pavilion-1", "Farmer's Market", "2026-09-05", "Grogan's Mill", event.SourcePavilion)

	got := Deduplicate([]event.Event{first, second})

	if len(got) != 1 {
		t.Fatalf("expected 1 surviving event, got %d", len(got))
	}
	if got[0].ID != "township-1" {
		t.Errorf("expected first-seen event to survive, got %q", got[0].ID)
	}

	// Reversed input keeps the other source's record instead.
	got = Deduplicate([]event.Event{second, first})
	if len(got) != 1 || got[0].ID != "pavilion-1" {
		t.Errorf("expected order to decide the survivor, got %+v", got)
	}
}

func TestDeduplicateIsIdempotent(t *testing.T) {
	events := []event.Event{
		makeEvent("a", "Farmers Market", "2026-09-05", "Market Street", event.SourceTownship),
		makeEvent("b", "Farmer's Market", "2026-09-05", "Town Green", event.SourcePavilion),
		makeEvent("c", "Jazz Night", "2026-09-05", "Pavilion", event.SourcePavilion),
		makeEvent("d", "Jazz Night", "2026-09-06", "Pavilion", event.SourcePavilion),
	}

	once := Deduplicate(events)
	twice := Deduplicate(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("deduplicating its own output changed the result:\n%+v\n%+v", once, twice)
	}
}

func TestDeduplicatePreservesOrder(t *testing.T) {
	events := []event.Event{
		makeEvent("c", "Jazz Night", "2026-09-05", "Pavilion", event.SourcePavilion),
		makeEvent("a", "Farmers Market", "2026-09-05", "Market Street", event.SourceTownship),
		makeEvent("d", "Story Time", "2026-09-05", "Library", event.SourceTownship),
	}

	got := Deduplicate(events)

	ids := make([]string, len(got))
	for i, e := range got {
		ids[i] = e.ID
	}
	if !reflect.DeepEqual(ids, []string{"c", "a", "d"}) {
		t.Errorf("expected input order preserved, got %v", ids)
	}
}
