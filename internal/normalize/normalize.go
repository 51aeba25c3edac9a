package normalize

import (
	"strings"
	"time"

	"github.com/woodlandsapp/woodlands-events/internal/event"
)

// Validate reports whether a raw candidate is acceptable for normalization.
// All of the following must hold: the trimmed title is at least 3 characters,
// the date field is present and parseable, the venue has a name, and the
// parsed date is today or later.
func Validate(raw event.RawEvent) bool {
	return validateAt(raw, time.Now())
}

func validateAt(raw event.RawEvent, now time.Time) bool {
	if len(strings.TrimSpace(raw.Title)) < 3 {
		return false
	}
	if raw.Date == "" {
		return false
	}
	if raw.Venue.Name == "" {
		return false
	}

	date, ok := parseDateLenient(raw.Date)
	if !ok {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !date.Before(today)
}

// Normalize converts a validated raw candidate into a canonical Event.
// It never fails: unparseable dates fall back to today and unparseable
// times pass through verbatim.
func Normalize(source event.Source, raw event.RawEvent) event.Event {
	return normalizeAt(source, raw, time.Now())
}

func normalizeAt(source event.Source, raw event.RawEvent, now time.Time) event.Event {
	return event.Event{
		ID:          event.GenerateID(source, raw.Title, raw.Date),
		Title:       CleanTitle(raw.Title),
		Description: CleanDescription(raw.Description),
		Date:        parseDateAt(raw.Date, now),
		StartTime:   ParseTime(raw.StartTime),
		EndTime:     ParseTime(raw.EndTime),
		Venue: event.Venue{
			Name:    collapseWhitespace(raw.Venue.Name),
			Address: collapseWhitespace(raw.Venue.Address),
		},
		Category:  Categorize(raw.Title, raw.Description),
		Price:     NormalizePrice(raw.Price),
		ImageURL:  raw.ImageURL,
		Source:    source,
		SourceURL: raw.URL,
	}
}
