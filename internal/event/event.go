package event

import (
	"fmt"
	"regexp"
	"strings"
)

// Source identifies the origin adapter of an event listing.
type Source string

const (
	SourceTownship        Source = "township"
	SourceWoodlandsOnline Source = "woodlandsonline"
	SourcePavilion        Source = "pavilion"
)

// Sources lists every known source in registration order.
func Sources() []Source {
	return []Source{SourceTownship, SourceWoodlandsOnline, SourcePavilion}
}

// Category classifies an event into a fixed set of buckets.
type Category string

const (
	CategoryMusic     Category = "music"
	CategorySports    Category = "sports"
	CategoryFamily    Category = "family"
	CategoryFood      Category = "food"
	CategoryArts      Category = "arts"
	CategoryCommunity Category = "community"
	CategoryBusiness  Category = "business"
	CategoryOther     Category = "other"
)

// Venue is where an event takes place.
type Venue struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// RawEvent is an unvalidated candidate as reported by a source adapter.
// The date and time fields are unparsed strings in whatever shape the
// source publishes them.
type RawEvent struct {
	Title       string
	Description string
	Date        string
	StartTime   string
	EndTime     string
	Venue       Venue
	Price       string
	URL         string
	ImageURL    string
}

// Event is a validated, normalized event record.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"` // YYYY-MM-DD
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime,omitempty"`
	Venue       Venue    `json:"venue"`
	Category    Category `json:"category"`
	Price       string   `json:"price"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Source      Source   `json:"source"`
	SourceURL   string   `json:"sourceUrl"`
}

var (
	slugPattern  = regexp.MustCompile(`[^a-z0-9]+`)
	digitPattern = regexp.MustCompile(`[^0-9]`)
)

// GenerateID creates a deterministic ID from the source, the raw date string,
// and a slug of the title. The same raw input always yields the same ID, which
// makes the ID usable as a stable storage and dedup key component.
func GenerateID(source Source, title, date string) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(title), "-"), "-")
	digits := digitPattern.ReplaceAllString(date, "")
	return fmt.Sprintf("%s-%s-%s", source, digits, slug)
}
