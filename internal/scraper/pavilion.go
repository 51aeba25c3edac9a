package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/woodlandsapp/woodlands-events/internal/event"
)

// PavilionBaseURL is the performing arts venue's site.
const PavilionBaseURL = "https://www.woodlandscenter.org"

// The pavilion hosts everything at one address, so the venue is fixed.
const (
	pavilionVenueName    = "The Cynthia Woods Mitchell Pavilion"
	pavilionVenueAddress = "2005 Lake Robbins Dr, The Woodlands, TX 77380"
)

// Pavilion scrapes the pavilion's show schedule.
type Pavilion struct {
	client  *http.Client
	baseURL string
}

// NewPavilion creates the pavilion adapter. An empty baseURL uses the
// production site.
func NewPavilion(baseURL string) *Pavilion {
	if baseURL == "" {
		baseURL = PavilionBaseURL
	}
	return &Pavilion{client: newClient(), baseURL: baseURL}
}

func (p *Pavilion) Source() event.Source {
	return event.SourcePavilion
}

func (p *Pavilion) FetchRawEvents(ctx context.Context) ([]event.RawEvent, error) {
	pageURL := p.baseURL + "/events"
	doc, err := fetchDocument(ctx, p.client, pageURL)
	if err != nil {
		return nil, fmt.Errorf("pavilion schedule: %w", err)
	}
	return p.parseEvents(doc, pageURL), nil
}

// parseEvents extracts raw events from the schedule's article.show blocks.
// The machine-readable date lives in the <time> element's datetime attribute.
func (p *Pavilion) parseEvents(doc *goquery.Document, pageURL string) []event.RawEvent {
	events := make([]event.RawEvent, 0)

	doc.Find("article.show").Each(func(_ int, show *goquery.Selection) {
		date, ok := show.Find("time.show-date").Attr("datetime")
		if !ok {
			date = strings.TrimSpace(show.Find("time.show-date").Text())
		}

		href, _ := show.Find("a.show-tickets").Attr("href")
		imageURL, _ := show.Find("img.show-poster").Attr("src")

		events = append(events, event.RawEvent{
			Title:       strings.TrimSpace(show.Find("h2.show-title").Text()),
			Description: strings.TrimSpace(show.Find("div.show-copy").Text()),
			Date:        strings.TrimSpace(date),
			StartTime:   strings.TrimSpace(show.Find("span.show-time").Text()),
			Venue: event.Venue{
				Name:    pavilionVenueName,
				Address: pavilionVenueAddress,
			},
			Price:    strings.TrimSpace(show.Find("span.show-price").Text()),
			URL:      resolveURL(pageURL, href),
			ImageURL: imageURL,
		})
	})

	return events
}
