package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/woodlandsapp/woodlands-events/internal/event"
)

// TownshipBaseURL is the township's public calendar site.
const TownshipBaseURL = "https://www.thewoodlandstownship-tx.gov"

// Township scrapes the township government's event calendar.
type Township struct {
	client  *http.Client
	baseURL string
}

// NewTownship creates the township adapter. An empty baseURL uses the
// production site.
func NewTownship(baseURL string) *Township {
	if baseURL == "" {
		baseURL = TownshipBaseURL
	}
	return &Township{client: newClient(), baseURL: baseURL}
}

func (t *Township) Source() event.Source {
	return event.SourceTownship
}

func (t *Township) FetchRawEvents(ctx context.Context) ([]event.RawEvent, error) {
	pageURL := t.baseURL + "/calendar"
	doc, err := fetchDocument(ctx, t.client, pageURL)
	if err != nil {
		return nil, fmt.Errorf("township calendar: %w", err)
	}
	return t.parseEvents(doc, pageURL), nil
}

// parseEvents extracts raw events from the calendar listing markup. Each
// event is a div.event-item with title, date, time range, venue, and price
// children.
func (t *Township) parseEvents(doc *goquery.Document, pageURL string) []event.RawEvent {
	events := make([]event.RawEvent, 0)

	doc.Find("div.event-item").Each(func(_ int, item *goquery.Selection) {
		titleLink := item.Find("h3.event-title a").First()
		title := strings.TrimSpace(titleLink.Text())
		if title == "" {
			title = strings.TrimSpace(item.Find("h3.event-title").Text())
		}

		href, _ := titleLink.Attr("href")
		startTime, endTime := splitTimeRange(item.Find("span.event-time").Text())

		events = append(events, event.RawEvent{
			Title:       title,
			Description: strings.TrimSpace(item.Find("div.event-description").Text()),
			Date:        strings.TrimSpace(item.Find("span.event-date").Text()),
			StartTime:   startTime,
			EndTime:     endTime,
			Venue: event.Venue{
				Name:    strings.TrimSpace(item.Find("span.event-venue").Text()),
				Address: strings.TrimSpace(item.Find("span.event-address").Text()),
			},
			Price: strings.TrimSpace(item.Find("span.event-price").Text()),
			URL:   resolveURL(pageURL, href),
		})
	})

	return events
}

// splitTimeRange splits "10:00 AM - 11:30 AM" into its two halves. A single
// time yields an empty end time.
func splitTimeRange(s string) (string, string) {
	parts := strings.SplitN(s, "-", 2)
	start := strings.TrimSpace(parts[0])
	if len(parts) == 1 {
		return start, ""
	}
	return start, strings.TrimSpace(parts[1])
}
