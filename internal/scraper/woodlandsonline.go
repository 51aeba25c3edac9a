package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/woodlandsapp/woodlands-events/internal/event"
)

// WoodlandsOnlineBaseURL is the community events portal.
const WoodlandsOnlineBaseURL = "https://www.woodlandsonline.com"

// WoodlandsOnline scrapes the community events portal listing.
type WoodlandsOnline struct {
	client  *http.Client
	baseURL string
}

// NewWoodlandsOnline creates the portal adapter. An empty baseURL uses the
// production site.
func NewWoodlandsOnline(baseURL string) *WoodlandsOnline {
	if baseURL == "" {
		baseURL = WoodlandsOnlineBaseURL
	}
	return &WoodlandsOnline{client: newClient(), baseURL: baseURL}
}

func (w *WoodlandsOnline) Source() event.Source {
	return event.SourceWoodlandsOnline
}

func (w *WoodlandsOnline) FetchRawEvents(ctx context.Context) ([]event.RawEvent, error) {
	pageURL := w.baseURL + "/evps/"
	doc, err := fetchDocument(ctx, w.client, pageURL)
	if err != nil {
		return nil, fmt.Errorf("woodlands online listing: %w", err)
	}
	return w.parseEvents(doc, pageURL), nil
}

// parseEvents extracts raw events from the portal's listing rows. The venue
// cell packs name and address separated by a pipe; times use "X to Y".
func (w *WoodlandsOnline) parseEvents(doc *goquery.Document, pageURL string) []event.RawEvent {
	events := make([]event.RawEvent, 0)

	doc.Find("div.evt-listing div.evt").Each(func(_ int, row *goquery.Selection) {
		titleLink := row.Find("a.evt-title").First()
		href, _ := titleLink.Attr("href")
		imageURL, _ := row.Find("img.evt-thumb").Attr("src")

		venueName, venueAddress := splitVenue(row.Find("span.evt-loc").Text())
		startTime, endTime := splitToRange(row.Find("span.evt-time").Text())

		events = append(events, event.RawEvent{
			Title:       strings.TrimSpace(titleLink.Text()),
			Description: strings.TrimSpace(row.Find("p.evt-blurb").Text()),
			Date:        strings.TrimSpace(row.Find("span.evt-date").Text()),
			StartTime:   startTime,
			EndTime:     endTime,
			Venue: event.Venue{
				Name:    venueName,
				Address: venueAddress,
			},
			Price:    strings.TrimSpace(row.Find("span.evt-cost").Text()),
			URL:      resolveURL(pageURL, href),
			ImageURL: imageURL,
		})
	})

	return events
}

// splitVenue splits "Venue Name | Street Address" into its parts.
func splitVenue(s string) (string, string) {
	parts := strings.SplitN(s, "|", 2)
	name := strings.TrimSpace(parts[0])
	if len(parts) == 1 {
		return name, ""
	}
	return name, strings.TrimSpace(parts[1])
}

// splitToRange splits "5:30 PM to 7:30 PM" into start and end.
func splitToRange(s string) (string, string) {
	parts := strings.SplitN(s, " to ", 2)
	start := strings.TrimSpace(parts[0])
	if len(parts) == 1 {
		return start, ""
	}
	return start, strings.TrimSpace(parts[1])
}
