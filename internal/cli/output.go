package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/woodlandsapp/woodlands-events/internal/event"
	"github.com/woodlandsapp/woodlands-events/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

func parseFormat(raw string) (OutputFormat, error) {
	format := OutputFormat(raw)
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", raw)
	}
	return format, nil
}

// WriteSummary writes an ingestion run summary in the specified format
func WriteSummary(w io.Writer, summary *pipeline.Summary, format OutputFormat) error {
	if format == FormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	}

	fmt.Fprintf(w, "Run %s finished: %s\n", summary.RunID, summary.State)
	for _, src := range summary.Sources {
		fmt.Fprintf(w, "  %-16s %d scraped, %d accepted, %d errors\n",
			src.Source+":", src.RawEvents, src.Accepted, src.Errors)
	}
	fmt.Fprintf(w, "Unique events stored: %d\n", summary.TotalEvents)

	if len(summary.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors (%d):\n", len(summary.Errors))
		for _, msg := range summary.Errors {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}
	return nil
}

// WriteEvents writes a list of events in the specified format, grouped by
// date in text mode
func WriteEvents(w io.Writer, events []event.Event, format OutputFormat, verbose bool) error {
	if format == FormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(events)
	}

	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	byDate := make(map[string][]event.Event)
	for _, evt := range events {
		byDate[evt.Date] = append(byDate[evt.Date], evt)
	}
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		fmt.Fprintf(w, "\n%s (%d events):\n", date, len(byDate[date]))
		for _, evt := range byDate[date] {
			if evt.StartTime != "" {
				fmt.Fprintf(w, "  %s  %s\n", evt.StartTime, evt.Title)
			} else {
				fmt.Fprintf(w, "         %s\n", evt.Title)
			}
			if verbose {
				fmt.Fprintf(w, "         ID: %s\n", evt.ID)
				fmt.Fprintf(w, "         Venue: %s\n", evt.Venue.Name)
				fmt.Fprintf(w, "         Category: %s, Price: %s, Source: %s\n",
					evt.Category, evt.Price, evt.Source)
			}
		}
	}
	fmt.Fprintf(w, "\nTotal: %d events across %d days\n", len(events), len(dates))
	return nil
}
