// Package calendar renders events as iCalendar (.ics) files so users can add
// them to their own calendars.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/woodlandsapp/woodlands-events/internal/event"
)

const defaultDuration = 2 * time.Hour

// GenerateICS generates an iCalendar (.ics) file for an event
func GenerateICS(evt event.Event) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Woodlands Events//woodlands-events//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:%s@woodlands-events\r\n", evt.ID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(time.Now().UTC())))

	start, end := eventWindow(evt)
	if evt.StartTime == "" {
		// All-day event when no start time is known.
		ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", start.Format("20060102")))
		ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", end.Format("20060102")))
	} else {
		ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
		ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(end)))
	}

	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(evt.Title)))

	if evt.Description != "" {
		description := evt.Description
		if evt.SourceURL != "" {
			description = fmt.Sprintf("%s\n\nDetails: %s", description, evt.SourceURL)
		}
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))
	}

	location := evt.Venue.Name
	if evt.Venue.Address != "" {
		location = fmt.Sprintf("%s, %s", evt.Venue.Name, evt.Venue.Address)
	}
	if location != "" {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(location)))
	}

	if evt.SourceURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", evt.SourceURL))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")

	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// eventWindow resolves the start and end times of an event. Events without a
// start time become all-day entries and events without an end time default to
// a two hour duration.
func eventWindow(evt event.Event) (time.Time, time.Time) {
	day, err := time.Parse("2006-01-02", evt.Date)
	if err != nil {
		day = time.Now().UTC().Truncate(24 * time.Hour)
	}

	if evt.StartTime == "" {
		return day, day.AddDate(0, 0, 1)
	}

	start := atTime(day, evt.StartTime)
	end := start.Add(defaultDuration)
	if evt.EndTime != "" {
		if e := atTime(day, evt.EndTime); e.After(start) {
			end = e
		}
	}
	return start, end
}

// atTime combines a day with an HH:MM clock string.
func atTime(day time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// RFC 5545 text escaping
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
