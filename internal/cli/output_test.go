package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/woodlandsapp/woodlands-events/internal/event"
	"github.com/woodlandsapp/woodlands-events/internal/pipeline"
)

func TestParseFormat(t *testing.T) {
	if _, err := parseFormat("text"); err != nil {
		t.Errorf("text should be valid: %v", err)
	}
	if _, err := parseFormat("json"); err != nil {
		t.Errorf("json should be valid: %v", err)
	}
	if _, err := parseFormat("yaml"); err == nil {
		t.Error("expected an error for unknown format")
	}
}

func TestWriteSummaryText(t *testing.T) {
	summary := &pipeline.Summary{
		RunID:       "run-1",
		State:       pipeline.StatePartiallyFailed,
		TotalEvents: 5,
		Sources: []pipeline.SourceResult{
			{Source: event.SourceTownship, RawEvents: 4, Accepted: 3, Errors: 1},
			{Source: event.SourcePavilion, RawEvents: 2, Accepted: 2},
		},
		Errors: []string{"Invalid event: Bad"},
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, summary, FormatText); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"partially_failed",
		"township",
		"4 scraped, 3 accepted, 1 errors",
		"Unique events stored: 5",
		"Invalid event: Bad",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummaryJSON(t *testing.T) {
	summary := &pipeline.Summary{RunID: "run-1", State: pipeline.StateCompleted, TotalEvents: 2}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, summary, FormatJSON); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	var decoded pipeline.Summary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.RunID != "run-1" || decoded.TotalEvents != 2 {
		t.Errorf("roundtrip mismatch: %+v", decoded)
	}
}

func TestWriteEventsGroupsByDate(t *testing.T) {
	events := []event.Event{
		{Title: "Farmers Market", Date: "2026-09-05", StartTime: "09:00"},
		{Title: "Jazz Night", Date: "2026-09-05", StartTime: "19:00"},
		{Title: "Movie in the Park", Date: "2026-09-06", StartTime: "20:00"},
	}

	var buf bytes.Buffer
	if err := WriteEvents(&buf, events, FormatText, false); err != nil {
		t.Fatalf("WriteEvents failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "2026-09-05 (2 events):") {
		t.Errorf("expected date grouping header, got:\n%s", out)
	}
	if !strings.Contains(out, "Total: 3 events across 2 days") {
		t.Errorf("expected totals line, got:\n%s", out)
	}
	if strings.Index(out, "2026-09-05") > strings.Index(out, "2026-09-06") {
		t.Errorf("expected dates in ascending order:\n%s", out)
	}
}

func TestWriteEventsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEvents(&buf, nil, FormatText, false); err != nil {
		t.Fatalf("WriteEvents failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No events found.") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
