package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Info("Scrape finished", Fields{"source": "township", "events": 12})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON output, got %q: %v", buf.String(), err)
	}
	if entry.Level != "INFO" {
		t.Errorf("unexpected level: %q", entry.Level)
	}
	if entry.Message != "Scrape finished" {
		t.Errorf("unexpected message: %q", entry.Message)
	}
	if entry.Fields["source"] != "township" {
		t.Errorf("unexpected fields: %+v", entry.Fields)
	}
	if entry.Timestamp == "" {
		t.Error("expected timestamp to be set")
	}
}

func TestLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Debug("dropped", nil)
	l.Info("dropped too", nil)
	l.Warn("kept", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "kept") {
		t.Errorf("unexpected line: %q", lines[0])
	}
}

func TestLoggerIncludesError(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelError, &buf)

	l.Error("Scrape failed", Fields{"source": "pavilion"}, errors.New("connection refused"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON output: %v", err)
	}
	if entry.Error != "connection refused" {
		t.Errorf("unexpected error field: %q", entry.Error)
	}
}
