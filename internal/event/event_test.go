package event

import (
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name     string
		source   Source
		title    string
		date     string
		expected string
	}{
		{
			name:     "basic title and ISO date",
			source:   SourceTownship,
			title:    "Farmers Market",
			date:     "2026-09-05",
			expected: "township-20260905-farmers-market",
		},
		{
			name:     "punctuation collapses to single hyphens",
			source:   SourcePavilion,
			title:    "Rock & Roll: The '80s!!",
			date:     "2026-09-05",
			expected: "pavilion-20260905-rock-roll-the-80s",
		},
		{
			name:     "leading and trailing separators trimmed",
			source:   SourceWoodlandsOnline,
			title:    "  --Open Mic Night--  ",
			date:     "09/05/2026",
			expected: "woodlandsonline-09052026-open-mic-night",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateID(tt.source, tt.title, tt.date)
			if got != tt.expected {
				t.Errorf("GenerateID() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestGenerateIDDeterministic(t *testing.T) {
	id1 := GenerateID(SourceTownship, "Community Garden Workshop", "2026-09-12")
	id2 := GenerateID(SourceTownship, "Community Garden Workshop", "2026-09-12")
	if id1 != id2 {
		t.Errorf("GenerateID should be deterministic, got %q and %q", id1, id2)
	}
}
