package normalize

import "time"

// lenientDateFormats is the cascade validation uses to decide whether a date
// field is parseable at all.
var lenientDateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"January 2, 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
}

// canonicalDateFormats is the stricter cascade normalization uses to produce
// the YYYY-MM-DD calendar date.
var canonicalDateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
}

func parseDateLenient(s string) (time.Time, bool) {
	for _, layout := range lenientDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDateAt parses a date string to YYYY-MM-DD, defaulting to today's date
// when the string does not parse.
//
// Known limitation: this cascade is narrower than the one validation applies,
// so a date string that validation accepts (for example "Jan 2 2026") can fail
// here and silently land on today's date. The two-pass parse-or-default
// behavior is intentional and preserved as-is; unifying the cascades would
// change which events survive and which day they display under.
func parseDateAt(s string, now time.Time) string {
	for _, layout := range canonicalDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return now.Format("2006-01-02")
}
