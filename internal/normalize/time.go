package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// timePattern matches common listing time formats: "2:00 PM", "14:00", "2 PM".
// Hour is required; minutes and the AM/PM marker are optional.
var timePattern = regexp.MustCompile(`(?i)(\d{1,2}):?(\d{0,2})\s*(AM|PM)?`)

// ParseTime converts a time string to 24-hour "HH:MM". Empty input yields
// empty output. Input that does not match any known shape is returned
// trimmed but otherwise verbatim rather than dropped.
func ParseTime(s string) string {
	if s == "" {
		return ""
	}

	match := timePattern.FindStringSubmatch(s)
	if match == nil {
		return strings.TrimSpace(s)
	}

	hours, _ := strconv.Atoi(match[1])
	minutes := 0
	if match[2] != "" {
		minutes, _ = strconv.Atoi(match[2])
	}
	meridiem := strings.ToUpper(match[3])

	if meridiem == "PM" && hours != 12 {
		hours += 12
	}
	if meridiem == "AM" && hours == 12 {
		hours = 0
	}

	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
