package normalize

import (
	"regexp"
	"strings"
)

const maxDescriptionLength = 500

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	titleCharPattern  = regexp.MustCompile(`[^a-zA-Z0-9_ .\-'&]`)
)

// collapseWhitespace trims the string and collapses internal whitespace
// runs to single spaces.
func collapseWhitespace(s string) string {
	return whitespacePattern.ReplaceAllString(strings.TrimSpace(s), " ")
}

// CleanTitle trims and collapses whitespace, then strips characters outside
// the allowed title set (letters, digits, space, period, hyphen, apostrophe,
// ampersand).
func CleanTitle(title string) string {
	return titleCharPattern.ReplaceAllString(collapseWhitespace(title), "")
}

// CleanDescription trims and collapses whitespace and truncates the result
// to 500 characters.
func CleanDescription(description string) string {
	cleaned := collapseWhitespace(description)
	runes := []rune(cleaned)
	if len(runes) > maxDescriptionLength {
		return string(runes[:maxDescriptionLength])
	}
	return cleaned
}
