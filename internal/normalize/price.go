package normalize

import "strings"

// FreePrice is the sentinel for events with no admission cost.
const FreePrice = "Free"

// NormalizePrice canonicalizes a price string. Absent, zero-valued, and
// "free"-flavored prices all become the Free sentinel; anything else passes
// through trimmed.
func NormalizePrice(price string) string {
	if price == "" {
		return FreePrice
	}

	cleaned := strings.ToLower(strings.TrimSpace(price))
	if strings.Contains(cleaned, "free") || cleaned == "0" || cleaned == "$0" {
		return FreePrice
	}

	return strings.TrimSpace(price)
}
