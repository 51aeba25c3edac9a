package normalize

import (
	"strings"

	"github.com/woodlandsapp/woodlands-events/internal/event"
)

// categoryKeywords maps each category to the keywords that select it.
// Order matters: the first group with a match wins.
var categoryKeywords = []struct {
	category event.Category
	keywords []string
}{
	{event.CategoryMusic, []string{"music", "concert", "band"}},
	{event.CategoryFood, []string{"food", "restaurant", "dining"}},
	{event.CategoryFamily, []string{"family", "kids", "children"}},
	{event.CategoryBusiness, []string{"business", "networking", "professional"}},
	{event.CategoryArts, []string{"art", "gallery", "exhibition"}},
	{event.CategorySports, []string{"sport", "fitness", "game"}},
}

// Categorize infers a category from a case-insensitive keyword scan over the
// title and description. Events that match no keyword group default to
// community.
func Categorize(title, description string) event.Category {
	text := strings.ToLower(title + " " + description)

	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				return group.category
			}
		}
	}

	return event.CategoryCommunity
}
