package dashboard

import (
	"strings"

	"econdash/internal/core"
)

// Filter is the user's current narrowing of the indicator list.
type Filter struct {
	Category string
	Search   string
}

// ActiveCategory returns the selected group, treating empty as "All".
func (f Filter) ActiveCategory() string {
	if f.Category == "" {
		return core.AllCategories
	}
	return f.Category
}

// Apply narrows list to the indicators matching both the category group and
// the search term. Order is preserved and the result is never truncated.
func Apply(list []core.Indicator, activeCategory, searchTerm string) []core.Indicator {
	term := strings.ToLower(searchTerm)
	out := make([]core.Indicator, 0, len(list))
	for _, ind := range list {
		if !matchesCategory(ind, activeCategory) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(ind.Title), term) &&
			!strings.Contains(strings.ToLower(ind.Category), term) {
			continue
		}
		out = append(out, ind)
	}
	return out
}

// Apply runs the package-level Apply with this filter.
func (f Filter) Apply(list []core.Indicator) []core.Indicator {
	return Apply(list, f.ActiveCategory(), f.Search)
}

func matchesCategory(ind core.Indicator, active string) bool {
	return active == "" || active == core.AllCategories || ind.CategoryGroup == active
}
