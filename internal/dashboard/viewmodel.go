// Package dashboard turns a country's raw indicator list into the view model
// rendered by the web UI and the CLI: headline cards, category chips, the
// filtered card grid and the key category sections.
package dashboard

import (
	"econdash/internal/core"
)

const (
	// DisplayLimit caps how many filtered cards the grid shows.
	DisplayLimit = 12
	// BucketSize caps how many indicators a key category section shows.
	BucketSize = 4
)

// headlineDef binds a headline card name to the Category it displays.
type headlineDef struct {
	Name     string
	Category string
}

var headlineDefs = []headlineDef{
	{Name: "GDP Growth", Category: "GDP Annual Growth Rate"},
	{Name: "Inflation Rate", Category: "Inflation Rate"},
	{Name: "Unemployment", Category: "Unemployment Rate"},
	{Name: "Interest Rate", Category: "Interest Rate"},
}

// KeyCategories are the groups given their own section, in display order.
var KeyCategories = []string{"Labour", "Housing", "Business", "Money"}

type (
	Headline struct {
		Name      string
		Value     string
		Found     bool
		Trend     core.Trend
		ShowTrend bool
		Updated   string
	}

	Chip struct {
		Name   string
		Active bool
	}

	Card struct {
		Title         string
		Category      string
		CategoryGroup string
		Value         string
		Trend         core.Trend
		Arrow         string
		HasPrevious   bool
		Previous      string
		Change        string
		HasChange     bool
		Icon          Icon
		Source        string
		Updated       string
	}

	Section struct {
		Group string
		Icon  Icon
		Cards []Card
	}

	View struct {
		Country   string
		Filter    Filter
		Headlines []Headline
		Chips     []Chip
		Cards     []Card
		// Matches counts every filtered indicator, including the ones past DisplayLimit.
		Matches  int
		Total    int
		Sections []Section
	}
)

// CategoryGroups returns "All" followed by each distinct CategoryGroup in
// first-seen order.
func CategoryGroups(list []core.Indicator) []string {
	groups := []string{core.AllCategories}
	seen := map[string]struct{}{}
	for _, ind := range list {
		if _, ok := seen[ind.CategoryGroup]; ok {
			continue
		}
		seen[ind.CategoryGroup] = struct{}{}
		groups = append(groups, ind.CategoryGroup)
	}
	return groups
}

// FindByCategory returns the first indicator whose Category equals category.
func FindByCategory(list []core.Indicator, category string) (core.Indicator, bool) {
	for _, ind := range list {
		if ind.Category == category {
			return ind, true
		}
	}
	return core.Indicator{}, false
}

// Headlines builds the four fixed headline cards. Missing indicators render
// as NotAvailable instead of failing.
func Headlines(list []core.Indicator) []Headline {
	out := make([]Headline, 0, len(headlineDefs))
	for _, hs := range headlineDefs {
		h := Headline{Name: hs.Name, Value: NotAvailable, Trend: core.TrendNeutral}
		if ind, ok := FindByCategory(list, hs.Category); ok {
			h.Found = true
			h.Value = FormatValue(ind)
			h.Trend = TrendOf(ind)
			h.ShowTrend = ind.HasPrevious()
			h.Updated = FormatDate(ind.LatestValueDate)
		}
		out = append(out, h)
	}
	return out
}

// ByCategoryGroup returns the first BucketSize indicators of group, in list order.
func ByCategoryGroup(list []core.Indicator, group string) []core.Indicator {
	out := make([]core.Indicator, 0, BucketSize)
	for _, ind := range list {
		if ind.CategoryGroup != group {
			continue
		}
		out = append(out, ind)
		if len(out) == BucketSize {
			break
		}
	}
	return out
}

// NewCard derives the display fields of one indicator.
func NewCard(ind core.Indicator) Card {
	c := Card{
		Title:         ind.Title,
		Category:      ind.Category,
		CategoryGroup: ind.CategoryGroup,
		Value:         FormatValue(ind),
		Trend:         TrendOf(ind),
		HasPrevious:   ind.HasPrevious(),
		Icon:          IconFor(ind.CategoryGroup),
		Source:        ind.Source,
		Updated:       FormatDate(ind.LatestValueDate),
	}
	if c.HasPrevious {
		c.Previous = formatNumber(ind.Previous())
		c.Arrow = Arrow(c.Trend)
	}
	c.Change, c.HasChange = PercentChange(ind)
	return c
}

// Build assembles the full view for one country under filter f.
func Build(country string, list []core.Indicator, f Filter) View {
	active := f.ActiveCategory()
	v := View{
		Country:   country,
		Filter:    f,
		Headlines: Headlines(list),
		Total:     len(list),
	}

	for _, g := range CategoryGroups(list) {
		v.Chips = append(v.Chips, Chip{Name: g, Active: g == active})
	}

	filtered := f.Apply(list)
	v.Matches = len(filtered)
	if len(filtered) > DisplayLimit {
		filtered = filtered[:DisplayLimit]
	}
	v.Cards = make([]Card, 0, len(filtered))
	for _, ind := range filtered {
		v.Cards = append(v.Cards, NewCard(ind))
	}

	for _, group := range KeyCategories {
		items := ByCategoryGroup(list, group)
		if len(items) == 0 {
			continue
		}
		s := Section{Group: group, Icon: IconFor(group)}
		for _, ind := range items {
			s.Cards = append(s.Cards, NewCard(ind))
		}
		v.Sections = append(v.Sections, s)
	}
	return v
}
