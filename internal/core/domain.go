package core

import (
	"strings"
	"unicode"
)

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// AllCategories is the synthetic group that disables category filtering.
const AllCategories = "All"

type (
	Trend string

	// Indicator is one macroeconomic series as reported by the indicators provider.
	Indicator struct {
		Title           string   `json:"Title"`
		Category        string   `json:"Category"`
		CategoryGroup   string   `json:"CategoryGroup"`
		LatestValue     float64  `json:"LatestValue"`
		LatestValueDate string   `json:"LatestValueDate"`
		PreviousValue   *float64 `json:"PreviousValue"`
		Unit            string   `json:"Unit"`
		Source          string   `json:"Source"`
	}
)

// HasPrevious reports whether the provider sent a previous value.
// Zero is a real value, only a missing or null field counts as absent.
func (i Indicator) HasPrevious() bool {
	return i.PreviousValue != nil
}

// Previous returns the previous value, or 0 when absent.
func (i Indicator) Previous() float64 {
	if i.PreviousValue == nil {
		return 0
	}
	return *i.PreviousValue
}

// Trend compares the latest value against the previous one.
// Equal values count as down.
func (i Indicator) Trend() Trend {
	if !i.HasPrevious() {
		return TrendNeutral
	}
	if i.LatestValue > *i.PreviousValue {
		return TrendUp
	}
	return TrendDown
}

// NormalizeCountry trims surrounding whitespace from a country path segment.
func NormalizeCountry(country string) string {
	return strings.TrimSpace(country)
}

// CountryTitle turns a country path segment into a heading, e.g.
// "united states" into "United States". Only the first rune of each word
// changes case.
func CountryTitle(country string) string {
	words := strings.Fields(country)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Float returns a pointer to v; handy for building indicators in code.
func Float(v float64) *float64 {
	return &v
}
