package dashboard

import (
	"github.com/shopspring/decimal"

	"econdash/internal/core"
)

// TrendOf reports the direction of the latest move. Equal values count as
// down; a missing previous value is neutral.
func TrendOf(ind core.Indicator) core.Trend {
	return ind.Trend()
}

// PercentChange returns the magnitude of the move from the previous value,
// rounded to one decimal place. The sign lives in the trend arrow, not here.
// It reports false when there is no previous value or it is zero.
func PercentChange(ind core.Indicator) (string, bool) {
	if !ind.HasPrevious() || ind.Previous() == 0 {
		return "", false
	}
	ratio := ind.LatestValue / ind.Previous()
	var change float64
	if TrendOf(ind) == core.TrendUp {
		change = (ratio - 1) * 100
	} else {
		change = (1 - ratio) * 100
	}
	return decimal.NewFromFloat(change).StringFixed(1) + "%", true
}

// Arrow is the glyph that carries the sign of a change.
func Arrow(t core.Trend) string {
	switch t {
	case core.TrendUp:
		return "↑"
	case core.TrendDown:
		return "↓"
	}
	return ""
}
