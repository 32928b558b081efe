package dashboard

import (
	"strconv"
	"time"

	"econdash/internal/core"
)

// NotAvailable is shown in place of a headline value the provider did not report.
const NotAvailable = "N/A"

var dateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// FormatValue renders the latest value with its unit. Percent units get a
// "%" suffix; every other unit is appended verbatim after a space.
func FormatValue(ind core.Indicator) string {
	value := formatNumber(ind.LatestValue)
	if ind.Unit == "percent" || ind.Unit == "percent of GDP" {
		return value + "%"
	}
	return value + " " + ind.Unit
}

// FormatDate renders provider timestamps as M/D/YYYY. Anything that does not
// parse is returned unchanged.
func FormatDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("1/2/2006")
		}
	}
	return s
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
