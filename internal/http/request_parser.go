// Package http provides HTTP server and handler implementations.
//
// This file turns route parameters and query strings into the inputs of the
// dashboard: the requested country and the active filter.

package http

import (
	"net/url"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"

	"econdash/internal/core"
	"econdash/internal/dashboard"
)

// Query parameter names understood by the dashboard routes.
const (
	ParamCategory = "category"
	ParamSearch   = "q"

	// maxParamLength bounds category and search input, in runes.
	maxParamLength = 100
)

// ParseCountry extracts and normalizes the :country route parameter.
// An empty result means the country is missing.
func ParseCountry(ps httprouter.Params) string {
	return core.NormalizeCountry(sanitizeInput(ps.ByName("country")))
}

// ParseFilter builds the dashboard filter from query parameters. Both values
// are sanitized and truncated; a missing category selects every group.
func ParseFilter(query url.Values) dashboard.Filter {
	f := dashboard.Filter{
		Category: truncate(sanitizeInput(query.Get(ParamCategory)), maxParamLength),
		Search:   truncate(sanitizeInput(query.Get(ParamSearch)), maxParamLength),
	}
	if f.Category == "" {
		f.Category = core.AllCategories
	}
	return f
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
