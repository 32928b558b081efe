package http

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"econdash/internal/core"
	"econdash/internal/log"
)

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// chipURL links a category chip, keeping the current search term.
func chipURL(country, category, search string) string {
	q := url.Values{}
	if category != "" && category != core.AllCategories {
		q.Set(ParamCategory, category)
	}
	if search != "" {
		q.Set(ParamSearch, search)
	}
	u := "/dashboard/" + url.PathEscape(country)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// errorTypeOf classifies a fetch failure for logging.
func errorTypeOf(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidArgument):
		return log.ErrorTypeValidation
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return log.ErrorTypeTimeout
	case core.StatusOf(err) != 0:
		return log.ErrorTypeRemote
	case errors.Is(err, core.ErrRemote):
		return log.ErrorTypeNetwork
	default:
		return log.ErrorTypeInternal
	}
}
