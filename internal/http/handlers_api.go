package http

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/julienschmidt/httprouter"

	"econdash/internal/core"
	"econdash/internal/log"
)

// handleIndicators proxies the provider payload for :country unchanged.
// Failures never leak upstream detail to the client.
func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&s.appMetrics.apiRequests, 1)

	country := ParseCountry(httprouter.ParamsFromContext(r.Context()))
	if country == "" {
		CountryRequiredError().Write(w)
		return
	}

	body, err := s.service.Raw(r.Context(), country)
	if err != nil {
		if errors.Is(err, core.ErrInvalidArgument) {
			CountryRequiredError().Write(w)
			return
		}
		atomic.AddInt64(&s.appMetrics.fetchFailures, 1)
		log.NewStructuredLogger(log.FromContext(r.Context())).
			LogFetchFailure(r.Context(), country, core.StatusOf(err), errorTypeOf(err), err)
		FetchFailedError().Write(w)
		return
	}

	NewResponse().RawJSON(body).Write(w)
}

// handleMissingCountry answers /api/ with no country segment.
func (s *Server) handleMissingCountry(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&s.appMetrics.apiRequests, 1)
	CountryRequiredError().Write(w)
}
