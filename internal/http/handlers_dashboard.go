package http

import (
	"bytes"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/julienschmidt/httprouter"

	"econdash/internal/core"
	"econdash/internal/dashboard"
	"econdash/internal/log"
	"econdash/internal/middleware/trace"
)

// pageData feeds the shared header and footer templates.
type pageData struct {
	Title     string
	Country   string
	Category  string
	Search    string
	Generated string
	Year      int
}

func newPageData(country string, f dashboard.Filter) pageData {
	now := time.Now()
	p := pageData{
		Title:     core.CountryTitle(country),
		Country:   country,
		Search:    f.Search,
		Generated: now.Format("1/2/2006"),
		Year:      now.Year(),
	}
	if c := f.ActiveCategory(); c != core.AllCategories {
		p.Category = c
	}
	return p
}

// handleIndex renders the dashboard for the configured default country.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderDashboard(w, r, s.defaultCountry)
}

// handleDashboard renders the dashboard page for :country.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderDashboard(w, r, ParseCountry(httprouter.ParamsFromContext(r.Context())))
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, country string) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	if s.templates == nil {
		logger.ErrorContext(ctx, "Templates not loaded",
			log.FieldPath, r.URL.Path,
			log.FieldErrorType, log.ErrorTypeConfiguration)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	f := ParseFilter(r.URL.Query())
	if country == "" {
		s.renderError(w, r, http.StatusBadRequest, "Country is required",
			"Choose a country to load its economic indicators.", "")
		return
	}

	view, err := s.service.Dashboard(ctx, country, f)
	if err != nil {
		if errors.Is(err, core.ErrInvalidArgument) {
			s.renderError(w, r, http.StatusBadRequest, "Country is required",
				"Choose a country to load its economic indicators.", "")
			return
		}
		atomic.AddInt64(&s.appMetrics.fetchFailures, 1)
		log.NewStructuredLogger(logger).
			LogFetchFailure(ctx, country, core.StatusOf(err), errorTypeOf(err), err)
		s.renderError(w, r, http.StatusInternalServerError, "Error loading data",
			"Failed to fetch economic data. Please try again later.", country)
		return
	}
	log.NewStructuredLogger(logger).LogIndicatorsFetched(ctx, country, view.Total)

	data := struct {
		Page pageData
		View dashboard.View
	}{
		Page: newPageData(country, f),
		View: view,
	}

	// Render to a buffer so a template failure still yields a clean 500.
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "dashboard.html", data); err != nil {
		logger.ErrorContext(ctx, "Dashboard template execution failed",
			log.FieldError, err,
			log.FieldOperation, log.OpRender,
			log.FieldCountry, country)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	atomic.AddInt64(&s.appMetrics.dashboardsRendered, 1)
	logger.DebugContext(ctx, "Dashboard rendered",
		log.NewFields().
			WithCountry(country).
			WithFilter(f.ActiveCategory(), f.Search).
			WithOperation(log.OpRender).
			ToSlice()...)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// renderError writes the error page with status. It degrades to plain text
// when templates are missing or fail.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, heading, message, country string) {
	if s.templates == nil {
		http.Error(w, message, status)
		return
	}

	data := struct {
		Page      pageData
		Heading   string
		Message   string
		RequestID string
	}{
		Page:      newPageData(country, dashboard.Filter{}),
		Heading:   heading,
		Message:   message,
		RequestID: trace.GetRequestID(r.Context()),
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "error.html", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Error template execution failed",
			log.FieldError, err,
			log.FieldOperation, log.OpRender)
		http.Error(w, message, status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
