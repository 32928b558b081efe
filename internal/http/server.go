package http

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"

	"econdash/internal/dashboard"
	"econdash/internal/log"
	"econdash/internal/middleware/ratelimit"
	"econdash/internal/middleware/security"
	"econdash/internal/middleware/trace"
	appweb "econdash/web"
)

// staticMaxAge is the Cache-Control max-age for embedded assets, in seconds.
const staticMaxAge = 3600

// Options configures a Server. Service is required; zero values elsewhere
// fall back to defaults.
type Options struct {
	Addr               string
	Service            *dashboard.Service
	DefaultCountry     string
	RateLimitPerMinute int
	TrustedProxies     []string
	Logger             *log.Logger

	// Templates and Static default to the embedded web assets. Templates must
	// hold a templates/ directory.
	Templates fs.FS
	Static    fs.FS
}

type Server struct {
	http.Server
	templates      *template.Template
	service        *dashboard.Service
	defaultCountry string
	logger         *log.Logger

	securityDetector *security.Detector
	rateLimiter      *ratelimit.Limiter
	traceMiddleware  *trace.Middleware
	appMetrics       *appMetrics

	shutdownOnce sync.Once
}

// appMetrics tracks application-level counters exposed on /metrics.
type appMetrics struct {
	uptime             time.Time
	apiRequests        int64
	dashboardsRendered int64
	fetchFailures      int64
}

// templateFuncs are available to every page template.
var templateFuncs = template.FuncMap{
	"arrow":   dashboard.Arrow,
	"chipURL": chipURL,
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run http.Server. A template parse failure is logged and leaves the
// server not ready; it is not an error.
func NewServer(opts Options) (*Server, error) {
	if opts.Service == nil {
		return nil, errors.New("dashboard service is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.DefaultCountry == "" {
		opts.DefaultCountry = "sweden"
	}

	logger := opts.Logger.WithComponent(log.ComponentHTTP)

	detector, err := security.NewDetector(opts.TrustedProxies...)
	if err != nil {
		return nil, fmt.Errorf("configure trusted proxies: %w", err)
	}

	limiterCfg := ratelimit.DefaultConfig()
	if opts.RateLimitPerMinute > 0 {
		limiterCfg.RequestsPerMinute = opts.RateLimitPerMinute
	}

	s := &Server{
		service:          opts.Service,
		defaultCountry:   opts.DefaultCountry,
		logger:           logger,
		securityDetector: detector,
		rateLimiter:      ratelimit.NewLimiter(limiterCfg),
		traceMiddleware:  trace.NewMiddleware(detector.ExtractClientIP, logger),
		appMetrics:       &appMetrics{uptime: time.Now()},
	}

	templatesFS := opts.Templates
	if templatesFS == nil {
		templatesFS = appweb.TemplatesFS
	}
	t, err := template.New("econdash").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates",
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeConfiguration)
	} else {
		s.templates = t
	}

	router := httprouter.New()

	staticFS := opts.Static
	if staticFS == nil {
		if staticFS, err = appweb.Static(); err != nil {
			logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
		}
	}
	if staticFS != nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		router.Handler(http.MethodGet, "/static/*filepath", security.StaticAssetMiddleware(staticMaxAge)(static))
	}

	apiHeaders := security.NewHeadersMiddleware(security.APIHeadersConfig())
	apiLimit := s.rateLimiter.Middleware(detector.ExtractClientIP, s.handleAPIRateLimited)
	pageLimit := s.rateLimiter.Middleware(detector.ExtractClientIP, s.handlePageRateLimited)

	api := func(h http.HandlerFunc) http.Handler {
		return apiHeaders.Middleware(apiLimit(h))
	}

	router.Handler(http.MethodGet, "/api/:country", api(s.handleIndicators))
	router.Handler(http.MethodGet, "/api/", api(s.handleMissingCountry))
	router.Handler(http.MethodGet, "/", pageLimit(http.HandlerFunc(s.handleIndex)))
	router.Handler(http.MethodGet, "/dashboard/:country", pageLimit(http.HandlerFunc(s.handleDashboard)))
	router.HandlerFunc(http.MethodGet, "/healthz", s.handleHealth)
	router.HandlerFunc(http.MethodGet, "/readyz", s.handleReady)
	router.HandlerFunc(http.MethodGet, "/metrics", s.handleMetrics)

	// Outermost first: logger, trace, suspicious request detection, headers.
	var handler http.Handler = router
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = detector.Middleware(handler)
	handler = s.traceMiddleware.Middleware(handler)
	handler = log.Middleware(logger)(handler)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64KB
	}

	return s, nil
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
		if shutdownErr != nil {
			s.logger.Warn("HTTP server shutdown incomplete", log.FieldError, shutdownErr)
		}
	})

	return shutdownErr
}
