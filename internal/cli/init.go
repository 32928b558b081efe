// Package cli provides common CLI initialization utilities shared by the
// econdash subcommands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"econdash/internal/config"
	"econdash/internal/log"
	"econdash/internal/provider"
	"econdash/internal/provider/memory"
	"econdash/internal/provider/tradingeconomics"
)

// SetupLogger builds the application logger from cfg and installs it as the
// slog default. Without LOG_LEVEL, production logs at info and everything
// else at debug.
func SetupLogger(cfg *config.Config, w io.Writer) *log.Logger {
	fallback := slog.LevelDebug
	if cfg.IsProduction() {
		fallback = slog.LevelInfo
	}
	level := log.ParseLevel(cfg.LogLevel, fallback)

	logger := log.New(log.Config{
		Level:     level,
		Component: log.ComponentApp,
		Handler:   log.NewHandler(w, cfg.LogFormat, level),
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewSource builds the indicator source selected by DATA_BACKEND.
func NewSource(cfg *config.Config, logger *log.Logger) (provider.IndicatorSource, error) {
	switch cfg.DataBackend {
	case provider.BackendTradingEconomics:
		logger.Info("Initialized indicators provider",
			log.FieldBackend, cfg.DataBackend,
			"base_url", cfg.ProviderBaseURL)
		return tradingeconomics.New(tradingeconomics.Config{
			BaseURL: cfg.ProviderBaseURL,
			APIKey:  cfg.ProviderAPIKey,
		}, http.DefaultClient), nil
	case provider.BackendMemory:
		store := memory.NewFromFiles(cfg.FixturesDir)
		countries := store.Countries()
		if len(countries) == 0 {
			logger.Warn("No fixtures loaded", "dir", cfg.FixturesDir)
		}
		logger.Info("Initialized memory backend",
			log.FieldBackend, cfg.DataBackend,
			"dir", cfg.FixturesDir,
			"countries", countries)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// Server is the part of an http.Server that Serve drives.
type Server interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// Serve runs srv until it fails or ctx is cancelled, then shuts it down
// within timeout.
func Serve(ctx context.Context, srv Server, timeout time.Duration, logger *log.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Shutdown did not complete cleanly", log.FieldError, err)
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("Shutdown complete")
		return nil
	})

	return g.Wait()
}
