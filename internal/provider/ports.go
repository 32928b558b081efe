package provider

import (
	"context"

	"econdash/internal/core"
)

// Ports for outbound adapters.
type (
	// IndicatorSource fetches the full indicator list for one country.
	// Implementations fail with a *core.FetchError: ErrInvalidArgument for an
	// empty country (before any I/O) and ErrRemote for everything else.
	IndicatorSource interface {
		Indicators(ctx context.Context, country string) ([]core.Indicator, error)
		// RawIndicators returns the provider's JSON payload unchanged.
		RawIndicators(ctx context.Context, country string) ([]byte, error)
	}
)

// Backend names accepted by DATA_BACKEND.
const (
	BackendTradingEconomics = "tradingeconomics"
	BackendMemory           = "memory"
)
