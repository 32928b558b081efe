package dashboard

import (
	"context"
	"fmt"

	"econdash/internal/core"
	"econdash/internal/provider"
)

// Service fetches indicators through an IndicatorSource and builds views.
// Every call goes upstream under its caller's context; nothing is shared
// between requests.
type Service struct {
	source provider.IndicatorSource
}

func NewService(source provider.IndicatorSource) *Service {
	return &Service{source: source}
}

// Raw returns the provider payload for country unchanged.
func (s *Service) Raw(ctx context.Context, country string) ([]byte, error) {
	country = core.NormalizeCountry(country)
	if country == "" {
		return nil, core.InvalidArgument(core.ErrEmptyCountry)
	}
	return s.source.RawIndicators(ctx, country)
}

// Indicators returns the decoded indicator list for country.
func (s *Service) Indicators(ctx context.Context, country string) ([]core.Indicator, error) {
	country = core.NormalizeCountry(country)
	if country == "" {
		return nil, core.InvalidArgument(core.ErrEmptyCountry)
	}
	return s.source.Indicators(ctx, country)
}

// Dashboard fetches country and builds its view under filter f.
func (s *Service) Dashboard(ctx context.Context, country string, f Filter) (View, error) {
	list, err := s.Indicators(ctx, country)
	if err != nil {
		return View{}, fmt.Errorf("load dashboard: %w", err)
	}
	return Build(core.NormalizeCountry(country), list, f), nil
}
