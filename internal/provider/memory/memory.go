// Package memory serves indicator payloads from JSON fixtures on disk, one
// file per country (<dir>/<country>.json). It stands in for the remote
// provider during local development.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"econdash/internal/core"
	"econdash/internal/provider"
)

type Store struct {
	mu       sync.Mutex
	payloads map[string][]byte
}

var _ provider.IndicatorSource = (*Store)(nil)

// New builds a store from in-memory payloads keyed by country.
func New(payloads map[string][]byte) *Store {
	s := &Store{payloads: make(map[string][]byte, len(payloads))}
	for country, body := range payloads {
		s.payloads[key(country)] = append([]byte(nil), body...)
	}
	return s
}

// NewFromFiles loads every *.json file under base. Files that are not valid
// JSON are skipped.
func NewFromFiles(base string) *Store {
	payloads := map[string][]byte{}
	matches, _ := filepath.Glob(filepath.Join(base, "*.json"))
	for _, path := range matches {
		body, err := os.ReadFile(path)
		if err != nil || !json.Valid(body) {
			continue
		}
		country := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		payloads[country] = body
	}
	return New(payloads)
}

// Countries lists the loaded countries.
func (s *Store) Countries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.payloads))
	for c := range s.payloads {
		out = append(out, c)
	}
	return out
}

// RawIndicators returns a copy of the fixture for country.
func (s *Store) RawIndicators(_ context.Context, country string) ([]byte, error) {
	country = core.NormalizeCountry(country)
	if country == "" {
		return nil, core.InvalidArgument(core.ErrEmptyCountry)
	}
	s.mu.Lock()
	body, ok := s.payloads[key(country)]
	s.mu.Unlock()
	if !ok {
		return nil, core.RemoteError(country, http.StatusNotFound, errors.New("no fixture loaded"))
	}
	return append([]byte(nil), body...), nil
}

// Indicators decodes the fixture for country.
func (s *Store) Indicators(ctx context.Context, country string) ([]core.Indicator, error) {
	body, err := s.RawIndicators(ctx, country)
	if err != nil {
		return nil, err
	}
	var out []core.Indicator
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, core.RemoteError(core.NormalizeCountry(country), 0, fmt.Errorf("parse fixture: %w", err))
	}
	return out, nil
}

func key(country string) string {
	return strings.ToLower(strings.TrimSpace(country))
}
