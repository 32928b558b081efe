// Package tradingeconomics implements the indicators source backed by the
// Trading Economics country endpoint:
//
//	GET {baseURL}/country/{country}?c={apiKey}
//
// The response body is a JSON array of indicator objects.
package tradingeconomics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"econdash/internal/core"
	"econdash/internal/provider"
)

const DefaultBaseURL = "https://api.tradingeconomics.com"

// Config holds what the client needs to reach the provider.
type Config struct {
	BaseURL string
	APIKey  string
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Ensure interface conformance
var _ provider.IndicatorSource = (*Client)(nil)

// New creates a client. A nil httpClient means http.DefaultClient; no
// timeout is added on top of what the transport and the caller's context
// already impose.
func New(cfg Config, httpClient *http.Client) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: base, apiKey: cfg.APIKey, http: httpClient}
}

// Indicators fetches and decodes the indicator list for country.
func (c *Client) Indicators(ctx context.Context, country string) ([]core.Indicator, error) {
	body, err := c.RawIndicators(ctx, country)
	if err != nil {
		return nil, err
	}
	var out []core.Indicator
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, core.RemoteError(core.NormalizeCountry(country), 0, fmt.Errorf("parse indicators: %w", err))
	}
	return out, nil
}

// RawIndicators performs the single outbound request and returns the body
// once it is known to be valid JSON.
func (c *Client) RawIndicators(ctx context.Context, country string) ([]byte, error) {
	country = core.NormalizeCountry(country)
	if country == "" {
		return nil, core.InvalidArgument(core.ErrEmptyCountry)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.countryURL(country), nil)
	if err != nil {
		return nil, core.RemoteError(country, 0, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, core.RemoteError(country, 0, redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, core.RemoteError(country, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.RemoteError(country, 0, fmt.Errorf("read response: %w", err))
	}
	if !json.Valid(body) {
		return nil, core.RemoteError(country, 0, errors.New("parse indicators: response is not valid JSON"))
	}
	return body, nil
}

func (c *Client) countryURL(country string) string {
	return c.baseURL + "/country/" + url.PathEscape(country) + "?c=" + url.QueryEscape(c.apiKey)
}

// redact strips the API key from transport errors, which embed the request URL.
func redact(err error, key string) error {
	var uerr *url.Error
	if key == "" || !errors.As(err, &uerr) {
		return err
	}
	return &url.Error{
		Op:  uerr.Op,
		URL: strings.ReplaceAll(uerr.URL, url.QueryEscape(key), "REDACTED"),
		Err: uerr.Err,
	}
}
