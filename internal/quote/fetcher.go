package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrUpstream is returned on network failure, timeout, or a non-2xx response.
	ErrUpstream = errors.New("quote service unavailable")
	// ErrBadPayload is returned when the response is missing required fields.
	ErrBadPayload = errors.New("malformed quote response")
)

// Quote is the result of a single lookup against the external quote service.
type Quote struct {
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
}

// Fetcher resolves a symbol to a quote with one outbound HTTP call.
// No retries, no caching — exactly one attempt per call.
type Fetcher struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewFetcher creates a Fetcher for the given quote service URL and API key.
func NewFetcher(baseURL, apiKey string) *Fetcher {
	return &Fetcher{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchQuote looks up the current quote for symbol.
func (f *Fetcher) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid quote service URL: %w", err)
	}
	q := u.Query()
	q.Set("symbol", symbol)
	if f.apiKey != "" {
		q.Set("token", f.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	// Pointer fields distinguish a missing key from a zero value.
	var payload struct {
		Name   *string  `json:"name"`
		Price  *float64 `json:"price"`
		Change *float64 `json:"change"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if payload.Name == nil || payload.Price == nil || payload.Change == nil {
		return nil, fmt.Errorf("%w: missing required fields", ErrBadPayload)
	}

	return &Quote{
		Name:   *payload.Name,
		Price:  *payload.Price,
		Change: *payload.Change,
	}, nil
}
