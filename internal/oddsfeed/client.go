// Package oddsfeed fetches live provider quotes for the worst-odds
// comparisons from an upstream odds API.
package oddsfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/yourusername/bad-bets/internal/models"
)

const (
	quotesPath   = "/v1/quotes"
	apiKeyHeader = "X-API-Key"
	maxBodyBytes = 1 << 20
)

var (
	// ErrUpstreamStatus is returned for non-2xx feed responses.
	ErrUpstreamStatus = errors.New("unexpected odds feed status")
	// ErrEmptyQuotes is returned when the feed knows no quotes for a bet.
	ErrEmptyQuotes = errors.New("odds feed returned no quotes")
)

type quotesResponse struct {
	Match  string `json:"match"`
	Bet    string `json:"bet"`
	Quotes []struct {
		Provider string  `json:"provider"`
		Odds     float64 `json:"odds"`
	} `json:"quotes"`
}

// Client talks to the odds feed API.
type Client struct {
	http    *RateLimitedHTTPClient
	baseURL string
	apiKey  string
}

// NewClient creates a feed client on top of a rate-limited HTTP client.
func NewClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// FetchQuotes returns the current quotes for one bet on one match, in feed order.
func (c *Client) FetchQuotes(ctx context.Context, match, bet string) ([]models.Quote, error) {
	q := url.Values{}
	q.Set("match", match)
	q.Set("bet", bet)
	endpoint := c.baseURL + quotesPath + "?" + q.Encode()

	header := http.Header{}
	header.Set("Accept", "application/json")
	if c.apiKey != "" {
		header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.http.Get(ctx, endpoint, header)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quotes for %q: %w", match, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	var payload quotesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode quotes: %w", err)
	}

	quotes := make([]models.Quote, 0, len(payload.Quotes))
	for _, pq := range payload.Quotes {
		if pq.Provider == "" {
			continue
		}
		quotes = append(quotes, models.Quote{Provider: pq.Provider, Odds: pq.Odds})
	}
	if len(quotes) == 0 {
		return nil, ErrEmptyQuotes
	}
	return quotes, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.http.Close()
}
