// Package quotes fetches live market prices from the EODHD real-time API.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rebalancer/internal/errors"
	"rebalancer/internal/logger"
)

// Fetcher returns current prices for the given tickers. Tickers with no
// available quote are absent from the returned map.
type Fetcher interface {
	FetchPrices(ctx context.Context, tickers []string) (map[string]float64, error)
}

type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a quote fetcher against the EODHD real-time endpoint.
func NewClient(baseURL, apiKey string, timeout time.Duration) Fetcher {
	return &client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// quote is the subset of the EODHD real-time payload we care about.
type quote struct {
	Code          string          `json:"code"`
	Close         json.RawMessage `json:"close"`
	PreviousClose json.RawMessage `json:"previousClose"`
}

// price returns the latest trade price, falling back to the previous close.
// EODHD reports "NA" as a string for quotes it cannot price, hence the raw
// message decoding.
func (q quote) price() (float64, bool) {
	if p, ok := decodePrice(q.Close); ok {
		return p, true
	}
	return decodePrice(q.PreviousClose)
}

func decodePrice(raw json.RawMessage) (float64, bool) {
	var p float64
	if err := json.Unmarshal(raw, &p); err != nil || p <= 0 {
		return 0, false
	}
	return p, true
}

// FetchPrices fetches live prices for the given tickers in one batched
// request. The first ticker goes in the path, the rest in the "s" parameter.
func (c *client) FetchPrices(ctx context.Context, tickers []string) (map[string]float64, error) {
	if len(tickers) == 0 {
		return map[string]float64{}, nil
	}
	if c.apiKey == "" {
		return nil, errors.ErrQuoteFetchFailed
	}

	symbols := make([]string, len(tickers))
	for i, t := range tickers {
		symbols[i] = symbol(t)
	}

	params := url.Values{}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")
	if len(symbols) > 1 {
		params.Set("s", strings.Join(symbols[1:], ","))
	}
	addr := fmt.Sprintf("%s/%s?%s", c.baseURL, symbols[0], params.Encode())

	var payload []quote
	if err := c.jwget(ctx, addr, len(symbols), &payload); err != nil {
		logger.Get().Warnw("Live price fetch failed", "error", err, "tickers", len(tickers))
		return nil, errors.Wrap(errors.ErrQuoteFetchFailed, err)
	}

	prices := make(map[string]float64, len(payload))
	for _, q := range payload {
		p, ok := q.price()
		if !ok {
			continue
		}
		// Codes come back suffixed with the exchange, e.g. "VTI.US".
		ticker := strings.ToUpper(strings.TrimSuffix(q.Code, ".US"))
		prices[ticker] = p
	}
	return prices, nil
}

// jwget performs an HTTP GET and unmarshals the JSON response. The API
// returns a bare object instead of an array when a single symbol is
// requested.
func (c *client) jwget(ctx context.Context, addr string, symbols int, payload *[]quote) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if symbols == 1 {
		var single quote
		if err := json.Unmarshal(body, &single); err != nil {
			return err
		}
		*payload = []quote{single}
		return nil
	}
	return json.Unmarshal(body, payload)
}

// symbol maps a bare US ticker to the EODHD symbol form.
func symbol(ticker string) string {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if strings.Contains(ticker, ".") {
		return ticker
	}
	return ticker + ".US"
}
