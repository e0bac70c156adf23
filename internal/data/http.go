package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/contactkeval/option-value/internal/dates"
	"github.com/contactkeval/option-value/internal/logger"
)

// httpQuoteProvider implements Provider against the Massive quotes API
// using raw HTTP calls: bearer authentication, cursor pagination and
// per-minute rate-limit retries.
type httpQuoteProvider struct {
	// APIKey authenticates requests as a bearer token.
	APIKey string

	// Client is the HTTP client used for API requests.
	Client *http.Client

	// BaseURL is the root endpoint (e.g. https://api.massive.com). Tests
	// point it at a local server.
	BaseURL string

	secondary Provider
	log       zerolog.Logger
}

// dailyCloseResp models the daily open/close endpoint response.
type dailyCloseResp struct {
	Status string  `json:"status"`
	Symbol string  `json:"symbol"`
	From   string  `json:"from"`
	Close  float64 `json:"close"`
}

// dividendYieldResp models the dividend-yield reference endpoint response.
type dividendYieldResp struct {
	Status  string `json:"status"`
	Results struct {
		Ticker string  `json:"ticker"`
		Yield  float64 `json:"yield"`
	} `json:"results"`
}

// tickersResp models the paginated tickers reference endpoint response.
type tickersResp struct {
	Results []struct {
		Ticker string `json:"ticker"`
	} `json:"results"`
	Status  string `json:"status"`
	NextURL string `json:"next_url"`
}

// NewHTTPQuoteProvider constructs a quotes-API-backed provider. The HTTP
// client keeps pooled connections and attempts HTTP/2.
func NewHTTPQuoteProvider(apiKey string, secondary Provider) *httpQuoteProvider {
	return &httpQuoteProvider{
		APIKey: apiKey,
		Client: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		BaseURL:   "https://api.massive.com",
		secondary: secondary,
		log:       logger.Component("data.http"),
	}
}

// Secondary returns the configured fallback provider, if any.
func (httpProv *httpQuoteProvider) Secondary() Provider {
	return httpProv.secondary
}

// GetSpot fetches the underlying's official daily close. On any request
// failure the secondary provider is consulted before giving up.
func (httpProv *httpQuoteProvider) GetSpot(underlying string, asOf dates.Date) (float64, error) {
	reqURL := fmt.Sprintf("%s/v1/open-close/%s/%s", httpProv.BaseURL, underlying, asOf)

	var decoded dailyCloseResp
	if err := httpProv.getJSON(reqURL, &decoded); err != nil {
		return httpProv.spotFallback(underlying, asOf, err)
	}
	if decoded.Status != "OK" || decoded.Close <= 0 {
		return httpProv.spotFallback(underlying, asOf, fmt.Errorf("%w: %s on %s", ErrNotFound, underlying, asOf))
	}

	httpProv.log.Debug().Str("underlying", underlying).Stringer("as_of", asOf).Float64("close", decoded.Close).Msg("spot fetched")
	return decoded.Close, nil
}

func (httpProv *httpQuoteProvider) spotFallback(underlying string, asOf dates.Date, err error) (float64, error) {
	if httpProv.secondary != nil {
		httpProv.log.Warn().Err(err).Str("underlying", underlying).Msg("falling back to secondary provider")
		return httpProv.secondary.GetSpot(underlying, asOf)
	}
	return 0, err
}

// GetDividendYield fetches the underlying's annualized dividend yield.
func (httpProv *httpQuoteProvider) GetDividendYield(underlying string, asOf dates.Date) (float64, error) {
	reqURL := fmt.Sprintf("%s/v1/reference/dividend-yield/%s?date=%s", httpProv.BaseURL, underlying, asOf)

	var decoded dividendYieldResp
	err := httpProv.getJSON(reqURL, &decoded)
	switch {
	case err == nil && decoded.Status == "OK":
		return decoded.Results.Yield, nil
	case err == nil:
		err = fmt.Errorf("%w: dividend yield for %s on %s", ErrNotFound, underlying, asOf)
	}
	if httpProv.secondary != nil {
		httpProv.log.Warn().Err(err).Str("underlying", underlying).Msg("falling back to secondary provider")
		return httpProv.secondary.GetDividendYield(underlying, asOf)
	}
	return 0, err
}

// ListUnderlyings walks the paginated tickers reference endpoint,
// following next_url cursors until exhausted.
func (httpProv *httpQuoteProvider) ListUnderlyings() ([]string, error) {
	reqURL := fmt.Sprintf("%s/v3/reference/tickers?market=stocks&active=true&limit=1000", httpProv.BaseURL)

	seen := make(map[string]struct{})
	var out []string
	for page := 0; reqURL != ""; page++ {
		var decoded tickersResp
		if err := httpProv.getJSON(reqURL, &decoded); err != nil {
			return nil, fmt.Errorf("list underlyings page %d: %w", page, err)
		}
		for _, res := range decoded.Results {
			if _, ok := seen[res.Ticker]; ok {
				continue
			}
			seen[res.Ticker] = struct{}{}
			out = append(out, res.Ticker)
		}
		reqURL = decoded.NextURL
	}

	sort.Strings(out)
	httpProv.log.Debug().Int("count", len(out)).Msg("underlyings listed")
	return out, nil
}

// getJSON performs an authenticated GET and decodes the JSON body.
func (httpProv *httpQuoteProvider) getJSON(reqURL string, into any) error {
	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+httpProv.APIKey)

	resp, err := httpProv.processGetRequest(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(into)
}

// processGetRequest executes a GET with rate-limit handling: on HTTP 429
// it sleeps to the next minute boundary and retries, since the quota
// resets per minute. Other >= 400 statuses fail immediately.
func (httpProv *httpQuoteProvider) processGetRequest(req *http.Request) (*http.Response, error) {
	for {
		resp, err := httpProv.Client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 400 {
			return resp, nil
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()

			sleep := time.Until(time.Now().Truncate(time.Minute).Add(time.Minute))
			httpProv.log.Info().Dur("sleep", sleep).Msg("rate limit hit, waiting for quota reset")
			time.Sleep(sleep)
			continue
		}
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}
