package data

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/contactkeval/option-value/internal/dates"
)

var asOf = dates.MustNew(2025, time.January, 14)

// stubProvider answers every call with fixed values.
type stubProvider struct {
	spot  float64
	yield float64
}

func (s *stubProvider) Secondary() Provider                         { return nil }
func (s *stubProvider) GetSpot(string, dates.Date) (float64, error) { return s.spot, nil }
func (s *stubProvider) ListUnderlyings() ([]string, error)          { return []string{"STUB"}, nil }
func (s *stubProvider) GetDividendYield(string, dates.Date) (float64, error) {
	return s.yield, nil
}

func TestHTTPProvider_GetSpot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("bad auth header: %q", got)
		}
		if r.URL.Path != "/v1/open-close/SPY/2025-01-14" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":"OK","symbol":"SPY","from":"2025-01-14","close":581.39}`))
	}))
	defer srv.Close()

	p := NewHTTPQuoteProvider("test-key", nil)
	p.Client = srv.Client()
	p.BaseURL = srv.URL // IMPORTANT

	spot, err := p.GetSpot("SPY", asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spot != 581.39 {
		t.Fatalf("expected 581.39, got %f", spot)
	}
}

func TestHTTPProvider_GetSpot_HTTPError(t *testing.T) {
	// fake server returning 500
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"internal error"}`))
	}))
	defer srv.Close()

	p := NewHTTPQuoteProvider("test", nil)
	p.Client = srv.Client()
	p.BaseURL = srv.URL

	_, err := p.GetSpot("AAPL", asOf)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestHTTPProvider_GetSpot_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"NOT_FOUND"}`))
	}))
	defer srv.Close()

	p := NewHTTPQuoteProvider("test", nil)
	p.Client = srv.Client()
	p.BaseURL = srv.URL

	_, err := p.GetSpot("ZZZZ", asOf)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHTTPProvider_SecondaryFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewHTTPQuoteProvider("test", &stubProvider{spot: 123.45, yield: 0.01})
	p.Client = srv.Client()
	p.BaseURL = srv.URL

	spot, err := p.GetSpot("SPY", asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spot != 123.45 {
		t.Fatalf("expected secondary spot 123.45, got %f", spot)
	}

	yield, err := p.GetDividendYield("SPY", asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if yield != 0.01 {
		t.Fatalf("expected secondary yield 0.01, got %f", yield)
	}
}

func TestHTTPProvider_GetDividendYield(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/reference/dividend-yield/SPY" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("date"); got != "2025-01-14" {
			t.Errorf("unexpected date param: %q", got)
		}
		w.Write([]byte(`{"status":"OK","results":{"ticker":"SPY","yield":0.0131}}`))
	}))
	defer srv.Close()

	p := NewHTTPQuoteProvider("test", nil)
	p.Client = srv.Client()
	p.BaseURL = srv.URL

	yield, err := p.GetDividendYield("SPY", asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if yield != 0.0131 {
		t.Fatalf("expected 0.0131, got %f", yield)
	}
}

func TestHTTPProvider_Pagination(t *testing.T) {
	callCount := 0

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++

		if callCount == 1 {
			w.Write([]byte(`{
				"results": [{"ticker":"SPY"},{"ticker":"AAPL"}],
				"status": "OK",
				"next_url": "` + srv.URL + `/page2"
			}`))
			return
		}

		w.Write([]byte(`{
				"results": [{"ticker":"QQQ"},{"ticker":"AAPL"}],
				"status": "OK"
			}`))
	}))
	defer srv.Close()

	p := NewHTTPQuoteProvider("test", nil)
	p.Client = srv.Client()
	p.BaseURL = srv.URL

	got, err := p.ListUnderlyings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if callCount != 2 {
		t.Fatalf("expected 2 pages fetched, got %d", callCount)
	}

	want := []string{"AAPL", "QQQ", "SPY"}
	if len(got) != len(want) {
		t.Fatalf("expected %d underlyings, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("underlying %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
