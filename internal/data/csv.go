package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/contactkeval/option-value/internal/dates"
	"github.com/contactkeval/option-value/internal/logger"
)

// csvQuote is one loaded row of the local quote file.
type csvQuote struct {
	close         float64
	dividendYield float64
	hasYield      bool
}

// csvQuoteProvider serves market data from a local CSV file, loaded once
// at construction. Expected layout, with a header row:
//
//	underlying,date,close[,dividend_yield]
//
// Dates use YYYY-MM-DD. The dividend_yield column is optional per row;
// rows without it answer GetSpot but not GetDividendYield.
type csvQuoteProvider struct {
	quotes    map[string]csvQuote
	secondary Provider
}

// NewCSVQuoteProvider reads and indexes the quote file at path.
func NewCSVQuoteProvider(path string, secondary Provider) (*csvQuoteProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quote file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read quote file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("quote file %s is empty", path)
	}

	prov := &csvQuoteProvider{
		quotes:    make(map[string]csvQuote, len(records)-1),
		secondary: secondary,
	}
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) < 3 {
			return nil, fmt.Errorf("quote file %s line %d: want at least 3 fields, got %d", path, line, len(rec))
		}

		underlying := strings.ToUpper(strings.TrimSpace(rec[0]))
		asOf, err := dates.Parse(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("quote file %s line %d: %w", path, line, err)
		}
		closePx, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("quote file %s line %d: close: %w", path, line, err)
		}

		q := csvQuote{close: closePx}
		if len(rec) >= 4 && strings.TrimSpace(rec[3]) != "" {
			q.dividendYield, err = strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
			if err != nil {
				return nil, fmt.Errorf("quote file %s line %d: dividend_yield: %w", path, line, err)
			}
			q.hasYield = true
		}
		prov.quotes[quoteKey(underlying, asOf)] = q
	}

	csvLog := logger.Component("data.csv")
	csvLog.Debug().Str("path", path).Int("rows", len(prov.quotes)).Msg("quote file loaded")
	return prov, nil
}

func quoteKey(underlying string, asOf dates.Date) string {
	return underlying + "|" + asOf.String()
}

// Secondary returns the configured fallback provider, if any.
func (csvProv *csvQuoteProvider) Secondary() Provider {
	return csvProv.secondary
}

// GetSpot returns the close for the underlying on asOf, consulting the
// secondary provider when the file has no matching row.
func (csvProv *csvQuoteProvider) GetSpot(underlying string, asOf dates.Date) (float64, error) {
	q, ok := csvProv.quotes[quoteKey(strings.ToUpper(underlying), asOf)]
	if ok {
		return q.close, nil
	}
	if csvProv.secondary != nil {
		return csvProv.secondary.GetSpot(underlying, asOf)
	}
	return 0, fmt.Errorf("%w: %s on %s", ErrNotFound, underlying, asOf)
}

// GetDividendYield returns the dividend yield for the underlying on asOf.
// Rows loaded without a dividend_yield column count as misses.
func (csvProv *csvQuoteProvider) GetDividendYield(underlying string, asOf dates.Date) (float64, error) {
	q, ok := csvProv.quotes[quoteKey(strings.ToUpper(underlying), asOf)]
	if ok && q.hasYield {
		return q.dividendYield, nil
	}
	if csvProv.secondary != nil {
		return csvProv.secondary.GetDividendYield(underlying, asOf)
	}
	return 0, fmt.Errorf("%w: dividend yield for %s on %s", ErrNotFound, underlying, asOf)
}

// ListUnderlyings returns the distinct underlyings present in the file,
// sorted ascending.
func (csvProv *csvQuoteProvider) ListUnderlyings() ([]string, error) {
	seen := make(map[string]struct{})
	for key := range csvProv.quotes {
		underlying, _, _ := strings.Cut(key, "|")
		seen[underlying] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for underlying := range seen {
		out = append(out, underlying)
	}
	sort.Strings(out)
	return out, nil
}
