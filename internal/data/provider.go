// Package data supplies market observations to the scenario layer: spot
// closes and dividend yields by underlying and date. The valuation core
// never imports it; every core input arrives as an argument.
package data

import (
	"errors"

	"github.com/contactkeval/option-value/internal/dates"
)

// ErrNotFound reports that a provider has no observation for the requested
// underlying and date.
var ErrNotFound = errors.New("no market data found")

// Provider serves market observations for scenario construction.
//
// Implementations may chain: a provider with a secondary delegates there
// on misses, so a local file source can sit in front of a remote API.
type Provider interface {
	// Secondary returns the fallback provider consulted on misses, or nil.
	Secondary() Provider

	// GetSpot returns the underlying's closing price as of a date.
	GetSpot(underlying string, asOf dates.Date) (float64, error)

	// GetDividendYield returns the underlying's annualized continuous
	// dividend yield as of a date.
	GetDividendYield(underlying string, asOf dates.Date) (float64, error)

	// ListUnderlyings returns the distinct underlyings the provider can
	// serve, sorted.
	ListUnderlyings() ([]string, error)
}
