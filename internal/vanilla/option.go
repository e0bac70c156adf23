// Package vanilla defines the European vanilla option contract and its
// valuation against a market snapshot: valuation date, spot, a discount
// curve, a dividend curve and a Black-Scholes-Merton model.
package vanilla

import (
	"errors"
	"fmt"

	"github.com/contactkeval/option-value/internal/dates"
	"github.com/contactkeval/option-value/internal/models"
)

// OptionType distinguishes calls from puts. Exercise is European only.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// ErrInvalidOptionType rejects an option type outside {call, put}.
var ErrInvalidOptionType = errors.New(`option type must be "call" or "put"`)

// ParseOptionType maps a config string to an OptionType.
func ParseOptionType(s string) (OptionType, error) {
	switch OptionType(s) {
	case Call, Put:
		return OptionType(s), nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidOptionType, s)
}

// IsCall reports whether the type is a call.
func (t OptionType) IsCall() bool { return t == Call }

// ExpiredOptionError reports a valuation date strictly after the option's
// expiry. Callers wanting settled behavior must clamp explicitly; the
// engine never does it for them.
type ExpiredOptionError struct {
	Valuation dates.Date
	Expiry    dates.Date
}

func (e *ExpiredOptionError) Error() string {
	return fmt.Sprintf("option expired: valuation date %s is after expiry %s", e.Valuation, e.Expiry)
}

// Option is an immutable vanilla option contract. It holds its own copy of
// the expiry date and is reused across many valuation calls with different
// market snapshots.
type Option struct {
	expiry dates.Date
	strike float64
	typ    OptionType
}

// NewOption builds a contract from an expiry date, a positive strike and a
// call/put type.
func NewOption(expiry dates.Date, strike float64, typ OptionType) (Option, error) {
	if expiry.IsZero() {
		return Option{}, errors.New("option expiry date is not set")
	}
	if strike <= 0 {
		return Option{}, &models.InvalidModelInputError{Param: models.ParamStrike, Value: strike, Index: -1}
	}
	if _, err := ParseOptionType(string(typ)); err != nil {
		return Option{}, err
	}
	return Option{expiry: expiry, strike: strike, typ: typ}, nil
}

// Expiry returns the contract's expiry date.
func (o Option) Expiry() dates.Date { return o.expiry }

// Strike returns the contract's strike.
func (o Option) Strike() float64 { return o.strike }

// Type returns call or put.
func (o Option) Type() OptionType { return o.typ }

func (o Option) String() string {
	return fmt.Sprintf("%s K=%v exp=%s", o.typ, o.strike, o.expiry)
}
