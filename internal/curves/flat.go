// Package curves provides the flat term-structure curve used for
// discounting payoffs and for dividend-yield adjustment. One rate applies
// to every tenor; the two uses differ only in how the valuation step
// consumes the factor.
package curves

import (
	"fmt"
	"math"

	"github.com/contactkeval/option-value/internal/dates"
)

// Frequency is the compounding basis of a curve's rate. The numeric value
// of a periodic frequency is its compounding count per year; Continuous is
// the zero value.
type Frequency int

const (
	Continuous Frequency = 0
	Annual     Frequency = 1
	SemiAnnual Frequency = 2
	Quarterly  Frequency = 4
	Monthly    Frequency = 12
)

func (f Frequency) String() string {
	switch f {
	case Continuous:
		return "continuous"
	case Annual:
		return "annual"
	case SemiAnnual:
		return "semiannual"
	case Quarterly:
		return "quarterly"
	case Monthly:
		return "monthly"
	}
	return fmt.Sprintf("Frequency(%d)", int(f))
}

// ParseFrequency maps a config string to a Frequency. The empty string
// selects Continuous.
func ParseFrequency(s string) (Frequency, error) {
	switch s {
	case "", "continuous":
		return Continuous, nil
	case "annual":
		return Annual, nil
	case "semiannual":
		return SemiAnnual, nil
	case "quarterly":
		return Quarterly, nil
	case "monthly":
		return Monthly, nil
	}
	return 0, fmt.Errorf("unknown compounding frequency %q", s)
}

// InvalidTenorError reports a discount-factor query over a negative tenor,
// either as a raw year count or as a date pair in reverse order.
type InvalidTenorError struct {
	From dates.Date
	To   dates.Date
	Tau  float64
}

func (e *InvalidTenorError) Error() string {
	if e.From.IsZero() && e.To.IsZero() {
		return fmt.Sprintf("invalid tenor %v: must be non-negative", e.Tau)
	}
	return fmt.Sprintf("invalid tenor: to date %s is before from date %s", e.To, e.From)
}

// InvalidRateError reports a periodic rate at or below -f, where the
// compounding base 1 + r/f stops being positive and the discount factor is
// undefined.
type InvalidRateError struct {
	Rate float64
	Freq Frequency
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("invalid rate %v under %s compounding: 1 + r/%d must be positive", e.Rate, e.Freq, int(e.Freq))
}

// Flat is a term structure constant in its annualized rate. It is an
// immutable value; one instance may be shared freely across concurrent
// valuations.
type Flat struct {
	anchor dates.Date
	rate   float64
	freq   Frequency
}

// NewFlat builds a flat curve anchored at the given date. For a periodic
// frequency f the rate must satisfy 1 + rate/f > 0; factor queries on a
// curve violating that fail with *InvalidRateError.
func NewFlat(anchor dates.Date, rate float64, freq Frequency) Flat {
	return Flat{anchor: anchor, rate: rate, freq: freq}
}

// Anchor returns the curve's anchor date.
func (c Flat) Anchor() dates.Date { return c.anchor }

// Rate returns the curve's annualized rate under its compounding basis.
func (c Flat) Rate() float64 { return c.rate }

// Frequency returns the curve's compounding basis.
func (c Flat) Frequency() Frequency { return c.freq }

// Df returns the discount factor at tenor tau in years: exp(-r·τ) under
// continuous compounding, (1 + r/f)^(-f·τ) under periodic frequency f.
// A zero rate gives exactly 1 at every tenor. Negative tenors fail with
// *InvalidTenorError; a periodic rate with a non-positive compounding base
// fails with *InvalidRateError.
func (c Flat) Df(tau float64) (float64, error) {
	if tau < 0 || math.IsNaN(tau) {
		return 0, &InvalidTenorError{Tau: tau}
	}
	if c.freq == Continuous {
		return math.Exp(-c.rate * tau), nil
	}
	f := float64(c.freq)
	base := 1 + c.rate/f
	if base <= 0 || math.IsNaN(base) {
		return 0, &InvalidRateError{Rate: c.rate, Freq: c.freq}
	}
	return math.Pow(base, -f*tau), nil
}

// DiscountFactor returns the discount factor from one date to another,
// with the tenor measured under the engine's ACT/365F convention. A to
// date before the from date fails with *InvalidTenorError.
func (c Flat) DiscountFactor(from, to dates.Date) (float64, error) {
	if to.Before(from) {
		return 0, &InvalidTenorError{From: from, To: to}
	}
	return c.Df(dates.YearFrac(from, to, dates.ACT365F))
}
