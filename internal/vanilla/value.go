package vanilla

import (
	"fmt"
	"math"

	"github.com/contactkeval/option-value/internal/curves"
	"github.com/contactkeval/option-value/internal/dates"
	"github.com/contactkeval/option-value/internal/models"
	"github.com/contactkeval/option-value/internal/pricing"
)

// Result is a valuation outcome shaped like the model's volatility input:
// a single price for a scalar model, an ordered price sequence for a
// vector model.
type Result struct {
	prices []float64
	vector bool
}

// IsVector reports whether the result carries one price per volatility
// element.
func (r Result) IsVector() bool { return r.vector }

// Price returns the scalar price. For vector results it is the price at
// the first volatility element.
func (r Result) Price() float64 { return r.prices[0] }

// Prices returns the prices in the volatility input's order. The slice is
// owned by the caller.
func (r Result) Prices() []float64 { return r.prices }

// Value prices the option against a market snapshot. The time to expiry is
// the ACT/365F year fraction from the valuation date; the
// continuously-compounded rate and dividend yield are recovered from the
// two curves' discount factors over that horizon. A valuation date after
// expiry fails with *ExpiredOptionError, and every model input is
// validated before any element is priced.
//
// The computation is pure: identical inputs return bit-identical prices.
func (o Option) Value(valuation dates.Date, spot float64, discount, dividend curves.Flat, model models.BlackScholes) (Result, error) {
	tau, r, q, err := o.horizon(valuation, discount, dividend)
	if err != nil {
		return Result{}, err
	}
	prices, err := model.Value(o.typ.IsCall(), spot, o.strike, tau, r, q)
	if err != nil {
		return Result{}, err
	}
	return Result{prices: prices, vector: model.Volatility().IsVector()}, nil
}

// ValueScalar is Value for scalar-volatility models, unwrapping the single
// price.
func (o Option) ValueScalar(valuation dates.Date, spot float64, discount, dividend curves.Flat, model models.BlackScholes) (float64, error) {
	res, err := o.Value(valuation, spot, discount, dividend, model)
	if err != nil {
		return 0, err
	}
	return res.Price(), nil
}

// Greeks computes the option's sensitivity set at the model's scalar
// volatility, under the same horizon and rate recovery as Value.
func (o Option) Greeks(valuation dates.Date, spot float64, discount, dividend curves.Flat, model models.BlackScholes) (pricing.Greeks, error) {
	tau, r, q, err := o.horizon(valuation, discount, dividend)
	if err != nil {
		return pricing.Greeks{}, err
	}
	return model.Greeks(o.typ.IsCall(), spot, o.strike, tau, r, q)
}

// horizon computes the time to expiry and recovers the flat
// continuously-compounded rate and dividend yield over it. At tau == 0 the
// curves are never queried; the intrinsic branch downstream needs no
// rates.
func (o Option) horizon(valuation dates.Date, discount, dividend curves.Flat) (tau, r, q float64, err error) {
	tau = dates.YearFrac(valuation, o.expiry, dates.ACT365F)
	if tau < 0 {
		return 0, 0, 0, &ExpiredOptionError{Valuation: valuation, Expiry: o.expiry}
	}
	if tau == 0 {
		return 0, 0, 0, nil
	}

	df, err := discount.DiscountFactor(valuation, o.expiry)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("discount curve: %w", err)
	}
	r = -math.Log(df) / tau

	div, err := dividend.DiscountFactor(valuation, o.expiry)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("dividend curve: %w", err)
	}
	q = -math.Log(div) / tau

	return tau, r, q, nil
}
