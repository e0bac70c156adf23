package models

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/contactkeval/option-value/internal/pricing"
)

// Parameter names reported by InvalidModelInputError.
const (
	ParamVolatility   = "volatility"
	ParamSpot         = "spot"
	ParamStrike       = "strike"
	ParamTimeToExpiry = "timeToExpiry"
)

// ErrEmptyVolatility rejects a model built from an empty volatility
// sequence.
var ErrEmptyVolatility = errors.New("volatility sequence is empty")

// ErrVectorVolatility rejects sensitivity queries on a vector-volatility
// model; greeks are defined per scalar volatility.
var ErrVectorVolatility = errors.New("greeks require a scalar-volatility model")

// InvalidModelInputError reports a valuation input outside its domain. All
// inputs are checked before any element is priced; for vector volatility
// the lowest offending index is reported, so identical inputs always fail
// identically. Index is -1 for scalar inputs.
type InvalidModelInputError struct {
	Param string
	Value float64
	Index int
}

func (e *InvalidModelInputError) Error() string {
	name := e.Param
	if e.Index >= 0 {
		name = fmt.Sprintf("%s[%d]", e.Param, e.Index)
	}
	constraint := "must be non-negative"
	if e.Param == ParamSpot || e.Param == ParamStrike {
		constraint = "must be positive"
	}
	return fmt.Sprintf("invalid model input: %s = %v: %s", name, e.Value, constraint)
}

// DefaultStepsPerYear is the discretization granularity a new model
// carries. The closed-form path never reads it; tree and grid methods
// built on the same model object do.
const DefaultStepsPerYear = 100

// Vectors shorter than this are priced inline; longer ones are partitioned
// across CPUs.
const parallelThreshold = 64

// BlackScholes is the Black-Scholes-Merton model object. It is immutable
// and safe to share across concurrent valuations.
type BlackScholes struct {
	vol          Volatility
	stepsPerYear int
}

// NewBlackScholes builds a model around the given volatility input.
func NewBlackScholes(vol Volatility) BlackScholes {
	return BlackScholes{vol: vol, stepsPerYear: DefaultStepsPerYear}
}

// WithStepsPerYear returns a copy of the model with a different
// discretization granularity.
func (m BlackScholes) WithStepsPerYear(n int) BlackScholes {
	m.stepsPerYear = n
	return m
}

// Volatility returns the model's volatility input.
func (m BlackScholes) Volatility() Volatility { return m.vol }

// NumStepsPerYear returns the discretization granularity.
func (m BlackScholes) NumStepsPerYear() int { return m.stepsPerYear }

// Validate checks every volatility element against σ >= 0, in input order,
// before any pricing work happens.
func (m BlackScholes) Validate() error {
	if m.vol.Len() == 0 {
		return ErrEmptyVolatility
	}
	for i, sigma := range m.vol.values {
		if sigma < 0 || math.IsNaN(sigma) {
			idx := -1
			if m.vol.vector {
				idx = i
			}
			return &InvalidModelInputError{Param: ParamVolatility, Value: sigma, Index: idx}
		}
	}
	return nil
}

// Value prices a European option at every volatility element and returns
// the prices in input order, one per element. All inputs are validated
// before the first element is priced. Long vectors are partitioned across
// CPUs; each worker writes a disjoint index range, so the result is
// identical to sequential evaluation.
func (m BlackScholes) Value(isCall bool, spot, strike, tau, r, q float64) ([]float64, error) {
	if err := m.validateInputs(spot, strike, tau); err != nil {
		return nil, err
	}

	out := make([]float64, m.vol.Len())
	if len(out) < parallelThreshold {
		for i, sigma := range m.vol.values {
			out[i] = pricing.Price(isCall, spot, strike, tau, r, q, sigma)
		}
		return out, nil
	}

	workers := runtime.NumCPU()
	if workers > len(out) {
		workers = len(out)
	}
	chunk := (len(out) + workers - 1) / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(out))
		if lo >= hi {
			break
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				out[i] = pricing.Price(isCall, spot, strike, tau, r, q, m.vol.values[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Greeks computes the sensitivity set at the model's scalar volatility.
// Vector-volatility models are rejected with ErrVectorVolatility.
func (m BlackScholes) Greeks(isCall bool, spot, strike, tau, r, q float64) (pricing.Greeks, error) {
	if m.vol.IsVector() {
		return pricing.Greeks{}, ErrVectorVolatility
	}
	if err := m.validateInputs(spot, strike, tau); err != nil {
		return pricing.Greeks{}, err
	}
	return pricing.GreeksOf(isCall, spot, strike, tau, r, q, m.vol.At(0)), nil
}

func (m BlackScholes) validateInputs(spot, strike, tau float64) error {
	switch {
	case spot <= 0 || math.IsNaN(spot):
		return &InvalidModelInputError{Param: ParamSpot, Value: spot, Index: -1}
	case strike <= 0 || math.IsNaN(strike):
		return &InvalidModelInputError{Param: ParamStrike, Value: strike, Index: -1}
	case tau < 0 || math.IsNaN(tau):
		return &InvalidModelInputError{Param: ParamTimeToExpiry, Value: tau, Index: -1}
	}
	return m.Validate()
}
