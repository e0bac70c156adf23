// Package models holds the Black-Scholes-Merton model object: the
// volatility input, scalar or vector, and the valuation entry point the
// option contract dispatches to.
package models

// Volatility is a model's volatility input: either a single value or an
// ordered sequence to be evaluated element-wise in one call. The scalar
// case is carried internally as a one-element sequence so the evaluation
// path is written once; IsVector records which shape the caller supplied.
type Volatility struct {
	values []float64
	vector bool
}

// Vol wraps a single volatility value.
func Vol(sigma float64) Volatility {
	return Volatility{values: []float64{sigma}}
}

// VolVector wraps an ordered volatility sequence. The slice is copied, so
// later mutation of the argument does not reach the model.
func VolVector(sigmas []float64) Volatility {
	values := make([]float64, len(sigmas))
	copy(values, sigmas)
	return Volatility{values: values, vector: true}
}

// IsVector reports whether the input was supplied as a sequence.
func (v Volatility) IsVector() bool { return v.vector }

// Len returns the number of volatility elements (1 for a scalar).
func (v Volatility) Len() int { return len(v.values) }

// At returns the i-th volatility element.
func (v Volatility) At(i int) float64 { return v.values[i] }

// Values returns a copy of the volatility elements in input order.
func (v Volatility) Values() []float64 {
	out := make([]float64, len(v.values))
	copy(out, v.values)
	return out
}
