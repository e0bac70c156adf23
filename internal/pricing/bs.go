// Package pricing implements the closed-form Black-Scholes-Merton formulas
// for European vanilla options on an underlying paying a continuous
// proportional dividend yield. Everything here is a pure function over
// scalars; input validation belongs to the callers.
package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 { return stdNormal.CDF(x) }

// normPDF is the standard normal probability density function.
func normPDF(x float64) float64 { return stdNormal.Prob(x) }

// D1D2 returns the standardized moneyness terms of the formula:
//
//	d1 = [ln(S/K) + (r - q + σ²/2)·τ] / (σ·√τ)
//	d2 = d1 - σ·√τ
//
// Callers must ensure τ > 0 and σ > 0; the degenerate limits are handled by
// Call and Put directly.
func D1D2(S, K, tau, r, q, sigma float64) (d1, d2 float64) {
	volSqrtTau := sigma * math.Sqrt(tau)
	d1 = (math.Log(S/K) + (r-q+0.5*sigma*sigma)*tau) / volSqrtTau
	d2 = d1 - volSqrtTau
	return d1, d2
}

// Call prices a European call option.
//
// Parameters:
//   - S: spot price of the underlying asset
//   - K: strike price of the option
//   - tau: time to expiry in years
//   - r: continuously-compounded risk-free rate (annual)
//   - q: continuously-compounded dividend yield (annual)
//   - sigma: volatility of the underlying asset (annual, as a decimal)
//
// The two degenerate limits are priced explicitly rather than through the
// formula: at tau == 0 the price is the intrinsic value max(S-K, 0), and at
// sigma == 0 it is the discounted intrinsic value of the deterministic
// forward S·exp((r-q)·τ). Both avoid the division by σ·√τ.
func Call(S, K, tau, r, q, sigma float64) float64 {
	if tau == 0 {
		return math.Max(S-K, 0)
	}
	if sigma == 0 {
		forward := S * math.Exp((r-q)*tau)
		return math.Max(forward-K, 0) * math.Exp(-r*tau)
	}
	d1, d2 := D1D2(S, K, tau, r, q, sigma)
	return S*math.Exp(-q*tau)*normCDF(d1) - K*math.Exp(-r*tau)*normCDF(d2)
}

// Put prices a European put option with the same parameters and degenerate
// limit handling as Call.
func Put(S, K, tau, r, q, sigma float64) float64 {
	if tau == 0 {
		return math.Max(K-S, 0)
	}
	if sigma == 0 {
		forward := S * math.Exp((r-q)*tau)
		return math.Max(K-forward, 0) * math.Exp(-r*tau)
	}
	d1, d2 := D1D2(S, K, tau, r, q, sigma)
	return K*math.Exp(-r*tau)*normCDF(-d2) - S*math.Exp(-q*tau)*normCDF(-d1)
}

// Price dispatches to Call or Put.
func Price(isCall bool, S, K, tau, r, q, sigma float64) float64 {
	if isCall {
		return Call(S, K, tau, r, q, sigma)
	}
	return Put(S, K, tau, r, q, sigma)
}
