package pricing

import "math"

// Greeks holds the sensitivities of an option price to its inputs. Theta is
// per year of calendar time; Vega and Rho are per unit (not percentage
// point) of volatility and rate.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}

// GreeksOf computes the full sensitivity set for a European option. In the
// degenerate limits (tau <= 0 or sigma <= 0) the curvature and volatility
// sensitivities vanish and Delta takes its limit value, a dividend-adjusted
// step on the deterministic forward.
func GreeksOf(isCall bool, S, K, tau, r, q, sigma float64) Greeks {
	if tau <= 0 || sigma <= 0 {
		return Greeks{Delta: limitDelta(isCall, S, K, tau, r, q)}
	}

	d1, d2 := D1D2(S, K, tau, r, q, sigma)
	var (
		eqt     = math.Exp(-q * tau)
		ert     = math.Exp(-r * tau)
		pdf1    = normPDF(d1)
		sqrtTau = math.Sqrt(tau)
	)

	g := Greeks{
		Gamma: eqt * pdf1 / (S * sigma * sqrtTau),
		Vega:  S * eqt * pdf1 * sqrtTau,
	}
	decay := -S * eqt * pdf1 * sigma / (2 * sqrtTau)
	if isCall {
		g.Delta = eqt * normCDF(d1)
		g.Theta = decay - r*K*ert*normCDF(d2) + q*S*eqt*normCDF(d1)
		g.Rho = K * tau * ert * normCDF(d2)
	} else {
		g.Delta = eqt * (normCDF(d1) - 1)
		g.Theta = decay + r*K*ert*normCDF(-d2) - q*S*eqt*normCDF(-d1)
		g.Rho = -K * tau * ert * normCDF(-d2)
	}
	return g
}

func limitDelta(isCall bool, S, K, tau, r, q float64) float64 {
	eqt := math.Exp(-q * tau)
	forward := S * math.Exp((r-q)*tau)

	var call float64
	switch {
	case forward > K:
		call = eqt
	case forward < K:
		call = 0
	default:
		call = 0.5 * eqt
	}
	if isCall {
		return call
	}
	return call - eqt
}
