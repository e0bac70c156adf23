package sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/contactkeval/option-value/internal/config"
	"github.com/contactkeval/option-value/internal/curves"
	"github.com/contactkeval/option-value/internal/data"
	"github.com/contactkeval/option-value/internal/dates"
	"github.com/contactkeval/option-value/internal/logger"
	"github.com/contactkeval/option-value/internal/models"
	"github.com/contactkeval/option-value/internal/vanilla"
)

// Scenario is one priced point of the volatility grid.
type Scenario struct {
	Sigma float64 `json:"sigma"`
	Price float64 `json:"price"`
}

// Result is the full outcome of a sweep run. Scenario rows appear in the
// same order as the sigma grid.
type Result struct {
	RunID         string             `json:"run_id"`
	GeneratedAt   time.Time          `json:"generated_at"`
	ValuationDate dates.Date         `json:"valuation_date"`
	Expiry        dates.Date         `json:"expiry"`
	OptionType    vanilla.OptionType `json:"option_type"`
	Underlying    string             `json:"underlying,omitempty"`
	Spot          float64            `json:"spot"`
	Strike        float64            `json:"strike"`
	TimeToExpiry  float64            `json:"time_to_expiry"`
	Rate          float64            `json:"rate"`
	DividendYield float64            `json:"dividend_yield"`
	Scenarios     []Scenario         `json:"scenarios"`
}

// Runner wires a validated configuration and an optional data provider
// into executable sweeps.
type Runner struct {
	cfg  *config.Config
	prov data.Provider
	log  zerolog.Logger
}

// NewRunner constructs a Runner. prov may be nil when the configuration
// carries inline market levels.
func NewRunner(cfg *config.Config, prov data.Provider) *Runner {
	return &Runner{cfg: cfg, prov: prov, log: logger.Component("sweep")}
}

// Run resolves market levels, builds the sigma grid and values the
// configured contract across it. Apart from RunID and GeneratedAt the
// result is deterministic for a given configuration and provider state.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	valuation := r.cfg.Run.ValuationDate

	optType, err := vanilla.ParseOptionType(r.cfg.Run.OptionType)
	if err != nil {
		return nil, err
	}
	spot, err := r.resolveSpot(valuation)
	if err != nil {
		return nil, err
	}
	divYield, err := r.resolveDividendYield(valuation)
	if err != nil {
		return nil, err
	}
	strike, err := r.resolveStrike(spot)
	if err != nil {
		return nil, err
	}
	expiry, err := r.resolveExpiry(valuation)
	if err != nil {
		return nil, err
	}

	opt, err := vanilla.NewOption(expiry, strike, optType)
	if err != nil {
		return nil, err
	}

	freq, err := curves.ParseFrequency(r.cfg.Market.Frequency)
	if err != nil {
		return nil, err
	}
	discount := curves.NewFlat(valuation, r.cfg.Market.Rate, freq)
	dividend := curves.NewFlat(valuation, divYield, curves.Continuous)

	grid := r.sigmaGrid()

	res := &Result{
		RunID:         uuid.New().String(),
		GeneratedAt:   time.Now().UTC(),
		ValuationDate: valuation,
		Expiry:        expiry,
		OptionType:    optType,
		Underlying:    r.cfg.Market.Underlying,
		Spot:          spot,
		Strike:        strike,
		TimeToExpiry:  dates.YearFrac(valuation, expiry, dates.ACT365F),
		Rate:          r.cfg.Market.Rate,
		DividendYield: divYield,
	}

	r.log.Info().
		Str("run_id", res.RunID).
		Stringer("contract", opt).
		Stringer("valuation_date", valuation).
		Float64("spot", spot).
		Float64("rate", res.Rate).
		Float64("dividend_yield", divYield).
		Int("grid_points", len(grid)).
		Msg("sweep started")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model := models.NewBlackScholes(models.VolVector(grid))
	valued, err := opt.Value(valuation, spot, discount, dividend, model)
	if err != nil {
		return nil, fmt.Errorf("value sweep: %w", err)
	}

	prices := valued.Prices()
	res.Scenarios = make([]Scenario, len(grid))
	for i, sigma := range grid {
		res.Scenarios[i] = Scenario{Sigma: sigma, Price: prices[i]}
	}

	r.log.Info().Str("run_id", res.RunID).Int("scenarios", len(res.Scenarios)).Msg("sweep finished")
	return res, nil
}

// resolveSpot returns the inline spot when configured, otherwise looks the
// underlying up through the provider and applies the optional spot rule.
func (r *Runner) resolveSpot(valuation dates.Date) (float64, error) {
	if r.cfg.Market.Spot != 0 {
		return r.cfg.Market.Spot, nil
	}
	if r.prov == nil {
		return 0, errors.New("market: underlying set but no data provider configured")
	}

	spot, err := r.prov.GetSpot(r.cfg.Market.Underlying, valuation)
	if err != nil {
		return 0, fmt.Errorf("resolve spot for %s: %w", r.cfg.Market.Underlying, err)
	}
	r.log.Debug().Str("underlying", r.cfg.Market.Underlying).Float64("spot", spot).Msg("spot resolved")

	if rule := r.cfg.Market.SpotRule; rule != "" {
		spot, err = EvalRule(rule, spot)
		if err != nil {
			return 0, fmt.Errorf("spot rule: %w", err)
		}
	}
	return spot, nil
}

// resolveDividendYield prefers the inline yield. Without one it consults
// the provider when an underlying is configured; a provider miss counts
// as a zero yield.
func (r *Runner) resolveDividendYield(valuation dates.Date) (float64, error) {
	if r.cfg.Market.DividendYield != 0 {
		return r.cfg.Market.DividendYield, nil
	}
	if r.cfg.Market.Underlying == "" || r.prov == nil {
		return 0, nil
	}

	q, err := r.prov.GetDividendYield(r.cfg.Market.Underlying, valuation)
	if errors.Is(err, data.ErrNotFound) {
		r.log.Debug().Str("underlying", r.cfg.Market.Underlying).Msg("no dividend yield on file, assuming zero")
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("resolve dividend yield for %s: %w", r.cfg.Market.Underlying, err)
	}
	return q, nil
}

func (r *Runner) resolveStrike(spot float64) (float64, error) {
	if r.cfg.Run.Strike != 0 {
		return r.cfg.Run.Strike, nil
	}
	strike, err := EvalRule(r.cfg.Run.StrikeRule, spot)
	if err != nil {
		return 0, fmt.Errorf("strike rule: %w", err)
	}
	return strike, nil
}

func (r *Runner) resolveExpiry(valuation dates.Date) (dates.Date, error) {
	if !r.cfg.Run.Expiry.IsZero() {
		return r.cfg.Run.Expiry, nil
	}
	expiry, err := valuation.AddYears(r.cfg.Run.TenorYears)
	if err != nil {
		return dates.Date{}, fmt.Errorf("resolve expiry: %w", err)
	}
	return expiry, nil
}

// sigmaGrid materializes the volatility grid: the explicit vols list when
// present, otherwise vol_points evenly spaced values across
// [vol_min, vol_max].
func (r *Runner) sigmaGrid() []float64 {
	if len(r.cfg.Sweep.Vols) > 0 {
		grid := make([]float64, len(r.cfg.Sweep.Vols))
		copy(grid, r.cfg.Sweep.Vols)
		return grid
	}
	return floats.Span(make([]float64, r.cfg.Sweep.VolPoints), r.cfg.Sweep.VolMin, r.cfg.Sweep.VolMax)
}
