// Package config defines the top-level configuration for the valuation
// tool and provides validation helpers.
package config

import (
	"fmt"
	"strings"

	"github.com/contactkeval/option-value/internal/curves"
	"github.com/contactkeval/option-value/internal/dates"
	"github.com/contactkeval/option-value/internal/logger"
	"github.com/contactkeval/option-value/internal/vanilla"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by OPTVAL_* environment
// variables.
type Config struct {
	Run    RunConfig     `toml:"run"`
	Market MarketConfig  `toml:"market"`
	Sweep  SweepConfig   `toml:"sweep"`
	Output OutputConfig  `toml:"output"`
	Log    logger.Config `toml:"log"`
}

// RunConfig describes the contract being valued and the valuation date.
// Exactly one of expiry / tenor_years and exactly one of strike /
// strike_rule must be set.
type RunConfig struct {
	ValuationDate dates.Date `toml:"valuation_date"`
	OptionType    string     `toml:"option_type"`
	Expiry        dates.Date `toml:"expiry"`
	TenorYears    float64    `toml:"tenor_years"`
	Strike        float64    `toml:"strike"`
	StrikeRule    string     `toml:"strike_rule"`
}

// MarketConfig describes the market inputs. Either an inline spot level or
// an underlying symbol resolved through a data provider.
type MarketConfig struct {
	Underlying    string  `toml:"underlying"`
	Spot          float64 `toml:"spot"`
	SpotRule      string  `toml:"spot_rule"`
	Rate          float64 `toml:"rate"`
	Frequency     string  `toml:"frequency"`
	DividendYield float64 `toml:"dividend_yield"`
	QuoteFile     string  `toml:"quote_file"`
}

// SweepConfig describes the volatility grid. An explicit vols list takes
// precedence over the min/max/points range.
type SweepConfig struct {
	VolMin    float64   `toml:"vol_min"`
	VolMax    float64   `toml:"vol_max"`
	VolPoints int       `toml:"vol_points"`
	Vols      []float64 `toml:"vols"`
}

// OutputConfig holds report destination parameters.
type OutputConfig struct {
	Dir string `toml:"dir"`
}

// Defaults returns a Config populated with reasonable default values.
// These match the values in config.example.toml.
func Defaults() Config {
	return Config{
		Run: RunConfig{
			OptionType: "call",
		},
		Market: MarketConfig{
			Frequency: "continuous",
		},
		Sweep: SweepConfig{
			VolMin:    0.05,
			VolMax:    0.50,
			VolPoints: 10,
		},
		Output: OutputConfig{
			Dir: "out",
		},
		Log: logger.Config{
			Level: "info",
		},
	}
}

// validLogLevels enumerates the accepted values for Log.Level.
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and
// returns a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if c.Run.ValuationDate.IsZero() {
		errs = append(errs, "run: valuation_date must be set")
	}
	// The same parser the runner uses, so nothing validation accepts can
	// fail to parse later.
	if _, err := vanilla.ParseOptionType(c.Run.OptionType); err != nil {
		errs = append(errs, fmt.Sprintf("run: %v", err))
	}

	hasExpiry := !c.Run.Expiry.IsZero()
	hasTenor := c.Run.TenorYears != 0
	switch {
	case !hasExpiry && !hasTenor:
		errs = append(errs, "run: either expiry or tenor_years must be set")
	case hasExpiry && hasTenor:
		errs = append(errs, "run: expiry and tenor_years are mutually exclusive")
	case hasTenor && c.Run.TenorYears < 0:
		errs = append(errs, fmt.Sprintf("run: tenor_years must be positive, got %g", c.Run.TenorYears))
	}

	hasStrike := c.Run.Strike != 0
	hasStrikeRule := strings.TrimSpace(c.Run.StrikeRule) != ""
	switch {
	case !hasStrike && !hasStrikeRule:
		errs = append(errs, "run: either strike or strike_rule must be set")
	case hasStrike && hasStrikeRule:
		errs = append(errs, "run: strike and strike_rule are mutually exclusive")
	case hasStrike && c.Run.Strike < 0:
		errs = append(errs, fmt.Sprintf("run: strike must be positive, got %g", c.Run.Strike))
	}

	hasSpot := c.Market.Spot != 0
	hasUnderlying := c.Market.Underlying != ""
	switch {
	case !hasSpot && !hasUnderlying:
		errs = append(errs, "market: either spot or underlying must be set")
	case hasSpot && hasUnderlying:
		errs = append(errs, "market: spot and underlying are mutually exclusive")
	case hasSpot && c.Market.Spot < 0:
		errs = append(errs, fmt.Sprintf("market: spot must be positive, got %g", c.Market.Spot))
	}
	if strings.TrimSpace(c.Market.SpotRule) != "" && !hasUnderlying {
		errs = append(errs, "market: spot_rule requires underlying")
	}
	if freq, err := curves.ParseFrequency(c.Market.Frequency); err != nil {
		errs = append(errs, fmt.Sprintf("market: %v", err))
	} else if freq != curves.Continuous && c.Market.Rate <= -float64(freq) {
		errs = append(errs, fmt.Sprintf("market: rate %g is invalid under %s compounding (1 + r/%d must be positive)", c.Market.Rate, freq, int(freq)))
	}

	if len(c.Sweep.Vols) > 0 {
		for i, sigma := range c.Sweep.Vols {
			if sigma < 0 {
				errs = append(errs, fmt.Sprintf("sweep: vols[%d] must be non-negative, got %g", i, sigma))
			}
		}
	} else {
		if c.Sweep.VolMin < 0 {
			errs = append(errs, fmt.Sprintf("sweep: vol_min must be non-negative, got %g", c.Sweep.VolMin))
		}
		if c.Sweep.VolMax < c.Sweep.VolMin {
			errs = append(errs, fmt.Sprintf("sweep: vol_max must be >= vol_min, got %g < %g", c.Sweep.VolMax, c.Sweep.VolMin))
		}
		if c.Sweep.VolPoints < 2 {
			errs = append(errs, fmt.Sprintf("sweep: vol_points must be >= 2, got %d", c.Sweep.VolPoints))
		}
	}

	if c.Output.Dir == "" {
		errs = append(errs, "output: dir must not be empty")
	}
	if c.Log.Level != "" && !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log: unknown level %q (valid: trace, debug, info, warn, error)", c.Log.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
