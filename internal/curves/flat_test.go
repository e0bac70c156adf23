package curves

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-value/internal/dates"
)

var anchor = dates.MustNew(2025, time.January, 2)

func TestDfContinuous(t *testing.T) {
	c := NewFlat(anchor, 0.05, Continuous)

	df, err := c.Df(0.5)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.025), df, 1e-15)

	df, err = c.Df(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, df)
}

func TestDfPeriodic(t *testing.T) {
	cases := []struct {
		name     string
		freq     Frequency
		rate     float64
		tau      float64
		expected float64
	}{
		{"annual one year", Annual, 0.05, 1.0, 1 / 1.05},
		{"semiannual two years", SemiAnnual, 0.05, 2.0, math.Pow(1.025, -4)},
		{"quarterly half year", Quarterly, 0.04, 0.5, math.Pow(1.01, -2)},
		{"monthly one year", Monthly, 0.12, 1.0, math.Pow(1.01, -12)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			df, err := NewFlat(anchor, tc.rate, tc.freq).Df(tc.tau)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, df, 1e-15)
		})
	}
}

func TestDfZeroRateIsExactlyOne(t *testing.T) {
	for _, freq := range []Frequency{Continuous, Annual, SemiAnnual, Quarterly, Monthly} {
		c := NewFlat(anchor, 0, freq)
		for _, tau := range []float64{0, 0.25, 1, 10, 250} {
			df, err := c.Df(tau)
			require.NoError(t, err)
			assert.Equal(t, 1.0, df, "freq %s tau %v", freq, tau)
		}
	}
}

func TestDfNegativeRateExceedsOne(t *testing.T) {
	df, err := NewFlat(anchor, -0.01, Continuous).Df(1)
	require.NoError(t, err)
	assert.Greater(t, df, 1.0)
}

func TestDfNegativeTenor(t *testing.T) {
	c := NewFlat(anchor, 0.05, Continuous)

	_, err := c.Df(-0.1)
	var tenorErr *InvalidTenorError
	require.ErrorAs(t, err, &tenorErr)
	assert.Equal(t, -0.1, tenorErr.Tau)
}

func TestDfRejectsNonPositiveCompoundingBase(t *testing.T) {
	c := NewFlat(anchor, -4.5, Quarterly)

	_, err := c.Df(0.3)
	var rateErr *InvalidRateError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, -4.5, rateErr.Rate)
	assert.Equal(t, Quarterly, rateErr.Freq)

	// An integral power of the negative base would come out finite, so the
	// guard must not depend on the tenor.
	_, err = c.Df(0.5)
	require.ErrorAs(t, err, &rateErr)

	_, err = NewFlat(anchor, -4, Quarterly).Df(1)
	require.ErrorAs(t, err, &rateErr)

	_, err = c.DiscountFactor(anchor, dates.MustNew(2025, time.July, 2))
	require.ErrorAs(t, err, &rateErr)

	// Mildly negative rates keep a positive base and stay valid.
	df, err := NewFlat(anchor, -0.5, Quarterly).Df(0.3)
	require.NoError(t, err)
	assert.Greater(t, df, 1.0)
}

func TestDiscountFactorBetweenDates(t *testing.T) {
	c := NewFlat(anchor, 0.05, Continuous)
	from := dates.MustNew(2025, time.January, 2)
	to := dates.MustNew(2026, time.January, 2)

	df, err := c.DiscountFactor(from, to)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.05*365.0/365.0), df, 1e-15)

	_, err = c.DiscountFactor(to, from)
	var tenorErr *InvalidTenorError
	require.ErrorAs(t, err, &tenorErr)
	assert.Equal(t, from, tenorErr.To)
	assert.Equal(t, to, tenorErr.From)
}

func TestAccessors(t *testing.T) {
	c := NewFlat(anchor, 0.042, Quarterly)
	assert.Equal(t, anchor, c.Anchor())
	assert.Equal(t, 0.042, c.Rate())
	assert.Equal(t, Quarterly, c.Frequency())
}

func TestParseFrequency(t *testing.T) {
	freq, err := ParseFrequency("semiannual")
	require.NoError(t, err)
	assert.Equal(t, SemiAnnual, freq)

	freq, err = ParseFrequency("")
	require.NoError(t, err)
	assert.Equal(t, Continuous, freq)

	_, err = ParseFrequency("weekly")
	require.Error(t, err)
}
