package dates

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesCalendarDays(t *testing.T) {
	cases := []struct {
		name  string
		year  int
		month time.Month
		day   int
		ok    bool
	}{
		{"regular day", 2025, time.June, 15, true},
		{"leap day in leap year", 2024, time.February, 29, true},
		{"leap day in non-leap year", 2025, time.February, 29, false},
		{"february 30", 2024, time.February, 30, false},
		{"day zero", 2024, time.March, 0, false},
		{"month overflow", 2024, time.Month(13), 1, false},
		{"below representable range", 1600, time.December, 31, false},
		{"above representable range", 3000, time.January, 1, false},
		{"range lower bound", 1601, time.January, 1, true},
		{"range upper bound", 2999, time.December, 31, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := New(tc.year, tc.month, tc.day)
			if !tc.ok {
				var invErr *InvalidDateError
				require.ErrorAs(t, err, &invErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.year, d.Year())
			assert.Equal(t, tc.month, d.Month())
			assert.Equal(t, tc.day, d.Day())
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	d, err := Parse("2025-01-14")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-14", d.String())

	_, err = Parse("14/01/2025")
	var invErr *InvalidDateError
	require.ErrorAs(t, err, &invErr)
}

func TestOrdering(t *testing.T) {
	a := MustNew(2025, time.March, 10)
	b := MustNew(2025, time.March, 11)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(MustNew(2025, time.March, 10)))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestAddDays(t *testing.T) {
	d := MustNew(2025, time.January, 31)

	next, err := d.AddDays(1)
	require.NoError(t, err)
	assert.Equal(t, MustNew(2025, time.February, 1), next)

	prev, err := d.AddDays(-31)
	require.NoError(t, err)
	assert.Equal(t, MustNew(2024, time.December, 31), prev)

	_, err = MustNew(2999, time.December, 1).AddDays(100)
	var invErr *InvalidDateError
	require.ErrorAs(t, err, &invErr)
}

func TestAddYears(t *testing.T) {
	start := MustNew(2020, time.January, 1)

	// 1.0y on a 365.25-day basis rounds to 365 days.
	oneYear, err := start.AddYears(1.0)
	require.NoError(t, err)
	assert.Equal(t, MustNew(2020, time.December, 31), oneYear)
	assert.Equal(t, 365, DaysBetween(start, oneYear))

	// 2.0y gives 730.5 days, rounded half away from zero to 731.
	twoYears, err := start.AddYears(2.0)
	require.NoError(t, err)
	assert.Equal(t, 731, DaysBetween(start, twoYears))

	half, err := start.AddYears(0.5)
	require.NoError(t, err)
	assert.Equal(t, 183, DaysBetween(start, half))

	back, err := start.AddYears(-0.5)
	require.NoError(t, err)
	assert.Equal(t, -183, DaysBetween(start, back))

	_, err = MustNew(2999, time.June, 1).AddYears(1)
	var invErr *InvalidDateError
	require.ErrorAs(t, err, &invErr)

	_, err = start.AddYears(1e18)
	require.ErrorAs(t, err, &invErr)
}

func TestDaysBetweenSign(t *testing.T) {
	a := MustNew(2025, time.January, 1)
	b := MustNew(2025, time.January, 31)

	assert.Equal(t, 30, DaysBetween(a, b))
	assert.Equal(t, -30, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestDaysBetweenSpansFullRange(t *testing.T) {
	lo := MustNew(MinYear, time.January, 1)
	hi := MustNew(MaxYear, time.January, 1)

	// 1398 years of 365 days plus 339 Gregorian leap days.
	assert.Equal(t, 510609, DaysBetween(lo, hi))
	assert.Equal(t, -510609, DaysBetween(hi, lo))

	// A century crossing the non-leap year 2100.
	century := MustNew(2125, time.January, 1)
	assert.Equal(t, 36524, DaysBetween(MustNew(2025, time.January, 1), century))
}

func TestJSONEncoding(t *testing.T) {
	d := MustNew(2025, time.July, 4)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-07-04"`, string(b))

	var decoded Date
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.True(t, d.Equal(decoded))

	err = json.Unmarshal([]byte(`"2025-02-30"`), &decoded)
	var invErr *InvalidDateError
	require.ErrorAs(t, err, &invErr)
}
