package dates

import "fmt"

// Convention selects the day-count basis for year fractions.
type Convention string

const (
	// ACT365F divides actual elapsed days by a fixed 365-day year. This is
	// the engine-wide default for time-to-expiry.
	ACT365F Convention = "ACT/365F"
	// ACT360 divides actual elapsed days by a 360-day year.
	ACT360 Convention = "ACT/360"
	// Thirty360 is the US bond basis: months count 30 days, with the usual
	// end-of-month adjustments.
	Thirty360 Convention = "30/360"
	// ThirtyE360 is the Eurobond basis: every 31st is rolled back to the
	// 30th unconditionally.
	ThirtyE360 Convention = "30E/360"
)

// ParseConvention maps a config string to a Convention.
func ParseConvention(s string) (Convention, error) {
	switch Convention(s) {
	case ACT365F, ACT360, Thirty360, ThirtyE360:
		return Convention(s), nil
	case "":
		return ACT365F, nil
	}
	return "", fmt.Errorf("unknown day-count convention %q", s)
}

// YearFrac returns the elapsed time from d1 to d2 in years under the given
// convention. It is exactly zero for equal dates and changes sign when the
// arguments are swapped.
func YearFrac(d1, d2 Date, conv Convention) float64 {
	if d2.Before(d1) {
		return -YearFrac(d2, d1, conv)
	}
	switch conv {
	case ACT360:
		return float64(DaysBetween(d1, d2)) / 360.0
	case Thirty360:
		return thirty360(d1, d2, false)
	case ThirtyE360:
		return thirty360(d1, d2, true)
	default:
		return float64(DaysBetween(d1, d2)) / 365.0
	}
}

// thirty360 implements the 30/360 family. With eurobond set, both dates
// roll a 31st back to the 30th; otherwise the second date rolls back only
// when the first is on or after the 30th.
func thirty360(d1, d2 Date, eurobond bool) float64 {
	day1, day2 := d1.day, d2.day
	if day1 == 31 {
		day1 = 30
	}
	if day2 == 31 && (eurobond || day1 == 30) {
		day2 = 30
	}
	days := 360*(d2.year-d1.year) + 30*(int(d2.month)-int(d1.month)) + (day2 - day1)
	return float64(days) / 360.0
}
