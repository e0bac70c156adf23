// Package dates provides the calendar arithmetic behind option valuation:
// a day-precision Date value type, fractional-year date shifts, and
// year-fraction computation under the common day-count conventions.
package dates

import (
	"fmt"
	"math"
	"time"
)

// Representable calendar range. Dates outside it fail construction and
// arithmetic rather than silently wrapping.
const (
	MinYear = 1601
	MaxYear = 2999
)

// DaysPerYear is the day basis used when shifting a date by a fractional
// number of years.
const DaysPerYear = 365.25

// InvalidDateError reports a date that is not a valid Gregorian calendar
// day, or arithmetic that left the representable range.
type InvalidDateError struct {
	Year   int
	Month  time.Month
	Day    int
	Reason string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %04d-%02d-%02d: %s", e.Year, int(e.Month), e.Day, e.Reason)
}

// Date is a calendar day with no time-of-day component. The zero value is
// not a valid date; construct with New or Parse.
type Date struct {
	year  int
	month time.Month
	day   int
}

// New validates (year, month, day) as a Gregorian calendar day inside the
// representable range and returns the Date value.
func New(year int, month time.Month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, &InvalidDateError{Year: year, Month: month, Day: day, Reason: fmt.Sprintf("year outside [%d, %d]", MinYear, MaxYear)}
	}
	// time.Date normalizes out-of-range components (Feb 30 becomes Mar 1);
	// a round trip that changes any component means the input was not a
	// real calendar day.
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, &InvalidDateError{Year: year, Month: month, Day: day, Reason: "no such day in the Gregorian calendar"}
	}
	return Date{year: year, month: month, day: day}, nil
}

// MustNew is New for dates known valid at compile time. It panics on error.
func MustNew(year int, month time.Month, day int) Date {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// Parse reads an ISO-8601 calendar date (YYYY-MM-DD).
func Parse(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, &InvalidDateError{Reason: fmt.Sprintf("parse %q: not an ISO-8601 date", s)}
	}
	return New(t.Year(), t.Month(), t.Day())
}

func fromTime(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Year returns the calendar year.
func (d Date) Year() int { return d.year }

// Month returns the calendar month.
func (d Date) Month() time.Month { return d.month }

// Day returns the day of the month.
func (d Date) Day() int { return d.day }

// IsZero reports whether d is the uninitialized zero value.
func (d Date) IsZero() bool { return d.year == 0 }

// Time returns the date as a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// MarshalText renders the ISO-8601 form, so Date encodes as a plain string
// in JSON and as a readable field in logs.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses the ISO-8601 form written by MarshalText.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Compare orders two dates chronologically, returning -1, 0 or +1.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return sign(d.year - other.year)
	case d.month != other.month:
		return sign(int(d.month) - int(other.month))
	default:
		return sign(d.day - other.day)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// Equal reports whether the two dates are the same calendar day.
func (d Date) Equal(other Date) bool { return d.Compare(other) == 0 }

// AddDays shifts the date by a whole number of days, negative to move
// backwards. Fails if the result leaves the representable range.
func (d Date) AddDays(n int) (Date, error) {
	shifted := fromTime(d.Time().AddDate(0, 0, n))
	if shifted.year < MinYear || shifted.year > MaxYear {
		return Date{}, &InvalidDateError{
			Year: shifted.year, Month: shifted.month, Day: shifted.day,
			Reason: fmt.Sprintf("shift by %d days left the year range [%d, %d]", n, MinYear, MaxYear),
		}
	}
	return shifted, nil
}

// AddYears shifts the date by a fractional number of years on a 365.25-day
// basis, rounded to the nearest whole day. Negative values move backwards.
func (d Date) AddYears(years float64) (Date, error) {
	offset := years * DaysPerYear
	if math.IsNaN(offset) || math.IsInf(offset, 0) || math.Abs(offset) > float64(math.MaxInt32) {
		return Date{}, &InvalidDateError{Year: d.year, Month: d.month, Day: d.day, Reason: fmt.Sprintf("year shift %v is not representable", years)}
	}
	return d.AddDays(int(math.Round(offset)))
}

// DaysBetween counts the calendar days from d1 to d2, negative when d2 is
// earlier. Midnight-UTC Unix stamps differ by exact multiples of 86400, so
// the count stays exact across the whole representable range.
func DaysBetween(d1, d2 Date) int {
	return int((d2.Time().Unix() - d1.Time().Unix()) / 86400)
}
