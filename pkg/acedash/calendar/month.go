// Package calendar normalizes heterogeneous date cells into canonical month
// keys and maps months onto the institutional academic calendar
// (era years, August-start semesters).
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrMalformedKey indicates a month, semester or academic-year key that does
// not have the expected shape.
var ErrMalformedKey = errors.New("malformed calendar key")

// MonthKey is a month identifier of the exact form YYYY-MM.
type MonthKey string

// newMonthKey formats a Gregorian year and month. Years outside 0..9999 have
// no four-digit form and are rejected.
func newMonthKey(year int, month time.Month) (MonthKey, bool) {
	if year < 0 || year > 9999 || month < time.January || month > time.December {
		return "", false
	}
	return MonthKey(fmt.Sprintf("%04d-%02d", year, int(month))), true
}

// mustMonthKey is newMonthKey for arithmetic that is known to stay in range.
func mustMonthKey(year int, month time.Month) MonthKey {
	return MonthKey(fmt.Sprintf("%04d-%02d", year, int(month)))
}

// String implements fmt.Stringer.
func (m MonthKey) String() string {
	return string(m)
}

// Split returns the Gregorian year and one-based month of m.
func (m MonthKey) Split() (year, month int, err error) {
	s := string(m)
	if len(s) != 7 || s[4] != '-' {
		return 0, 0, fmt.Errorf("%w: month %q", ErrMalformedKey, s)
	}
	year, err = strconv.Atoi(s[:4])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: month %q", ErrMalformedKey, s)
	}
	month, err = strconv.Atoi(s[5:])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: month %q", ErrMalformedKey, s)
	}
	return year, month, nil
}

// Valid reports whether m is a well-formed month key.
func (m MonthKey) Valid() bool {
	_, _, err := m.Split()
	return err == nil
}

// MinAvailableMonth returns the retention horizon: the first month exactly
// seven years before the month containing now. Older months are never offered
// or charted. The horizon rolls with the wall clock.
func MinAvailableMonth(now time.Time) MonthKey {
	t := time.Date(now.Year()-7, now.Month(), 1, 0, 0, 0, 0, now.Location())
	return mustMonthKey(t.Year(), t.Month())
}
