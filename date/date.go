// Package date handles the day-granularity dates printed on an execution statement.
//
// The statement date is free text for the ledger (it is never parsed back by the
// calculations), this package only provides the default value and lenient parsing
// for the command line.
package date

import (
	"fmt"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// KoreanFormat is the format printed on execution statements, e.g. "2025년 04월 30일".
const KoreanFormat = "2006년 01월 02일"

// Date represent a date with no lower than day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Korean formats the date the way it is printed on a statement.
func (d Date) Korean() string { return d.time().Format(KoreanFormat) }

// Parse parses a Date from a string.
//
// It accepts ISO dates, lenient ones like "2025-7-1", and the statement format
// "2025년 04월 30일" (with or without padding and spaces).
func Parse(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if on, err := time.Parse(readDateFormat, str); err == nil {
		return New(on.Date()), nil
	}
	var y, m, d int
	compact := strings.ReplaceAll(str, " ", "")
	if n, err := fmt.Sscanf(compact, "%d년%d월%d일", &y, &m, &d); err == nil && n == 3 {
		if m < 1 || m > 12 || d < 1 || d > 31 {
			return Date{}, fmt.Errorf("invalid date %q: month or day out of range", str)
		}
		return New(y, time.Month(m), d), nil
	}
	return Date{}, fmt.Errorf("invalid date %q want format %q or %q", str, readDateFormat, KoreanFormat)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}
