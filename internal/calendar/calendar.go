// Package calendar provides the date type and days-in-month rules shared by
// the task file codec and the task editor pickers.
package calendar

import (
	"fmt"
	"time"
)

// Picker bounds.
const (
	MinYear  = 1900
	MaxYear  = 9999
	MinMonth = 1
	MaxMonth = 12
	MinDay   = 1
)

// Layout is the fixed on-disk date format (yyyy-MM-dd, zero padded).
const Layout = "2006-01-02"

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month int
	Day   int
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// MaxDay returns the number of days in the given month of year.
// Months outside 1..12 are clamped first.
func MaxDay(year, month int) int {
	month = clamp(month, MinMonth, MaxMonth)
	switch month {
	case 2:
		if IsLeap(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// Clamp brings year and month into picker range and the day down to the
// last day of that month.
func Clamp(d Date) Date {
	d.Year = clamp(d.Year, MinYear, MaxYear)
	d.Month = clamp(d.Month, MinMonth, MaxMonth)
	d.Day = clamp(d.Day, MinDay, MaxDay(d.Year, d.Month))
	return d
}

// New builds a validated date. Unlike Clamp it rejects out-of-range values.
func New(year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// Validate reports whether d is a real date within picker range.
func (d Date) Validate() error {
	if d.Year < MinYear || d.Year > MaxYear {
		return fmt.Errorf("year %d out of range %d-%d", d.Year, MinYear, MaxYear)
	}
	if d.Month < MinMonth || d.Month > MaxMonth {
		return fmt.Errorf("month %d out of range", d.Month)
	}
	if max := MaxDay(d.Year, d.Month); d.Day < MinDay || d.Day > max {
		return fmt.Errorf("day %d out of range 1-%d", d.Day, max)
	}
	return nil
}

// String formats d as yyyy-MM-dd.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) Date {
	y, m, day := t.Date()
	return Date{Year: y, Month: int(m), Day: day}
}

// Today returns the current local date, clamped to picker range.
func Today() Date {
	return Clamp(FromTime(time.Now()))
}

// Parse reads a strict zero-padded yyyy-MM-dd date.
func Parse(s string) (Date, error) {
	if len(s) != len(Layout) || s[4] != '-' || s[7] != '-' {
		return Date{}, fmt.Errorf("date %q does not match yyyy-MM-dd", s)
	}
	year, ok1 := digits(s[0:4])
	month, ok2 := digits(s[5:7])
	day, ok3 := digits(s[8:10])
	if !ok1 || !ok2 || !ok3 {
		return Date{}, fmt.Errorf("date %q does not match yyyy-MM-dd", s)
	}
	return New(year, month, day)
}

func digits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
