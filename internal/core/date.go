package core

import (
	"fmt"
	"time"
)

const dateKeyLayout = "2006-01-02"

type (
	// Date is a plain calendar date: no time of day, no timezone.
	// Its Key() form sorts lexicographically in chronological order,
	// which the storage layer relies on.
	Date struct {
		Year  int
		Month int // 1-12
		Day   int
	}
)

var ErrInvalidDate = fmt.Errorf("invalid date key")

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// Today returns the current local calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD key.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateKeyLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// Key renders the date as YYYY-MM-DD.
func (d Date) Key() string {
	return d.toTime().Format(dateKeyLayout)
}

// toTime anchors the date at midnight UTC. Only used for calendar
// arithmetic; the zone never leaks out.
func (d Date) toTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n calendar days later (earlier for negative n),
// normalizing across month and year boundaries.
func (d Date) AddDays(n int) Date {
	return DateOf(d.toTime().AddDate(0, 0, n))
}

// Yesterday returns the previous calendar day.
func (d Date) Yesterday() Date {
	return d.AddDays(-1)
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	return d.toTime().Before(o.toTime())
}

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool {
	return d.toTime().After(o.toTime())
}

// InLastDays reports whether d falls in the inclusive calendar window
// [now-(n-1), now]. Calendar days, not multiples of 24 hours.
func (d Date) InLastDays(now Date, n int) bool {
	if n <= 0 {
		return false
	}
	start := now.AddDays(-(n - 1))
	return !d.Before(start) && !d.After(now)
}

// InMonthToDate reports whether d falls in [first day of now's month, now].
func (d Date) InMonthToDate(now Date) bool {
	return d.Year == now.Year && d.Month == now.Month && !d.After(now)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}
