// ABOUTME: Day-granularity calendar date used by workouts and histories.
// ABOUTME: Serialized as YYYY-MM-DD and interpreted in local time.
package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar day in YYYY-MM-DD form.
type Date string

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate validates s and returns it as a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight of the day in loc.
func (d Date) Time(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, string(d), loc)
}

// Valid reports whether d is a well-formed date.
func (d Date) Valid() bool {
	_, err := d.Time(time.Local)
	return err == nil
}

// AddDays returns the date n days after d. Invalid dates are returned unchanged.
func (d Date) AddDays(n int) Date {
	t, err := d.Time(time.Local)
	if err != nil {
		return d
	}
	return DateOf(t.AddDate(0, 0, n))
}

// WeekStart returns the Monday of d's week; Sunday belongs to the week before.
func (d Date) WeekStart() (Date, error) {
	t, err := d.Time(time.Local)
	if err != nil {
		return "", err
	}
	offset := (int(t.Weekday()) + 6) % 7
	return DateOf(t.AddDate(0, 0, -offset)), nil
}

// Before reports whether d sorts before other. YYYY-MM-DD sorts lexically.
func (d Date) Before(other Date) bool {
	return d < other
}

// MonthDay returns the MM-DD label used on chart axes.
func (d Date) MonthDay() string {
	if len(d) < len(DateLayout) {
		return string(d)
	}
	return string(d[5:])
}

func (d Date) String() string {
	return string(d)
}
