// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package xtime provides extensions to the standard time package.
package xtime

import (
	"fmt"
	"time"
)

const (
	dateLayout        = "2006-01-02"
	compactDateLayout = "20060102"
)

// Date is a calendar date without a time of day or location.
//
// The zero value is not a valid date and reports true from IsZero.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// TimeToDate returns the Date on which t occurs in t's location.
func TimeToDate(t time.Time) Date {
	var d Date
	d.Year, d.Month, d.Day = t.Date()
	return d
}

// ParseDate parses a date in the "2006-01-02" format.
func ParseDate(s string) (Date, error) {
	return parseDate(dateLayout, s)
}

// ParseCompactDate parses a date in the "20060102" format used by the IBKR Flex Web Service.
func ParseCompactDate(s string) (Date, error) {
	return parseDate(compactDateLayout, s)
}

// String returns the date in the "2006-01-02" format.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// CompactString returns the date in the "20060102" format.
func (d Date) CompactString() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// IsValid reports whether the date is a real calendar date.
func (d Date) IsValid() bool {
	return TimeToDate(d.In(time.UTC)) == d
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// In returns the time corresponding to midnight of the date in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the date that is n days in the future. n can be negative.
func (d Date) AddDays(n int) Date {
	return TimeToDate(d.In(time.UTC).AddDate(0, 0, n))
}

// DaysSince returns the signed number of days between d and s, not including d.
func (d Date) DaysSince(s Date) int {
	deltaUnix := d.In(time.UTC).Unix() - s.In(time.UTC).Unix()
	return int(deltaUnix / 86400)
}

// Before reports whether d occurs before d2.
func (d Date) Before(d2 Date) bool {
	if d.Year != d2.Year {
		return d.Year < d2.Year
	}
	if d.Month != d2.Month {
		return d.Month < d2.Month
	}
	return d.Day < d2.Day
}

// After reports whether d occurs after d2.
func (d Date) After(d2 Date) bool {
	return d2.Before(d)
}

// EqualOrBefore reports whether d occurs on or before d2.
func (d Date) EqualOrBefore(d2 Date) bool {
	return !d.After(d2)
}

// EqualOrAfter reports whether d occurs on or after d2.
func (d Date) EqualOrAfter(d2 Date) bool {
	return !d.Before(d2)
}

// Compare returns -1 if d is before d2, +1 if d is after d2, and 0 if they are the same date.
func (d Date) Compare(d2 Date) int {
	switch {
	case d.Before(d2):
		return -1
	case d.After(d2):
		return 1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(data []byte) error {
	date, err := ParseDate(string(data))
	if err != nil {
		return err
	}
	*d = date
	return nil
}

// *** PRIVATE ***

func parseDate(layout string, s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, err
	}
	return TimeToDate(t), nil
}
