// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package tradingtime converts IBKR report dates and execution times into
// epoch millisecond timestamps.
//
// Two distinct conversions exist and must not be mixed:
//
//   - A close instant is derived purely from a calendar date, anchored at a
//     fixed wall-clock hour (20:00 by default) in a reference timezone. It is
//     used for report-level "as of" timestamps.
//   - An execution instant is derived from a local date and time followed by a
//     timezone abbreviation such as "EDT". The abbreviation is resolved through
//     an AbbreviationTable supplied by the caller.
package tradingtime

import (
	"fmt"
	"strings"
	"time"
	// Embedded so that ReferenceTimezone resolves on hosts without a zoneinfo database.
	_ "time/tzdata"

	"github.com/bufdev/ibflex/internal/standard/xtime"
)

const (
	// ReferenceTimezone is the IANA name of the exchange timezone that close instants are anchored in.
	ReferenceTimezone = "America/New_York"
	// DefaultCloseHour is the wall-clock hour of the trading-day close, after the after-hours session.
	DefaultCloseHour = 20
	// DayMillis is the number of milliseconds in a 24-hour day.
	DayMillis int64 = 24 * 60 * 60 * 1000
)

var executionLayouts = []string{
	"2006-01-02;15:04:05",
	"20060102;150405",
}

// InvalidDateError is returned when a date or date-time string cannot be parsed.
type InvalidDateError struct {
	// Value is the raw input.
	Value string
	// Err is the underlying parse error, if any.
	Err error
}

// Error implements error.
func (e *InvalidDateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid date %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("invalid date %q", e.Value)
}

// Unwrap returns the underlying parse error.
func (e *InvalidDateError) Unwrap() error {
	return e.Err
}

// UnknownTimezoneAbbreviationError is returned when an execution time carries
// a timezone abbreviation that is not in the AbbreviationTable.
type UnknownTimezoneAbbreviationError struct {
	// Abbreviation is the unrecognized abbreviation.
	Abbreviation string
}

// Error implements error.
func (e *UnknownTimezoneAbbreviationError) Error() string {
	return fmt.Sprintf("unknown timezone abbreviation %q", e.Abbreviation)
}

// LoadReferenceLocation loads the location for ReferenceTimezone.
func LoadReferenceLocation() (*time.Location, error) {
	return time.LoadLocation(ReferenceTimezone)
}

// ParseDate parses a calendar date in either the "2006-01-02" or the compact
// "20060102" form. Both forms appear in Flex statements depending on the query
// settings.
func ParseDate(value string) (xtime.Date, error) {
	var date xtime.Date
	var err error
	if len(value) == len("20060102") {
		date, err = xtime.ParseCompactDate(value)
	} else {
		date, err = xtime.ParseDate(value)
	}
	if err != nil {
		return xtime.Date{}, &InvalidDateError{Value: value, Err: err}
	}
	return date, nil
}

// CloseInstantMillis returns the epoch milliseconds of hour:00:00 on the given
// calendar date, as wall-clock time in loc.
//
// Wall-clock times that do not exist or are ambiguous in loc because of a
// daylight saving transition resolve as time.Date does.
func CloseInstantMillis(date string, loc *time.Location, hour int) (int64, error) {
	parsed, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return time.Date(parsed.Year, parsed.Month, parsed.Day, hour, 0, 0, 0, loc).UnixMilli(), nil
}

// PeriodStartMillis returns the first millisecond of a reporting period whose
// first day closes at closeMillis.
//
// The period begins one millisecond after the previous day's close, computed
// as closeMillis minus exactly one 24-hour day plus one millisecond.
func PeriodStartMillis(closeMillis int64) int64 {
	return closeMillis - DayMillis + 1
}

// ExecutionInstantMillis converts a value such as "2025-04-25;10:19:55 EDT" into
// epoch milliseconds.
//
// The value is split at its last space into a local date-time and a timezone
// abbreviation. The abbreviation is resolved through table, and the local
// date-time is interpreted as wall-clock time in the resolved location.
func ExecutionInstantMillis(value string, table AbbreviationTable) (int64, error) {
	index := strings.LastIndexByte(value, ' ')
	if index < 0 {
		return 0, &InvalidDateError{Value: value}
	}
	localDateTime, abbreviation := strings.TrimSpace(value[:index]), value[index+1:]
	loc, ok := table.Lookup(abbreviation)
	if !ok {
		return 0, &UnknownTimezoneAbbreviationError{Abbreviation: abbreviation}
	}
	var parseErr error
	for _, layout := range executionLayouts {
		t, err := time.ParseInLocation(layout, localDateTime, loc)
		if err == nil {
			return t.UnixMilli(), nil
		}
		if parseErr == nil {
			parseErr = err
		}
	}
	return 0, &InvalidDateError{Value: value, Err: parseErr}
}
