// Copyright 2026 Peter Edge
//
// All rights reserved.

package tradingtime

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"
)

// AbbreviationTable resolves timezone abbreviations to locations.
//
// Abbreviations are ambiguous in general but not within a single broker's
// reporting convention. An AbbreviationTable is immutable after construction
// and safe for concurrent use. The zero value resolves nothing.
type AbbreviationTable struct {
	locations map[string]*time.Location
}

// NewAbbreviationTable returns a new AbbreviationTable from a map of
// abbreviation to IANA timezone name.
func NewAbbreviationTable(abbreviationToTimezone map[string]string) (AbbreviationTable, error) {
	locations := make(map[string]*time.Location, len(abbreviationToTimezone))
	for abbreviation, timezone := range abbreviationToTimezone {
		if abbreviation == "" {
			return AbbreviationTable{}, errors.New("timezone abbreviation must not be empty")
		}
		if timezone == "" {
			return AbbreviationTable{}, fmt.Errorf("timezone for abbreviation %q must not be empty", abbreviation)
		}
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return AbbreviationTable{}, fmt.Errorf("loading timezone %q for abbreviation %q: %w", timezone, abbreviation, err)
		}
		locations[abbreviation] = loc
	}
	return AbbreviationTable{locations: locations}, nil
}

// NewAbbreviationTableForLocations returns a new AbbreviationTable from
// already-loaded locations.
func NewAbbreviationTableForLocations(abbreviationToLocation map[string]*time.Location) AbbreviationTable {
	return AbbreviationTable{locations: maps.Clone(abbreviationToLocation)}
}

// DefaultAbbreviationTimezones returns the abbreviations used in IBKR statements
// for US-based accounts, mapped to their IANA timezone name.
func DefaultAbbreviationTimezones() map[string]string {
	return map[string]string{
		"EST": ReferenceTimezone,
		"EDT": ReferenceTimezone,
	}
}

// DefaultAbbreviationTable returns the table for DefaultAbbreviationTimezones.
func DefaultAbbreviationTable() (AbbreviationTable, error) {
	return NewAbbreviationTable(DefaultAbbreviationTimezones())
}

// Lookup returns the location for the abbreviation.
func (a AbbreviationTable) Lookup(abbreviation string) (*time.Location, bool) {
	loc, ok := a.locations[abbreviation]
	return loc, ok
}

// Abbreviations returns the sorted abbreviations in the table.
func (a AbbreviationTable) Abbreviations() []string {
	return slices.Sorted(maps.Keys(a.locations))
}
