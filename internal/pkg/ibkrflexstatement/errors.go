// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibkrflexstatement

import "fmt"

// MissingAttributeError is returned when a required attribute is absent.
type MissingAttributeError struct {
	RecordKind RecordKind
	Attribute  string
}

// Error implements error.
func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("%s: missing required attribute %q", e.RecordKind, e.Attribute)
}

// MalformedValueError is returned when an attribute is present but cannot be
// parsed as the expected scalar type.
type MalformedValueError struct {
	RecordKind RecordKind
	Attribute  string
	// Value is the raw attribute text.
	Value string
	// TargetType is the name of the scalar type, such as "float64".
	TargetType string
	// Err is the underlying parse error.
	Err error
}

// Error implements error.
func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("%s: attribute %q has value %q that is not a valid %s", e.RecordKind, e.Attribute, e.Value, e.TargetType)
}

// Unwrap returns the underlying parse error.
func (e *MalformedValueError) Unwrap() error {
	return e.Err
}

// UnknownEnumValueError is returned when a value is outside of an enumeration's closed set.
type UnknownEnumValueError struct {
	// Enumeration is the name of the enumeration, such as "currency".
	Enumeration string
	// Value is the raw text.
	Value string
}

// Error implements error.
func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Enumeration, e.Value)
}

// FieldError attaches the record kind, attribute, and raw value to a failure
// from an enumeration or timestamp decoder.
//
// Err is an *UnknownEnumValueError, a *tradingtime.InvalidDateError, or a
// *tradingtime.UnknownTimezoneAbbreviationError.
type FieldError struct {
	RecordKind RecordKind
	Attribute  string
	Value      string
	Err        error
}

// Error implements error.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: attribute %q with value %q: %v", e.RecordKind, e.Attribute, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// StatementStructureError is returned when a statement does not contain
// exactly one AccountInformation element.
type StatementStructureError struct {
	Reason string
}

// Error implements error.
func (e *StatementStructureError) Error() string {
	return e.Reason
}
