// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibkrflexstatement

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/bufdev/ibflex/internal/pkg/xmltree"
)

// Element is a typed, read-only view over the attributes of one record element.
//
// Blank attributes are treated exactly like absent attributes by the optional
// accessors. The Flex format uses empty attributes to mean "not applicable".
type Element struct {
	element    *xmltree.Element
	recordKind RecordKind
}

// NewElement returns a new Element for decoding a record of the given kind.
func NewElement(recordKind RecordKind, element *xmltree.Element) *Element {
	return &Element{
		element:    element,
		recordKind: recordKind,
	}
}

// RecordKind returns the kind of record being decoded.
func (e *Element) RecordKind() RecordKind {
	return e.recordKind
}

// RequiredString returns the attribute text, which may be empty.
//
// Returns a *MissingAttributeError if the attribute is absent.
func (e *Element) RequiredString(attribute string) (string, error) {
	value, ok := e.element.Attr(attribute)
	if !ok {
		return "", &MissingAttributeError{RecordKind: e.recordKind, Attribute: attribute}
	}
	return value, nil
}

// OptionalString returns the attribute text, or nil if the attribute is absent or blank.
func (e *Element) OptionalString(attribute string) *string {
	value, ok := e.element.Attr(attribute)
	if !ok || value == "" {
		return nil
	}
	return &value
}

// ScalarType describes how to parse attribute text into a T.
type ScalarType[T any] struct {
	name  string
	parse func(string) (T, error)
}

// NewScalarType returns a new ScalarType. The name is reported in errors.
func NewScalarType[T any](name string, parse func(string) (T, error)) ScalarType[T] {
	return ScalarType[T]{
		name:  name,
		parse: parse,
	}
}

// Name returns the name of the scalar type.
func (s ScalarType[T]) Name() string {
	return s.name
}

var (
	// Float64 parses amounts, prices, and quantities in decimal notation.
	//
	// Hexadecimal notation, NaN, and infinities are rejected.
	Float64 = NewScalarType("float64", parseFloat64)
	// Int64 parses signed integers.
	Int64 = NewScalarType("int64", func(value string) (int64, error) {
		return strconv.ParseInt(value, 10, 64)
	})
	// Uint32 parses contract identifiers.
	Uint32 = NewScalarType("uint32", func(value string) (uint32, error) {
		parsed, err := strconv.ParseUint(value, 10, 32)
		return uint32(parsed), err
	})
)

// RequiredScalar parses the attribute text as a T.
//
// Returns a *MissingAttributeError if the attribute is absent, and a
// *MalformedValueError if the text cannot be parsed. Blank text is malformed.
func RequiredScalar[T any](e *Element, attribute string, scalarType ScalarType[T]) (T, error) {
	value, err := e.RequiredString(attribute)
	if err != nil {
		var zero T
		return zero, err
	}
	return parseScalar(e, attribute, value, scalarType)
}

// OptionalScalar parses the attribute text as a T, returning nil if the
// attribute is absent or blank.
//
// Returns a *MalformedValueError if the text is present but cannot be parsed.
func OptionalScalar[T any](e *Element, attribute string, scalarType ScalarType[T]) (*T, error) {
	value := e.OptionalString(attribute)
	if value == nil {
		return nil, nil
	}
	parsed, err := parseScalar(e, attribute, *value, scalarType)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// *** PRIVATE ***

func parseScalar[T any](e *Element, attribute string, value string, scalarType ScalarType[T]) (T, error) {
	parsed, err := scalarType.parse(value)
	if err != nil {
		var zero T
		return zero, &MalformedValueError{
			RecordKind: e.recordKind,
			Attribute:  attribute,
			Value:      value,
			TargetType: scalarType.name,
			Err:        err,
		}
	}
	return parsed, nil
}

func parseFloat64(value string) (float64, error) {
	if strings.ContainsAny(value, "xX") {
		return 0, errors.New("hexadecimal notation is not supported")
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, errors.New("value is not finite")
	}
	return parsed, nil
}
