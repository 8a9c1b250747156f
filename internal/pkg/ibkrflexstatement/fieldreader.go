// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibkrflexstatement

import (
	"time"

	"github.com/bufdev/ibflex/internal/pkg/tradingtime"
	"github.com/bufdev/ibflex/internal/pkg/xmltree"
)

// decodeContext is the read-only configuration shared by all record decoders.
type decodeContext struct {
	referenceLocation *time.Location
	closeHour         int
	abbreviationTable tradingtime.AbbreviationTable
	assetCategorySet  AssetCategorySet
}

// fieldReader reads typed fields from one Element and retains the first error.
//
// Once an error has occurred every further read is skipped and returns the zero
// value, so a decoder can read all of its fields and check err once.
type fieldReader struct {
	element       *Element
	decodeContext *decodeContext
	err           error
}

func newFieldReader(recordKind RecordKind, element *xmltree.Element, decodeContext *decodeContext) *fieldReader {
	return &fieldReader{
		element:       NewElement(recordKind, element),
		decodeContext: decodeContext,
	}
}

func (r *fieldReader) requiredString(attribute string) string {
	return read(r, func() (string, error) {
		return r.element.RequiredString(attribute)
	})
}

func (r *fieldReader) optionalString(attribute string) *string {
	if r.err != nil {
		return nil
	}
	return r.element.OptionalString(attribute)
}

func (r *fieldReader) requiredFloat64(attribute string) float64 {
	return read(r, func() (float64, error) {
		return RequiredScalar(r.element, attribute, Float64)
	})
}

func (r *fieldReader) optionalFloat64(attribute string) *float64 {
	return read(r, func() (*float64, error) {
		return OptionalScalar(r.element, attribute, Float64)
	})
}

func (r *fieldReader) requiredUint32(attribute string) uint32 {
	return read(r, func() (uint32, error) {
		return RequiredScalar(r.element, attribute, Uint32)
	})
}

func (r *fieldReader) optionalUint32(attribute string) *uint32 {
	return read(r, func() (*uint32, error) {
		return OptionalScalar(r.element, attribute, Uint32)
	})
}

func (r *fieldReader) currency(attribute string) Currency {
	return readDecoded(r, attribute, ParseCurrency)
}

func (r *fieldReader) assetCategory(attribute string) AssetCategory {
	return readDecoded(r, attribute, r.decodeContext.assetCategorySet.Parse)
}

func (r *fieldReader) tradeSide(attribute string) TradeSide {
	return readDecoded(r, attribute, ParseTradeSide)
}

func (r *fieldReader) positionSide(attribute string) PositionSide {
	return readDecoded(r, attribute, ParsePositionSide)
}

func (r *fieldReader) orderType(attribute string) OrderType {
	return readDecoded(r, attribute, ParseOrderType)
}

func (r *fieldReader) openCloseIndicator(attribute string) OpenCloseIndicator {
	return readDecoded(r, attribute, ParseOpenCloseIndicator)
}

// closeInstant reads a calendar date and returns its trading-day close.
func (r *fieldReader) closeInstant(attribute string) int64 {
	return readDecoded(r, attribute, r.closeInstantMillis)
}

// periodStart reads a calendar date and returns the first millisecond of the
// reporting period starting on that date.
func (r *fieldReader) periodStart(attribute string) int64 {
	closeMillis := r.closeInstant(attribute)
	if r.err != nil {
		return 0
	}
	return tradingtime.PeriodStartMillis(closeMillis)
}

func (r *fieldReader) executionInstant(attribute string) int64 {
	return readDecoded(r, attribute, r.executionInstantMillis)
}

// resolvedExecutionInstant reads an optional execution time and returns nil if
// it is absent or does not resolve. It never sets err.
func (r *fieldReader) resolvedExecutionInstant(attribute string) *int64 {
	value := r.optionalString(attribute)
	if value == nil {
		return nil
	}
	millis, err := r.executionInstantMillis(*value)
	if err != nil {
		return nil
	}
	return &millis
}

func (r *fieldReader) closeInstantMillis(value string) (int64, error) {
	return tradingtime.CloseInstantMillis(value, r.decodeContext.referenceLocation, r.decodeContext.closeHour)
}

func (r *fieldReader) executionInstantMillis(value string) (int64, error) {
	return tradingtime.ExecutionInstantMillis(value, r.decodeContext.abbreviationTable)
}

func read[T any](r *fieldReader, f func() (T, error)) T {
	var zero T
	if r.err != nil {
		return zero
	}
	value, err := f()
	if err != nil {
		r.err = err
		return zero
	}
	return value
}

// readDecoded reads a required attribute and converts it with decode, wrapping
// decode failures in a *FieldError.
func readDecoded[T any](r *fieldReader, attribute string, decode func(string) (T, error)) T {
	return read(r, func() (T, error) {
		value, err := r.element.RequiredString(attribute)
		if err != nil {
			var zero T
			return zero, err
		}
		return decodeField(r, attribute, value, decode)
	})
}

func decodeField[T any](r *fieldReader, attribute string, value string, decode func(string) (T, error)) (T, error) {
	decoded, err := decode(value)
	if err != nil {
		var zero T
		return zero, &FieldError{
			RecordKind: r.element.RecordKind(),
			Attribute:  attribute,
			Value:      value,
			Err:        err,
		}
	}
	return decoded, nil
}
