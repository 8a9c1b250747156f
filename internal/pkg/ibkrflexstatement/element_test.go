// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibkrflexstatement

import (
	"errors"
	"testing"

	"github.com/bufdev/ibflex/internal/pkg/xmltree"
	"github.com/stretchr/testify/require"
)

func TestElementStrings(t *testing.T) {
	t.Parallel()
	element := newTestElement(t, `<Trade symbol="ARGX" blank="" />`)

	value, err := element.RequiredString("symbol")
	require.NoError(t, err)
	require.Equal(t, "ARGX", value)
	// A blank required string is present.
	value, err = element.RequiredString("blank")
	require.NoError(t, err)
	require.Empty(t, value)
	_, err = element.RequiredString("missing")
	var missingAttributeError *MissingAttributeError
	require.True(t, errors.As(err, &missingAttributeError))
	require.Equal(t, RecordKindTrade, missingAttributeError.RecordKind)
	require.Equal(t, "missing", missingAttributeError.Attribute)

	require.Equal(t, "ARGX", *element.OptionalString("symbol"))
	// Blank and absent are indistinguishable.
	require.Nil(t, element.OptionalString("blank"))
	require.Nil(t, element.OptionalString("missing"))
}

func TestElementScalars(t *testing.T) {
	t.Parallel()
	element := newTestElement(t, `<Trade price="606.57" commission="-1.000035" conid="276343981" bad="1.2.3" blank="" big="4294967296" />`)

	price, err := RequiredScalar(element, "price", Float64)
	require.NoError(t, err)
	require.Equal(t, 606.57, price)
	commission, err := RequiredScalar(element, "commission", Float64)
	require.NoError(t, err)
	require.Equal(t, -1.000035, commission)
	conid, err := RequiredScalar(element, "conid", Uint32)
	require.NoError(t, err)
	require.Equal(t, uint32(276343981), conid)
	conid64, err := RequiredScalar(element, "conid", Int64)
	require.NoError(t, err)
	require.Equal(t, int64(276343981), conid64)

	_, err = RequiredScalar(element, "bad", Float64)
	var malformedValueError *MalformedValueError
	require.True(t, errors.As(err, &malformedValueError))
	require.Equal(t, RecordKindTrade, malformedValueError.RecordKind)
	require.Equal(t, "bad", malformedValueError.Attribute)
	require.Equal(t, "1.2.3", malformedValueError.Value)
	require.Equal(t, "float64", malformedValueError.TargetType)

	_, err = RequiredScalar(element, "big", Uint32)
	require.True(t, errors.As(err, &malformedValueError))
	require.Equal(t, "uint32", malformedValueError.TargetType)

	// A blank required scalar is malformed, not missing.
	_, err = RequiredScalar(element, "blank", Float64)
	require.True(t, errors.As(err, &malformedValueError))
	require.Empty(t, malformedValueError.Value)

	_, err = RequiredScalar(element, "missing", Float64)
	var missingAttributeError *MissingAttributeError
	require.True(t, errors.As(err, &missingAttributeError))
}

func TestElementFloat64Notation(t *testing.T) {
	t.Parallel()
	element := newTestElement(t, `<Trade exponent="1.5e3" negative="-0.25" nan="NaN" inf="Inf" negInf="-Infinity" hex="0x1p-2" overflow="1e400" />`)

	value, err := RequiredScalar(element, "exponent", Float64)
	require.NoError(t, err)
	require.Equal(t, 1500.0, value)
	value, err = RequiredScalar(element, "negative", Float64)
	require.NoError(t, err)
	require.Equal(t, -0.25, value)

	for _, attribute := range []string{"nan", "inf", "negInf", "hex", "overflow"} {
		_, err := RequiredScalar(element, attribute, Float64)
		var malformedValueError *MalformedValueError
		require.True(t, errors.As(err, &malformedValueError), attribute)
		require.Equal(t, attribute, malformedValueError.Attribute)
		require.Equal(t, "float64", malformedValueError.TargetType)
		_, err = OptionalScalar(element, attribute, Float64)
		require.True(t, errors.As(err, &malformedValueError), attribute)
	}
}

func TestElementOptionalScalars(t *testing.T) {
	t.Parallel()
	element := newTestElement(t, `<CashReportCurrency commissionsMTD="-11167.4772929" zero="0" blank="" bad="x" />`)

	value, err := OptionalScalar(element, "commissionsMTD", Float64)
	require.NoError(t, err)
	require.NotNil(t, value)
	require.Equal(t, -11167.4772929, *value)
	// Zero is a value.
	value, err = OptionalScalar(element, "zero", Float64)
	require.NoError(t, err)
	require.NotNil(t, value)
	require.Zero(t, *value)
	// Blank and absent both yield no value.
	value, err = OptionalScalar(element, "blank", Float64)
	require.NoError(t, err)
	require.Nil(t, value)
	value, err = OptionalScalar(element, "missing", Float64)
	require.NoError(t, err)
	require.Nil(t, value)

	_, err = OptionalScalar(element, "bad", Float64)
	var malformedValueError *MalformedValueError
	require.True(t, errors.As(err, &malformedValueError))
	require.Equal(t, "x", malformedValueError.Value)
}

func TestNewScalarType(t *testing.T) {
	t.Parallel()
	yesNo := NewScalarType("yes/no", func(value string) (bool, error) {
		switch value {
		case "Y":
			return true, nil
		case "N":
			return false, nil
		default:
			return false, errors.New("not Y or N")
		}
	})
	require.Equal(t, "yes/no", yesNo.Name())
	element := newTestElement(t, `<Trade isAPIOrder="N" other="maybe" />`)
	value, err := RequiredScalar(element, "isAPIOrder", yesNo)
	require.NoError(t, err)
	require.False(t, value)
	_, err = RequiredScalar(element, "other", yesNo)
	var malformedValueError *MalformedValueError
	require.True(t, errors.As(err, &malformedValueError))
	require.Equal(t, "yes/no", malformedValueError.TargetType)
}

func newTestElement(t *testing.T, data string) *Element {
	t.Helper()
	root, err := xmltree.Parse([]byte(data))
	require.NoError(t, err)
	return NewElement(RecordKindTrade, root)
}
