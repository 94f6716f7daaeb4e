package fvalue

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestIsNull(t *testing.T) {
	expectedValues := map[string]bool{
		"":          true,
		"   ":       true,
		"\t":        true,
		`\N`:        true,
		`\n`:        true,
		` \N `:      true,
		`\N\N`:      true,
		"a":         false,
		`\Nx`:       false,
		"0":         false,
		`"\N"`:      false,
		"\\N \\n  ": true,
	}
	for raw, expected := range expectedValues {
		assert.Equalf(t, expected, IsNull(raw), "raw %q", raw)
	}
}

func TestCoerce_Numeric(t *testing.T) {
	value, err := Coerce("$1,234.50", TypeFloat, nil)
	require.NoError(t, err)
	assert.Equal(t, NewFloat(1234.50), value)

	value, err = Coerce("(50)", TypeInteger, nil)
	require.NoError(t, err)
	assert.Equal(t, NewInteger(-50), value)

	value, err = Coerce("25%", TypeFloat, nil)
	require.NoError(t, err)
	assert.Equal(t, NewFloat(0.25), value)

	value, err = Coerce("($1,000.75)", TypeFloat, nil)
	require.NoError(t, err)
	assert.Equal(t, NewFloat(-1000.75), value)

	value, err = Coerce(" 32 ", TypeInteger, nil)
	require.NoError(t, err)
	assert.Equal(t, NewInteger(32), value)
}

func TestCoerce_IntegerTruncatesTowardZero(t *testing.T) {
	expectedValues := map[string]int64{
		"7.9":    7,
		"-7.9":   -7,
		"(7.9)":  -7,
		"150%":   1,
		"1,000":  1000,
		"$12.00": 12,
	}
	for raw, expected := range expectedValues {
		value, err := Coerce(raw, TypeInteger, nil)
		require.NoErrorf(t, err, "raw %q", raw)
		assert.Equalf(t, NewInteger(expected), value, "raw %q", raw)
	}
}

func TestCoerce_NumericFormatFallsBackToText(t *testing.T) {
	for _, valueType := range []Type{TypeInteger, TypeFloat} {
		value, err := Coerce("abc", valueType, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNumericFormat))
		assert.Equal(t, NewText("abc"), value)

		coercionErr := CoercionError{}
		require.True(t, errors.As(err, &coercionErr))
		assert.Equal(t, valueType, coercionErr.Type)
		assert.Equal(t, "abc", coercionErr.Raw)
	}

	for _, valueType := range []Type{TypeInteger, TypeFloat} {
		for _, raw := range []string{"NaN", "Inf", "-Inf", "1e400"} {
			value, err := Coerce(raw, valueType, nil)
			assert.Truef(t, errors.Is(err, ErrNumericFormat), "%s %q", valueType, raw)
			assert.Equalf(t, NewText(raw), value, "%s %q", valueType, raw)
		}
	}
}

func TestParseNumber_InnerWhitespace(t *testing.T) {
	expectedValues := map[string]float64{
		"( 50 )":     -50,
		"$ 1,200":    1200,
		"( $ 12.5 )": -12.5,
		"50 %":       0.5,
		"(\t7 %)":    -0.07,
	}
	for raw, expected := range expectedValues {
		actual, err := ParseNumber(raw)
		require.NoErrorf(t, err, "raw %q", raw)
		assert.InDeltaf(t, expected, actual, 1e-9, "raw %q", raw)
	}
}

func TestCoerce_Boolean(t *testing.T) {
	expectedValues := map[string]bool{
		"1":      true,
		"t":      true,
		"T":      true,
		"0":      false,
		"f":      false,
		"y":      false,
		" 1 ":    true,
		"true":   true,
		"TRUE":   true,
		"false":  false,
		"yes":    false,
		"truthy": false,
	}
	for raw, expected := range expectedValues {
		value, err := Coerce(raw, TypeBoolean, nil)
		require.NoError(t, err)
		assert.Equalf(t, NewBoolean(expected), value, "raw %q", raw)
	}
}

func TestCoerce_Null(t *testing.T) {
	value, err := Coerce(`\N`, TypeInteger, nil)
	require.NoError(t, err)
	assert.Equal(t, Null(), value)
	assert.True(t, value.IsNull())

	value, err = Coerce("   ", TypeText, nil)
	require.NoError(t, err)
	assert.Equal(t, Null(), value)

	value, err = Coerce("", TypeDate, BuiltinDateFormats())
	require.NoError(t, err)
	assert.Equal(t, Null(), value)

	value, err = Coerce(NullDate, TypeDate, BuiltinDateFormats())
	require.NoError(t, err)
	assert.Equal(t, Null(), value)
}

func TestCoerce_TextKeepsRawValue(t *testing.T) {
	value, err := Coerce(" Bowles, Jason ", TypeText, nil)
	require.NoError(t, err)
	assert.Equal(t, NewText(" Bowles, Jason "), value)
}

func TestCoerce_UnknownType(t *testing.T) {
	_, err := Coerce("1", Type("decimal"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownType))
	assert.False(t, IsValidType(Type("decimal")))
	assert.True(t, IsValidType(TypeDate))
}

func TestCoerce_DateCascade(t *testing.T) {
	formats := []string{"MM/dd/yyyy", "yyyyMMdd"}
	value, err := Coerce("20130709", TypeDate, formats)
	require.NoError(t, err)
	assert.Equal(t, NewDate(date(2013, time.July, 9)), value)

	value, err = Coerce("7/9/2013", TypeDate, formats)
	require.NoError(t, err)
	assert.Equal(t, NewDate(date(2013, time.July, 9)), value)
}

func TestCoerce_UnparseableDate(t *testing.T) {
	value, err := Coerce("someday", TypeDate, BuiltinDateFormats())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnparseableDate))
	assert.Equal(t, NewText("someday"), value)
}

func TestParseDate_BuiltinFormats(t *testing.T) {
	expectedValues := map[string]time.Time{
		"2013-01-01-06.00.00.000000": time.Date(2013, time.January, 1, 6, 0, 0, 0, time.UTC),
		"2013-01-01-13.20.05.000000": time.Date(2013, time.January, 1, 13, 20, 5, 0, time.UTC),
		"2013-01-01-23.59.59.000000": time.Date(2013, time.January, 1, 23, 59, 59, 0, time.UTC),
		"1/1/2013 15:20:05":          time.Date(2013, time.January, 1, 15, 20, 5, 0, time.UTC),
		"11/2/2010":                  date(2010, time.November, 2),
		"10/16/2015":                 date(2015, time.October, 16),
		"20130709":                   date(2013, time.July, 9),
		"May 18, 2014":               date(2014, time.May, 18),
		"26-May-14":                  date(2014, time.May, 26),
	}
	for raw, expected := range expectedValues {
		actual, err := ParseDate(raw, BuiltinDateFormats())
		require.NoErrorf(t, err, "raw %q", raw)
		assert.Equalf(t, expected, actual, "raw %q", raw)
	}
}

func TestParseDate_OrderMatters(t *testing.T) {
	// 01/02/2013 is January 2nd for MM/dd and February 1st for dd/MM
	monthFirst, err := ParseDate("01/02/2013", []string{"MM/dd/yyyy", "dd/MM/yyyy"})
	require.NoError(t, err)
	dayFirst, err := ParseDate("01/02/2013", []string{"dd/MM/yyyy", "MM/dd/yyyy"})
	require.NoError(t, err)

	assert.Equal(t, date(2013, time.January, 2), monthFirst)
	assert.Equal(t, date(2013, time.February, 1), dayFirst)
}
