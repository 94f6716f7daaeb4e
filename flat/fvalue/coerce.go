package fvalue

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// HiveNull is how Hive writes out a null column.
const HiveNull = `\N`

var hiveNullStripper = strings.NewReplacer(HiveNull, "", strings.ToLower(HiveNull), "")

type coerceFunc func(raw string, dateFormats []string) (Value, error)

var coerceDispatchMap = map[Type]coerceFunc{
	TypeInteger: coerceInteger,
	TypeFloat:   coerceFloat,
	TypeDate:    coerceDate,
	TypeBoolean: coerceBoolean,
	TypeText:    coerceText,
}

// IsNull reports whether raw is empty, blank, or blank once every \N marker is removed.
func IsNull(raw string) bool {
	value := strings.TrimSpace(raw)
	if value == "" {
		return true
	}
	value = hiveNullStripper.Replace(value)
	return strings.TrimSpace(value) == ""
}

// Coerce converts raw into a value of type valueType.
//
// Malformed numbers and dates do not fail hard: the raw text comes back as a Text
// value together with a CoercionError describing what went wrong. Only an unknown
// type is a hard error, in which case the returned Value is Null.
func Coerce(raw string, valueType Type, dateFormats []string) (Value, error) {
	coerce, ok := coerceDispatchMap[valueType]
	if !ok {
		return Null(), UnknownTypeError{Type: valueType}
	}
	if IsNull(raw) {
		return Null(), nil
	}
	return coerce(raw, dateFormats)
}

// ParseNumber runs the numeric pipeline: (x) is negative, a leading $ is dropped,
// a trailing % divides by 100 and thousands separators are ignored.
func ParseNumber(raw string) (float64, error) {
	value := strings.TrimSpace(raw)
	negative := false
	percent := false
	if len(value) >= 2 && strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
		value = strings.TrimSpace(value[1 : len(value)-1])
		negative = true
	}
	value = strings.TrimSpace(strings.TrimPrefix(value, "$"))
	if strings.HasSuffix(value, "%") {
		value = strings.TrimSpace(strings.TrimSuffix(value, "%"))
		percent = true
	}
	value = strings.ReplaceAll(value, ",", "")

	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if percent {
		number = number / 100
	}
	if negative {
		number = number * -1
	}
	return number, nil
}

// ParseBool treats a single "1" or "t" as true and any other single character as
// false; longer input must spell "true".
func ParseBool(raw string) bool {
	value := strings.TrimSpace(raw)
	if utf8.RuneCountInString(value) == 1 {
		return value == "1" || strings.EqualFold(value, "t")
	}
	return strings.EqualFold(value, "true")
}

// ParseDate tries patterns in order and returns the first successful parse.
func ParseDate(raw string, patterns []string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, pattern := range patterns {
		t, err := time.Parse(ParseLayout(pattern), value)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrUnparseableDate, `"%s" matched none of %d formats`, raw, len(patterns))
}

func coerceFloat(raw string, _ []string) (Value, error) {
	number, err := ParseNumber(raw)
	if err == nil && !isFinite(number) {
		err = errors.New("not a finite number")
	}
	if err != nil {
		return NewText(raw), CoercionError{Raw: raw, Type: TypeFloat, Kind: ErrNumericFormat, Cause: err}
	}
	return NewFloat(number), nil
}

func coerceInteger(raw string, _ []string) (Value, error) {
	number, err := ParseNumber(raw)
	if err == nil && !isFinite(number) {
		err = errors.New("not a finite number")
	}
	truncated := math.Trunc(number)
	if err == nil && (truncated >= math.MaxInt64 || truncated < math.MinInt64) {
		err = errors.New("out of integer range")
	}
	if err != nil {
		return NewText(raw), CoercionError{Raw: raw, Type: TypeInteger, Kind: ErrNumericFormat, Cause: err}
	}
	return NewInteger(int64(truncated)), nil
}

// coerceDate reads the rendered form of a missing date back as Null.
func coerceDate(raw string, dateFormats []string) (Value, error) {
	if strings.EqualFold(strings.TrimSpace(raw), NullDate) {
		return Null(), nil
	}
	t, err := ParseDate(raw, dateFormats)
	if err != nil {
		return NewText(raw), CoercionError{Raw: raw, Type: TypeDate, Kind: ErrUnparseableDate}
	}
	return NewDate(t), nil
}

func coerceBoolean(raw string, _ []string) (Value, error) {
	return NewBoolean(ParseBool(raw)), nil
}

func coerceText(raw string, _ []string) (Value, error) {
	return NewText(raw), nil
}

func isFinite(number float64) bool {
	return !math.IsNaN(number) && !math.IsInf(number, 0)
}
