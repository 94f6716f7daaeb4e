package fvalue

import (
	"time"
)

type (
	// Type is the declared type of a field.
	Type string
	// Value is a decoded field value. Only the member matching Type is meaningful.
	Value struct {
		Type  Type      `json:"type"`
		Int   int64     `json:"int,omitempty"`
		Float float64   `json:"float,omitempty"`
		Time  time.Time `json:"time,omitempty"`
		Bool  bool      `json:"bool,omitempty"`
		Text  string    `json:"text,omitempty"`
	}
)

const (
	TypeNull    = Type("null")
	TypeInteger = Type("integer")
	TypeFloat   = Type("float")
	TypeDate    = Type("date")
	TypeBoolean = Type("boolean")
	TypeText    = Type("text")
)

const (
	// DateString1 looks like 2013-01-01-06.00.00.000000
	DateString1 = "yyyy-MM-dd-hh.mm.ss.SSSSSS"
	// DateString2 looks like 1/1/2013 15:20:05
	DateString2 = "MM/dd/yyyy HH:mm:ss"
	// DateString3 looks like 11/2/2010
	DateString3 = "MM/dd/yyyy"
	// DateString4 looks like 20130709
	DateString4 = "yyyyMMdd"
	// DateString5 looks like May 18, 2014
	DateString5 = "MMM dd, yyyy"
	// DateString6 looks like 26-May-14
	DateString6 = "dd-MMM-yy"

	DefaultDateOutput = DateString3
	// NullDate is how a missing date is rendered.
	NullDate = "null"
)

// BuiltinDateFormats returns a fresh copy of the patterns every schema accepts.
func BuiltinDateFormats() []string {
	return []string{
		DateString1,
		DateString2,
		DateString3,
		DateString4,
		DateString5,
		DateString6,
	}
}

// Types lists every declarable field type.
var Types = []Type{
	TypeInteger,
	TypeFloat,
	TypeDate,
	TypeBoolean,
	TypeText,
}

func Null() Value {
	return Value{Type: TypeNull}
}

func NewInteger(i int64) Value {
	return Value{Type: TypeInteger, Int: i}
}

func NewFloat(f float64) Value {
	return Value{Type: TypeFloat, Float: f}
}

func NewDate(t time.Time) Value {
	return Value{Type: TypeDate, Time: t}
}

func NewBoolean(b bool) Value {
	return Value{Type: TypeBoolean, Bool: b}
}

func NewText(s string) Value {
	return Value{Type: TypeText, Text: s}
}

func (r Value) IsNull() bool {
	return r.Type == TypeNull || r.Type == ""
}

// Native unwraps the value into a plain Go value, nil for Null.
func (r Value) Native() any {
	switch r.Type {
	case TypeInteger:
		return r.Int
	case TypeFloat:
		return r.Float
	case TypeDate:
		return r.Time
	case TypeBoolean:
		return r.Bool
	case TypeText:
		return r.Text
	}
	return nil
}

// IsValidType reports whether t can be declared on a field.
func IsValidType(t Type) bool {
	_, ok := coerceDispatchMap[t]
	return ok
}
