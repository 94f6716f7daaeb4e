package fvalue

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNumericFormat   = errors.New("numeric format")
	ErrUnparseableDate = errors.New("unparseable date")
	ErrUnknownType     = errors.New("unknown value type")
)

type (
	// CoercionError is recoverable: the raw text is kept as a Text value.
	CoercionError struct {
		Raw   string
		Type  Type
		Kind  error
		Cause error
	}
	UnknownTypeError struct {
		Type Type
	}
)

func (r CoercionError) Error() string {
	msg := fmt.Sprintf(`%v: unable to coerce "%s" to %s`, r.Kind, r.Raw, r.Type)
	if r.Cause != nil {
		msg += ": " + r.Cause.Error()
	}
	return msg
}

func (r CoercionError) Unwrap() error {
	return r.Kind
}

func (r UnknownTypeError) Error() string {
	return fmt.Sprintf(`%v "%s"`, ErrUnknownType, r.Type)
}

func (r UnknownTypeError) Unwrap() error {
	return ErrUnknownType
}
