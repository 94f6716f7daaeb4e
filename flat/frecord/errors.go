package frecord

import (
	"fmt"

	"flatrec/flat/fvalue"

	"github.com/pkg/errors"
)

var (
	ErrTooManyFields = errors.New("more tokens than declared fields")
	ErrTypeMismatch  = errors.New("type mismatch")
	ErrSkippedField  = errors.New("skipped field")
)

type (
	// DecodeError is a structural failure that aborted the decoding of one line.
	DecodeError struct {
		Ordinal int
		Line    string
		Err     error
	}
	TypeMismatchError struct {
		Name string
		Want fvalue.Type
		Got  fvalue.Type
	}
)

func (r DecodeError) Error() string {
	return fmt.Sprintf("decode error on record %d: %v", r.Ordinal, r.Err)
}

func (r DecodeError) Unwrap() error {
	return r.Err
}

func (r TypeMismatchError) Error() string {
	return fmt.Sprintf(`%v: field "%s" holds %s, not %s`, ErrTypeMismatch, r.Name, r.Got, r.Want)
}

func (r TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}
