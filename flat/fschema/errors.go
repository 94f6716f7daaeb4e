package fschema

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnknownField   = errors.New("unknown field")
	ErrDuplicateField = errors.New("duplicate field")
	ErrInvalidField   = errors.New("invalid field")
	ErrInvalidSchema  = errors.New("invalid schema")
)

type (
	UnknownFieldError struct {
		Tag  string
		Name string
	}
	DuplicateFieldError struct {
		Tag  string
		Name string
	}
)

func (r UnknownFieldError) Error() string {
	return fmt.Sprintf(`%v "%s" in schema "%s"`, ErrUnknownField, r.Name, r.Tag)
}

func (r UnknownFieldError) Unwrap() error {
	return ErrUnknownField
}

func (r DuplicateFieldError) Error() string {
	return fmt.Sprintf(`%v "%s" in schema "%s"`, ErrDuplicateField, r.Name, r.Tag)
}

func (r DuplicateFieldError) Unwrap() error {
	return ErrDuplicateField
}
