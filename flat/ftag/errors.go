package ftag

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnknownTag        = errors.New("unknown tag")
	ErrMalformedIdentity = errors.New("malformed identity")
	ErrInvalidTag        = errors.New("invalid tag")
)

type UnknownTagError struct {
	Tag string
}

func (r UnknownTagError) Error() string {
	return fmt.Sprintf(`%v "%s"`, ErrUnknownTag, r.Tag)
}

func (r UnknownTagError) Unwrap() error {
	return ErrUnknownTag
}
