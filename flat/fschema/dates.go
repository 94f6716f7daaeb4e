package fschema

import (
	"strings"

	"flatrec/ds"
	"flatrec/flat/fvalue"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// AddDateFormat appends a date pattern. Blank patterns are ignored.
func (r *Schema) AddDateFormat(pattern string) {
	if strings.TrimSpace(pattern) == "" {
		return
	}
	r.dateFormats = append(r.dateFormats, pattern)
}

// DateFormats returns the stored patterns in their current order.
func (r *Schema) DateFormats() []string {
	return ds.ShallowCopy(r.dateFormats)
}

func (r *Schema) DateOutput() string {
	return r.dateOutput
}

// SetDateOutput sets the pattern dates are rendered with. Blank resets to the default.
func (r *Schema) SetDateOutput(pattern string) {
	if strings.TrimSpace(pattern) == "" {
		pattern = fvalue.DefaultDateOutput
	}
	r.dateOutput = pattern
}

func (r *Schema) DatePriority() DatePriority {
	return r.datePriority
}

func (r *Schema) SetDatePriority(priority DatePriority) error {
	if priority == "" {
		priority = PriorityMostRecentFirst
	}
	if !lo.Contains(DatePriorities, priority) {
		return errors.Wrapf(ErrInvalidSchema, `SetDatePriority error: unknown priority "%s"`, priority)
	}
	r.datePriority = priority
	return nil
}

// FormatsForPass returns the patterns in the order one decode pass should try them.
// Under PriorityToggle it mutates the stored order.
func (r *Schema) FormatsForPass() []string {
	switch r.datePriority {
	case PriorityDeclared:
		return ds.ShallowCopy(r.dateFormats)
	case PriorityToggle:
		lo.Reverse(r.dateFormats)
		return ds.ShallowCopy(r.dateFormats)
	default:
		return lo.Reverse(ds.ShallowCopy(r.dateFormats))
	}
}
