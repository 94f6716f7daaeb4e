package fschema

import (
	"flatrec/flat/fvalue"
)

type (
	// Field describes one position of a delimited line.
	Field struct {
		Name     string      `json:"name" yaml:"name"`
		Position int         `json:"position" yaml:"position"`
		Skip     bool        `json:"skip" yaml:"skip"`
		Type     fvalue.Type `json:"type" yaml:"type"`
	}
	// Schema is the ordered field registry of one record type plus its delimiter and
	// date configuration. Positions are 1-based and always dense.
	Schema struct {
		tag          string
		fields       []Field
		indexByName  map[string]int
		fieldTypes   map[string]fvalue.Type
		delimiter    string
		outDelimiter string
		dateFormats  []string
		dateOutput   string
		datePriority DatePriority
		keyFields    []string
	}
	// DatePriority decides in which order the date formats are tried on a decode pass.
	DatePriority string

	// Descriptor is implemented by anything that can describe a record type.
	Descriptor interface {
		Tag() string
		OrderedFields() []Field
		KeyFields() []string
		DefaultDelimiter() string
	}
	// DateDescriptor is optionally implemented by a Descriptor to configure dates.
	DateDescriptor interface {
		DateFormats() []string
		DateOutput() string
		DatePriority() DatePriority
	}
)

const (
	// PriorityMostRecentFirst tries the most recently added formats first.
	PriorityMostRecentFirst = DatePriority("most_recent_first")
	// PriorityDeclared tries the formats in the order they were added.
	PriorityDeclared = DatePriority("declared")
	// PriorityToggle reverses the stored list in place before every decode pass,
	// so the order flips from one pass to the next. A schema in this mode must not
	// be shared between goroutines.
	PriorityToggle = DatePriority("toggle")
)

const (
	DefaultDelimiter = ","
	HiveDelimiter    = "\u0001"
)

var DatePriorities = []DatePriority{
	PriorityMostRecentFirst,
	PriorityDeclared,
	PriorityToggle,
}
