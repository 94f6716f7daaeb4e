package fschema

import (
	"strings"

	"flatrec/flat/ftoken"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// FromDescriptor builds a schema from a record type description. Fields with a
// positive Position are inserted there, the rest are appended in order.
func FromDescriptor(d Descriptor) (*Schema, error) {
	schema := New(d.Tag(), d.DefaultDelimiter())
	for _, field := range d.OrderedFields() {
		var err error
		if field.Position > 0 {
			err = schema.InsertAt(field.Name, field.Position, field.Skip)
			if err == nil && field.Type != "" {
				err = schema.SetFieldType(field.Name, field.Type)
			}
		} else {
			err = schema.DeclareField(field)
		}
		if err != nil {
			return nil, errors.Wrapf(err, `FromDescriptor error: field "%s"`, field.Name)
		}
	}

	err := schema.SetKeyFields(d.KeyFields()...)
	if err != nil {
		return nil, errors.Wrap(err, "FromDescriptor error")
	}

	dateDescriptor, ok := d.(DateDescriptor)
	if !ok {
		return schema, nil
	}
	lo.ForEach(dateDescriptor.DateFormats(), func(pattern string, _ int) {
		schema.AddDateFormat(pattern)
	})
	schema.SetDateOutput(dateDescriptor.DateOutput())
	err = schema.SetDatePriority(dateDescriptor.DatePriority())
	if err != nil {
		return nil, errors.Wrap(err, "FromDescriptor error")
	}
	return schema, nil
}

// FromHeader builds a schema of text fields named by a header line.
func FromHeader(tag string, header string, delimiter string) (*Schema, error) {
	if strings.TrimSpace(header) == "" {
		return nil, errors.Wrap(ErrInvalidSchema, "FromHeader error: empty header")
	}
	schema := New(tag, delimiter)
	names, err := ftoken.Tokenize(header, schema.Delimiter())
	if err != nil {
		return nil, errors.Wrap(err, "FromHeader error")
	}
	names = lo.Map(names, func(name string, _ int) string {
		return strings.TrimSpace(name)
	})
	err = schema.Declare(names...)
	if err != nil {
		return nil, errors.Wrap(err, "FromHeader error")
	}
	return schema, nil
}
