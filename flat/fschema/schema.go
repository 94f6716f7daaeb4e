package fschema

import (
	"strings"

	"flatrec/ds"
	"flatrec/flat/fvalue"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// New creates an empty schema. An empty delimiter falls back to a comma, and the
// output delimiter starts out equal to the input one.
func New(tag string, delimiter string) *Schema {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return &Schema{
		tag:          tag,
		fields:       []Field{},
		indexByName:  map[string]int{},
		fieldTypes:   map[string]fvalue.Type{},
		delimiter:    delimiter,
		outDelimiter: delimiter,
		dateFormats:  fvalue.BuiltinDateFormats(),
		dateOutput:   fvalue.DefaultDateOutput,
		datePriority: PriorityMostRecentFirst,
		keyFields:    []string{},
	}
}

// Declare appends each name at the next free position as a text field.
func (r *Schema) Declare(names ...string) error {
	for _, name := range names {
		err := r.InsertAt(name, r.Len()+1, false)
		if err != nil {
			return errors.Wrap(err, "Declare error")
		}
	}
	return nil
}

// DeclareField appends a fully described field. Its Position is ignored.
func (r *Schema) DeclareField(field Field) error {
	err := r.InsertAt(field.Name, r.Len()+1, field.Skip)
	if err != nil {
		return errors.Wrap(err, "DeclareField error")
	}
	if field.Type == "" {
		return nil
	}
	err = r.SetFieldType(field.Name, field.Type)
	if err != nil {
		return errors.Wrap(err, "DeclareField error")
	}
	return nil
}

// InsertAt places name at the 1-based position and shifts every field at or after
// it by one. A position past the end appends.
func (r *Schema) InsertAt(name string, position int, skip bool) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrapf(ErrInvalidField, "InsertAt error: empty name at position %d", position)
	}
	if position < 1 {
		return errors.Wrapf(ErrInvalidField, `InsertAt error: position %d of "%s"`, position, name)
	}
	if r.Has(name) {
		return DuplicateFieldError{Tag: r.tag, Name: name}
	}

	index := position - 1
	if index > len(r.fields) {
		index = len(r.fields)
	}
	field := Field{Name: name, Skip: skip, Type: fvalue.TypeText}
	r.fields = append(r.fields, Field{})
	copy(r.fields[index+1:], r.fields[index:])
	r.fields[index] = field
	r.fieldTypes[name] = fvalue.TypeText
	r.renumber()
	return nil
}

func (r *Schema) renumber() {
	r.indexByName = make(map[string]int, len(r.fields))
	for i := range r.fields {
		r.fields[i].Position = i + 1
		r.indexByName[r.fields[i].Name] = i
	}
}

// Skip marks a field as present in the input but excluded from decoded values.
func (r *Schema) Skip(name string) error {
	index, ok := r.indexByName[name]
	if !ok {
		return UnknownFieldError{Tag: r.tag, Name: name}
	}
	r.fields[index].Skip = true
	return nil
}

func (r *Schema) SetFieldType(name string, t fvalue.Type) error {
	index, ok := r.indexByName[name]
	if !ok {
		return UnknownFieldError{Tag: r.tag, Name: name}
	}
	if !fvalue.IsValidType(t) {
		return fvalue.UnknownTypeError{Type: t}
	}
	r.fields[index].Type = t
	r.fieldTypes[name] = t
	return nil
}

func (r *Schema) FieldType(name string) (fvalue.Type, error) {
	t, ok := r.fieldTypes[name]
	if !ok {
		return "", UnknownFieldError{Tag: r.tag, Name: name}
	}
	return t, nil
}

func (r *Schema) Field(name string) (Field, error) {
	index, ok := r.indexByName[name]
	if !ok {
		return Field{}, UnknownFieldError{Tag: r.tag, Name: name}
	}
	return r.fields[index], nil
}

// FieldAt returns the field at a 1-based position.
func (r *Schema) FieldAt(position int) (Field, bool) {
	if position < 1 || position > len(r.fields) {
		return Field{}, false
	}
	return r.fields[position-1], true
}

func (r *Schema) Position(name string) (int, error) {
	index, ok := r.indexByName[name]
	if !ok {
		return 0, UnknownFieldError{Tag: r.tag, Name: name}
	}
	return index + 1, nil
}

func (r *Schema) Has(name string) bool {
	_, ok := r.indexByName[name]
	return ok
}

func (r *Schema) IsSkipped(name string) bool {
	index, ok := r.indexByName[name]
	return ok && r.fields[index].Skip
}

func (r *Schema) Len() int {
	return len(r.fields)
}

// Fields returns a copy of the fields in position order.
func (r *Schema) Fields() []Field {
	return ds.ShallowCopy(r.fields)
}

// OrderedNames lists every field name, skipped ones included, in position order.
func (r *Schema) OrderedNames() []string {
	return r.Names(true)
}

func (r *Schema) Names(includeSkipped bool) []string {
	fields := lo.Filter(r.fields, func(field Field, _ int) bool {
		return includeSkipped || !field.Skip
	})
	return lo.Map(fields, func(field Field, _ int) string {
		return field.Name
	})
}

func (r *Schema) Tag() string {
	return r.tag
}

func (r *Schema) Delimiter() string {
	return r.delimiter
}

func (r *Schema) SetDelimiter(delimiter string) {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	r.delimiter = delimiter
}

func (r *Schema) OutDelimiter() string {
	return r.outDelimiter
}

func (r *Schema) SetOutDelimiter(delimiter string) {
	if delimiter == "" {
		delimiter = r.delimiter
	}
	r.outDelimiter = delimiter
}

func (r *Schema) KeyFields() []string {
	return ds.ShallowCopy(r.keyFields)
}

// SetKeyFields declares which fields make up the record key, in key order.
func (r *Schema) SetKeyFields(names ...string) error {
	for _, name := range names {
		if !r.Has(name) {
			return errors.Wrap(UnknownFieldError{Tag: r.tag, Name: name}, "SetKeyFields error")
		}
	}
	r.keyFields = ds.ShallowCopy(names)
	return nil
}

// Clone returns a deep copy that can be configured independently.
func (r *Schema) Clone() *Schema {
	clone := *r
	clone.fields = ds.ShallowCopy(r.fields)
	clone.dateFormats = ds.ShallowCopy(r.dateFormats)
	clone.keyFields = ds.ShallowCopy(r.keyFields)
	clone.fieldTypes = make(map[string]fvalue.Type, len(r.fieldTypes))
	for name, t := range r.fieldTypes {
		clone.fieldTypes[name] = t
	}
	clone.renumber()
	return &clone
}
