package fbind

import (
	"time"

	"flatrec/flat/frecord"
	"flatrec/flat/fschema"
	"flatrec/flat/fvalue"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var (
	ErrMissingAccessor = errors.New("field has no accessor")
	ErrUnboundAccessor = errors.New("accessor names no field")
	ErrAccessorType    = errors.New("accessor type does not match field type")
)

type (
	// Accessor reads and writes one field of a T.
	Accessor[T any] struct {
		Name string
		Type fvalue.Type
		get  func(*T) fvalue.Value
		set  func(*T, fvalue.Value)
	}
	// Binding copies values between records of one schema and values of type T.
	Binding[T any] struct {
		schema    *fschema.Schema
		accessors []Accessor[T]
		decoder   *frecord.Decoder
	}
)

func Text[T any](name string, get func(*T) string, set func(*T, string)) Accessor[T] {
	return Accessor[T]{
		Name: name,
		Type: fvalue.TypeText,
		get:  func(t *T) fvalue.Value { return fvalue.NewText(get(t)) },
		set:  func(t *T, value fvalue.Value) { set(t, value.Text) },
	}
}

func Int[T any](name string, get func(*T) int64, set func(*T, int64)) Accessor[T] {
	return Accessor[T]{
		Name: name,
		Type: fvalue.TypeInteger,
		get:  func(t *T) fvalue.Value { return fvalue.NewInteger(get(t)) },
		set:  func(t *T, value fvalue.Value) { set(t, value.Int) },
	}
}

func Float[T any](name string, get func(*T) float64, set func(*T, float64)) Accessor[T] {
	return Accessor[T]{
		Name: name,
		Type: fvalue.TypeFloat,
		get:  func(t *T) fvalue.Value { return fvalue.NewFloat(get(t)) },
		set:  func(t *T, value fvalue.Value) { set(t, value.Float) },
	}
}

func Bool[T any](name string, get func(*T) bool, set func(*T, bool)) Accessor[T] {
	return Accessor[T]{
		Name: name,
		Type: fvalue.TypeBoolean,
		get:  func(t *T) fvalue.Value { return fvalue.NewBoolean(get(t)) },
		set:  func(t *T, value fvalue.Value) { set(t, value.Bool) },
	}
}

// Date binds a date field. A zero time is stored as Null.
func Date[T any](name string, get func(*T) time.Time, set func(*T, time.Time)) Accessor[T] {
	return Accessor[T]{
		Name: name,
		Type: fvalue.TypeDate,
		get: func(t *T) fvalue.Value {
			value := get(t)
			if value.IsZero() {
				return fvalue.Null()
			}
			return fvalue.NewDate(value)
		},
		set: func(t *T, value fvalue.Value) { set(t, value.Time) },
	}
}

// NewBinding checks that every non-skipped field of schema has exactly one accessor
// of the declared type and that no accessor names anything else.
func NewBinding[T any](schema *fschema.Schema, accessors ...Accessor[T]) (*Binding[T], error) {
	byName := lo.KeyBy(accessors, func(accessor Accessor[T]) string {
		return accessor.Name
	})
	if len(byName) != len(accessors) {
		return nil, errors.Wrap(ErrUnboundAccessor, "NewBinding error: duplicate accessor")
	}

	for _, accessor := range accessors {
		field, err := schema.Field(accessor.Name)
		if err != nil {
			return nil, errors.Wrapf(ErrUnboundAccessor, `NewBinding error: "%s"`, accessor.Name)
		}
		if field.Skip {
			return nil, errors.Wrapf(ErrUnboundAccessor, `NewBinding error: "%s" is skipped`, accessor.Name)
		}
		if field.Type != accessor.Type {
			return nil, errors.Wrapf(ErrAccessorType, `NewBinding error: "%s" is %s, accessor is %s`, field.Name, field.Type, accessor.Type)
		}
	}
	for _, name := range schema.Names(false) {
		if _, ok := byName[name]; !ok {
			return nil, errors.Wrapf(ErrMissingAccessor, `NewBinding error: "%s"`, name)
		}
	}

	return &Binding[T]{
		schema:    schema,
		accessors: accessors,
		decoder:   frecord.NewDecoder(schema),
	}, nil
}

func (r *Binding[T]) Schema() *fschema.Schema {
	return r.schema
}

// Decoder is the decoder Decode uses. Its diagnostics collect coercion problems.
func (r *Binding[T]) Decoder() *frecord.Decoder {
	return r.decoder
}

// Load copies the record's values into target. Null values set the zero value. A
// field holding a value of another type, such as raw text kept after a failed
// coercion, is an error.
func (r *Binding[T]) Load(record *frecord.Record, target *T) error {
	for _, accessor := range r.accessors {
		value, err := record.Get(accessor.Name)
		if err != nil {
			return errors.Wrap(err, "Load error")
		}
		if !value.IsNull() && value.Type != accessor.Type {
			return errors.Wrap(frecord.TypeMismatchError{Name: accessor.Name, Want: accessor.Type, Got: value.Type}, "Load error")
		}
		accessor.set(target, value)
	}
	return nil
}

// Store renders source into a record whose Full line is the encoded row.
func (r *Binding[T]) Store(source *T, ordinal int) (*frecord.Record, error) {
	record := frecord.New(r.schema)
	record.Ordinal = ordinal
	for _, accessor := range r.accessors {
		err := record.Set(accessor.Name, accessor.get(source))
		if err != nil {
			return nil, errors.Wrap(err, "Store error")
		}
	}
	record.Full = record.Encode(frecord.EncodeOptions{
		IncludeSkipped: true,
		OutDelimiter:   r.schema.Delimiter(),
	})
	return record, nil
}

// Decode decodes line and loads it into a new T.
func (r *Binding[T]) Decode(line string, ordinal int) (T, error) {
	var target T
	record, err := r.decoder.Decode(line, ordinal)
	if err != nil {
		return target, err
	}
	err = r.Load(record, &target)
	return target, err
}
