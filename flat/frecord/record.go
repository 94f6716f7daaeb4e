package frecord

import (
	"strings"
	"time"

	"flatrec/ds"
	"flatrec/flat/fschema"
	"flatrec/flat/ftable"
	"flatrec/flat/fvalue"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Record is one decoded line. Values are kept in position order; skipped fields
// keep their raw token so the line can be rebuilt.
type Record struct {
	Full    string
	Ordinal int
	schema  *fschema.Schema
	values  *ds.LinkedHashMap[string, fvalue.Value]
	skipped map[string]string
}

// New creates a record where every non-skipped field is Null.
func New(schema *fschema.Schema) *Record {
	record := &Record{
		schema:  schema,
		values:  ds.NewLinkedHashMap[string, fvalue.Value](),
		skipped: map[string]string{},
	}
	for _, name := range schema.Names(false) {
		record.values.Put(name, fvalue.Null())
	}
	return record
}

func (r *Record) Schema() *fschema.Schema {
	return r.schema
}

func (r *Record) Tag() string {
	return r.schema.Tag()
}

// Get returns the value of a field. A skipped field yields its raw token as Text.
func (r *Record) Get(name string) (fvalue.Value, error) {
	if !r.schema.Has(name) {
		return fvalue.Null(), fschema.UnknownFieldError{Tag: r.schema.Tag(), Name: name}
	}
	if r.schema.IsSkipped(name) {
		raw, ok := r.skipped[name]
		if !ok {
			return fvalue.Null(), nil
		}
		return fvalue.NewText(raw), nil
	}
	value, ok := r.values.Get(name)
	if !ok {
		return fvalue.Null(), nil
	}
	return value, nil
}

func (r *Record) Set(name string, value fvalue.Value) error {
	if !r.schema.Has(name) {
		return fschema.UnknownFieldError{Tag: r.schema.Tag(), Name: name}
	}
	if r.schema.IsSkipped(name) {
		return errors.Wrapf(ErrSkippedField, `Set error: "%s"`, name)
	}
	r.put(name, value)
	return nil
}

// put stores a value for a known, non-skipped field.
func (r *Record) put(name string, value fvalue.Value) {
	r.values.Put(name, value)
}

// Raw returns the raw token kept for a skipped field.
func (r *Record) Raw(name string) (string, bool) {
	raw, ok := r.skipped[name]
	return raw, ok
}

func (r *Record) setRaw(name string, raw string) {
	r.skipped[name] = raw
}

// Values returns the decoded values in position order, skipped fields excluded.
func (r *Record) Values() []fvalue.Value {
	return lo.Map(r.values.Entries(), func(entry ds.Entry[string, fvalue.Value], _ int) fvalue.Value {
		return entry.Value
	})
}

// Text renders a field the way it is written to output lines.
func (r *Record) Text(name string) (string, error) {
	value, err := r.Get(name)
	if err != nil {
		return "", err
	}
	if r.schema.IsSkipped(name) {
		return value.Text, nil
	}
	declared, err := r.schema.FieldType(name)
	if err != nil {
		return "", err
	}
	return fvalue.Render(declared, value, r.schema.DateOutput()), nil
}

func (r *Record) typed(name string, want fvalue.Type) (fvalue.Value, error) {
	value, err := r.Get(name)
	if err != nil {
		return value, err
	}
	if value.IsNull() || value.Type == want {
		return value, nil
	}
	return value, TypeMismatchError{Name: name, Want: want, Got: value.Type}
}

// Int returns an integer field. Null reads as zero.
func (r *Record) Int(name string) (int64, error) {
	value, err := r.typed(name, fvalue.TypeInteger)
	return value.Int, err
}

func (r *Record) Float(name string) (float64, error) {
	value, err := r.typed(name, fvalue.TypeFloat)
	return value.Float, err
}

func (r *Record) Bool(name string) (bool, error) {
	value, err := r.typed(name, fvalue.TypeBoolean)
	return value.Bool, err
}

func (r *Record) Date(name string) (time.Time, error) {
	value, err := r.typed(name, fvalue.TypeDate)
	return value.Time, err
}

// Names lists every field, skipped ones included, in position order.
func (r *Record) Names() []string {
	return r.schema.OrderedNames()
}

// Cells renders every field listed by Names.
func (r *Record) Cells() []string {
	return lo.Map(r.Names(), func(name string, _ int) string {
		text, _ := r.Text(name)
		return text
	})
}

func (r *Record) String() string {
	var sb strings.Builder
	_ = ftable.Print(&sb, []*Record{r}, ftable.DefaultOptions)
	return sb.String()
}

// Equal reports whether both records share a schema and hold the same values.
func (r *Record) Equal(other *Record) bool {
	if other == nil || r.schema != other.schema {
		return false
	}
	return lo.EveryBy(r.schema.OrderedNames(), func(name string) bool {
		a, _ := r.Get(name)
		b, _ := other.Get(name)
		return valuesEqual(a, b)
	})
}

func valuesEqual(a fvalue.Value, b fvalue.Value) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() == b.IsNull()
	}
	if a.Type == fvalue.TypeDate && b.Type == fvalue.TypeDate {
		return a.Time.Equal(b.Time)
	}
	return a == b
}
