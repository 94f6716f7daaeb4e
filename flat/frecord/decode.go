package frecord

import (
	"flatrec/ds"
	"flatrec/flat/fdiag"
	"flatrec/flat/fschema"
	"flatrec/flat/ftoken"
	"flatrec/flat/fvalue"
	"flatrec/metrics"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type (
	// Decoder turns lines into records of one schema and collects diagnostics.
	Decoder struct {
		schema *fschema.Schema
		diag   *fdiag.Log
	}
	DecoderOption func(*Decoder)
	// Batch is the outcome of decoding several lines in one pass.
	Batch struct {
		Records     []*Record
		Failures    []DecodeError
		Diagnostics []fdiag.Entry
	}
	// Line is an input line with its record number.
	Line struct {
		Ordinal int
		Text    string
	}
)

// WithDiagnostics makes the decoder append to log instead of a private one.
func WithDiagnostics(log *fdiag.Log) DecoderOption {
	return func(r *Decoder) {
		r.diag = log
	}
}

func NewDecoder(schema *fschema.Schema, opts ...DecoderOption) *Decoder {
	decoder := &Decoder{schema: schema}
	for _, opt := range opts {
		opt(decoder)
	}
	if decoder.diag == nil {
		decoder.diag = fdiag.New()
	}
	return decoder
}

func (r *Decoder) Schema() *fschema.Schema {
	return r.schema
}

func (r *Decoder) Diagnostics() *fdiag.Log {
	return r.diag
}

// Decode decodes a single line as its own date priority pass.
func (r *Decoder) Decode(line string, ordinal int) (*Record, error) {
	return r.decode(line, ordinal, r.schema.FormatsForPass())
}

// DecodeAll decodes lines in one date priority pass. Ordinals start at 1. A line
// that fails structurally is reported in Failures and the batch carries on.
func (r *Decoder) DecodeAll(lines []string) Batch {
	return r.DecodeAllFrom(lines, 1)
}

func (r *Decoder) DecodeAllFrom(lines []string, firstOrdinal int) Batch {
	numbered := lo.Map(lines, func(text string, i int) Line {
		return Line{Ordinal: firstOrdinal + i, Text: text}
	})
	return r.DecodeLines(numbered)
}

// DecodeLines decodes lines that already carry their ordinals in one date priority pass.
func (r *Decoder) DecodeLines(lines []Line) Batch {
	start := r.diag.Len()
	formats := r.schema.FormatsForPass()
	batch := Batch{
		Records:  make([]*Record, 0, len(lines)),
		Failures: []DecodeError{},
	}
	for _, line := range lines {
		record, err := r.decode(line.Text, line.Ordinal, formats)
		if err != nil {
			var decodeErr DecodeError
			if errors.As(err, &decodeErr) {
				batch.Failures = append(batch.Failures, decodeErr)
			}
			continue
		}
		batch.Records = append(batch.Records, record)
	}
	batch.Diagnostics = r.diag.Entries()[start:]
	return batch
}

func (r *Decoder) decode(line string, ordinal int, formats []string) (*Record, error) {
	tokens, err := ftoken.Tokenize(line, r.schema.Delimiter())
	if err != nil {
		return nil, r.fail(line, ordinal, err)
	}
	if len(tokens) > r.schema.Len() {
		err = errors.Wrapf(ErrTooManyFields, "%d tokens for %d fields", len(tokens), r.schema.Len())
		return nil, r.fail(line, ordinal, err)
	}

	record := New(r.schema)
	record.Full = line
	record.Ordinal = ordinal
	tag := r.schema.Tag()
	for i, token := range tokens {
		field, ok := r.schema.FieldAt(i + 1)
		if !ok {
			panic(ds.ErrUnreachableCode{Caller: "Decoder.decode"})
		}
		if field.Skip {
			record.setRaw(field.Name, token)
			continue
		}

		value, err := fvalue.Coerce(token, field.Type, formats)
		if err != nil {
			r.diag.Err(fdiag.Entry{
				Ordinal:  ordinal,
				Field:    field.Name,
				Position: field.Position,
				Err:      err,
			})
			metrics.FieldCoercionErrorsTotal.WithLabelValues(tag, field.Name, string(field.Type)).Inc()
		}
		record.put(field.Name, value)
	}

	metrics.RecordsDecodedTotal.WithLabelValues(tag, metrics.StatusOK).Inc()
	return record, nil
}

func (r *Decoder) fail(line string, ordinal int, err error) error {
	r.diag.Err(fdiag.Entry{
		Ordinal: ordinal,
		Message: "problem on record: " + err.Error(),
		Err:     err,
	})
	metrics.RecordsDecodedTotal.WithLabelValues(r.schema.Tag(), metrics.StatusFailed).Inc()
	return DecodeError{Ordinal: ordinal, Line: line, Err: err}
}
