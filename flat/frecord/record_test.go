package frecord

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"flatrec/flat/fschema"
	"flatrec/flat/ftoken"
	"flatrec/flat/fvalue"
	"flatrec/metrics"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleSchema(t *testing.T) *fschema.Schema {
	schema := fschema.New("example", ",")
	require.NoError(t, schema.Declare("field1", "field2", "field3"))
	require.NoError(t, schema.SetFieldType("field2", fvalue.TypeInteger))
	require.NoError(t, schema.SetFieldType("field3", fvalue.TypeDate))
	require.NoError(t, schema.SetKeyFields("field1", "field3"))
	return schema
}

func TestDecoder_Decode(t *testing.T) {
	decoder := NewDecoder(exampleSchema(t))

	record, err := decoder.Decode("a,32,10/16/2015", 1)
	require.NoError(t, err)

	assert.Equal(t, "a,32,10/16/2015", record.Full)
	assert.Equal(t, 1, record.Ordinal)

	text, err := record.Text("field1")
	require.NoError(t, err)
	assert.Equal(t, "a", text)

	number, err := record.Int("field2")
	require.NoError(t, err)
	assert.Equal(t, int64(32), number)

	day, err := record.Date("field3")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2015, time.October, 16, 0, 0, 0, 0, time.UTC), day)

	assert.Zero(t, decoder.Diagnostics().Len())
}

func TestDecoder_Decode_CoercionIsRecovered(t *testing.T) {
	decoder := NewDecoder(exampleSchema(t))
	before := testutil.ToFloat64(metrics.FieldCoercionErrorsTotal.WithLabelValues("example", "field2", "integer"))

	record, err := decoder.Decode("a,thirty,someday", 7)
	require.NoError(t, err)

	value, err := record.Get("field2")
	require.NoError(t, err)
	assert.Equal(t, fvalue.NewText("thirty"), value)

	_, err = record.Int("field2")
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	entries := decoder.Diagnostics().Errors()
	require.Len(t, entries, 2)
	assert.Equal(t, 7, entries[0].Ordinal)
	assert.Equal(t, "field2", entries[0].Field)
	assert.Equal(t, 2, entries[0].Position)
	assert.True(t, errors.Is(entries[0].Err, fvalue.ErrNumericFormat))
	assert.True(t, errors.Is(entries[1].Err, fvalue.ErrUnparseableDate))

	after := testutil.ToFloat64(metrics.FieldCoercionErrorsTotal.WithLabelValues("example", "field2", "integer"))
	assert.Equal(t, before+1, after)
}

func TestDecoder_Decode_Structural(t *testing.T) {
	decoder := NewDecoder(exampleSchema(t))

	_, err := decoder.Decode("a,1,10/16/2015,extra", 3)
	var decodeErr DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, 3, decodeErr.Ordinal)
	assert.True(t, errors.Is(err, ErrTooManyFields))

	_, err = decoder.Decode("a"+ftoken.Placeholder, 4)
	assert.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, 4, decodeErr.Ordinal)

	assert.Len(t, decoder.Diagnostics().Errors(), 2)
}

func TestDecoder_Decode_ShortLine(t *testing.T) {
	decoder := NewDecoder(exampleSchema(t))

	record, err := decoder.Decode("a", 1)
	require.NoError(t, err)

	value, err := record.Get("field2")
	require.NoError(t, err)
	assert.True(t, value.IsNull())

	text, err := record.Text("field3")
	require.NoError(t, err)
	assert.Equal(t, fvalue.NullDate, text)
	assert.Len(t, record.Values(), 3)
}

func TestDecoder_DecodeAll(t *testing.T) {
	decoder := NewDecoder(exampleSchema(t))
	batch := decoder.DecodeAll([]string{
		"a,1,10/16/2015",
		"b,2,3,4",
		"c,x,10/17/2015",
	})

	require.Len(t, batch.Records, 2)
	assert.Equal(t, 1, batch.Records[0].Ordinal)
	assert.Equal(t, 3, batch.Records[1].Ordinal)
	require.Len(t, batch.Failures, 1)
	assert.Equal(t, 2, batch.Failures[0].Ordinal)
	assert.Equal(t, "b,2,3,4", batch.Failures[0].Line)
	assert.Len(t, batch.Diagnostics, 2)

	// a second batch only reports its own diagnostics
	batch = decoder.DecodeAll([]string{"d,4,10/18/2015"})
	assert.Empty(t, batch.Diagnostics)
	assert.Equal(t, 2, decoder.Diagnostics().Len())
}

func TestDecoder_DatePriorityPerBatch(t *testing.T) {
	schema := exampleSchema(t)
	// dd/MM/yyyy only wins when tried before the built-in MM/dd/yyyy
	schema.AddDateFormat("dd/MM/yyyy")
	decoder := NewDecoder(schema)

	batch := decoder.DecodeAll([]string{"a,1,02/03/2015", "b,2,02/03/2015"})
	require.Len(t, batch.Records, 2)
	for _, record := range batch.Records {
		day, err := record.Date("field3")
		require.NoError(t, err)
		assert.Equal(t, time.March, day.Month())
	}

	require.NoError(t, schema.SetDatePriority(fschema.PriorityDeclared))
	record, err := decoder.Decode("c,3,02/03/2015", 3)
	require.NoError(t, err)
	day, err := record.Date("field3")
	require.NoError(t, err)
	assert.Equal(t, time.February, day.Month())
}

func TestDecoder_SkippedFieldKeepsRawToken(t *testing.T) {
	schema := exampleSchema(t)
	require.NoError(t, schema.Skip("field2"))
	decoder := NewDecoder(schema)

	record, err := decoder.Decode("a,not a number,10/16/2015", 1)
	require.NoError(t, err)
	assert.Zero(t, decoder.Diagnostics().Len())

	raw, ok := record.Raw("field2")
	assert.True(t, ok)
	assert.Equal(t, "not a number", raw)
	assert.Len(t, record.Values(), 2)
	assert.True(t, errors.Is(record.Set("field2", fvalue.NewInteger(1)), ErrSkippedField))

	assert.Equal(t, "a,10/16/2015", record.Encode(EncodeOptions{}))
	assert.Equal(t, "a,not a number,10/16/2015", record.Encode(EncodeOptions{IncludeSkipped: true}))
}

func TestRecord_UnknownField(t *testing.T) {
	record := New(exampleSchema(t))
	_, err := record.Get("missing")
	assert.True(t, errors.Is(err, fschema.ErrUnknownField))
	assert.True(t, errors.Is(record.Set("missing", fvalue.Null()), fschema.ErrUnknownField))
	_, err = record.BuildKey("field1", "missing")
	assert.True(t, errors.Is(err, fschema.ErrUnknownField))
}

func TestRecord_ToOrderedMap(t *testing.T) {
	record, err := NewDecoder(exampleSchema(t)).Decode("a&b,32,", 1)
	require.NoError(t, err)

	bs, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Equal(t, `{"field1":"a&b","field2":32,"field3":null}`, string(bs))
}

func TestRecord_String(t *testing.T) {
	record, err := NewDecoder(exampleSchema(t)).Decode("a,32,10/16/2015", 1)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(record.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "| field1 | field2 |   field3   |", lines[1])
	assert.Equal(t, "| a      | 32     | 10/16/2015 |", lines[3])
}

func TestRecord_Equal(t *testing.T) {
	decoder := NewDecoder(exampleSchema(t))
	a, err := decoder.Decode("a,32,10/16/2015", 1)
	require.NoError(t, err)
	b, err := decoder.Decode("a,32.9,10/16/2015", 2)
	require.NoError(t, err)
	c, err := decoder.Decode("a,33,10/16/2015", 3)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestDecoder_Decode_StoresEveryValue(t *testing.T) {
	decoder := NewDecoder(exampleSchema(t))

	record, err := decoder.Decode("a,NaN,10/16/2015", 3)
	require.NoError(t, err)
	assert.Equal(t, []fvalue.Value{
		fvalue.NewText("a"),
		fvalue.NewText("NaN"),
		fvalue.NewDate(time.Date(2015, time.October, 16, 0, 0, 0, 0, time.UTC)),
	}, record.Values())

	entries := decoder.Diagnostics().Errors()
	require.Len(t, entries, 1)
	assert.True(t, errors.Is(entries[0].Err, fvalue.ErrNumericFormat))

	again, err := decoder.Decode(record.Full, 3)
	require.NoError(t, err)
	assert.True(t, record.Equal(again))
}
