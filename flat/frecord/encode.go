package frecord

import (
	"runtime"
	"strings"

	"flatrec/flat/fschema"
	"flatrec/flat/ftoken"
	"flatrec/metrics"

	"github.com/samber/lo"
)

// EncodeOptions controls how records are rendered back to delimited lines.
type EncodeOptions struct {
	IncludeHeader  bool
	IncludeSkipped bool
	// OutDelimiter overrides the schema's output delimiter when set.
	OutDelimiter string
	Newline      bool
}

// LineSeparator ends every line written with Newline set.
var LineSeparator = lineSeparator()

func lineSeparator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

func (r EncodeOptions) delimiter(schema *fschema.Schema) string {
	if r.OutDelimiter != "" {
		return r.OutDelimiter
	}
	return schema.OutDelimiter()
}

func (r EncodeOptions) fields(schema *fschema.Schema) []string {
	return schema.Names(r.IncludeSkipped)
}

// Encode renders the record in position order. Booleans become 1 and 0 and values
// containing the delimiter are quoted.
func (r *Record) Encode(options EncodeOptions) string {
	delimiter := options.delimiter(r.schema)
	values := lo.Map(options.fields(r.schema), func(name string, _ int) string {
		text, _ := r.Text(name)
		switch {
		case strings.EqualFold(text, "true"):
			text = "1"
		case strings.EqualFold(text, "false"):
			text = "0"
		}
		return ftoken.Quote(text, delimiter)
	})

	var sb strings.Builder
	if options.IncludeHeader {
		sb.WriteString(EncodeHeader(r.schema, EncodeOptions{
			IncludeSkipped: options.IncludeSkipped,
			OutDelimiter:   delimiter,
			Newline:        true,
		}))
	}
	sb.WriteString(strings.Join(values, delimiter))
	if options.Newline {
		sb.WriteString(LineSeparator)
	}
	metrics.RecordsEncodedTotal.WithLabelValues(r.schema.Tag()).Inc()
	return sb.String()
}

// EncodeHeader renders the field names the way Encode renders values.
func EncodeHeader(schema *fschema.Schema, options EncodeOptions) string {
	delimiter := options.delimiter(schema)
	names := lo.Map(options.fields(schema), func(name string, _ int) string {
		return ftoken.Quote(name, delimiter)
	})
	header := strings.Join(names, delimiter)
	if options.Newline {
		header += LineSeparator
	}
	return header
}
