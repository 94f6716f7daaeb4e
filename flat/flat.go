// Package flat reads and writes whole files of delimited records.
package flat

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"flatrec/flat/fdiag"
	"flatrec/flat/frecord"

	"github.com/pkg/errors"
)

type WriteOptions struct {
	Header         bool
	IncludeSkipped bool
	// Delimiter overrides the output delimiter of each record's schema when set.
	Delimiter string
}

// CSVOptions is how WriteCSVFile writes: comma separated, header and skipped fields included.
var CSVOptions = WriteOptions{Header: true, IncludeSkipped: true, Delimiter: ","}

// maxLineSize bounds a single input line.
const maxLineSize = 16 * 1024 * 1024

// Write writes one line per record. The header, when requested, is taken from the
// first record's schema.
func Write(w io.Writer, records []*frecord.Record, options WriteOptions) error {
	bw := bufio.NewWriter(w)
	encodeOptions := frecord.EncodeOptions{
		IncludeSkipped: options.IncludeSkipped,
		OutDelimiter:   options.Delimiter,
		Newline:        true,
	}
	for i, record := range records {
		if i == 0 && options.Header {
			_, err := bw.WriteString(frecord.EncodeHeader(record.Schema(), encodeOptions))
			if err != nil {
				return errors.Wrap(err, "Write error: header")
			}
		}
		_, err := bw.WriteString(record.Encode(encodeOptions))
		if err != nil {
			return errors.Wrapf(err, "Write error: record %d", record.Ordinal)
		}
	}
	return errors.Wrap(bw.Flush(), "Write error: flush")
}

// WriteFile writes records to path as UTF-8 lines, replacing any existing file.
func WriteFile(path string, records []*frecord.Record, options WriteOptions) (err error) {
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return errors.Wrapf(err, `WriteFile error: create "%s"`, path)
	}
	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrapf(closeErr, `WriteFile error: close "%s"`, path)
		}
	}()

	err = Write(file, records, options)
	if err != nil {
		return errors.Wrapf(err, `WriteFile error: "%s"`, path)
	}
	return nil
}

func WriteCSVFile(path string, records []*frecord.Record) error {
	return WriteFile(path, records, CSVOptions)
}

// ReadLines reads every line of r, without line terminators.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lines := []string{}
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "ReadLines error")
	}
	return lines, nil
}

// Decode reads r and decodes every non-blank line as one batch. Ordinals are line
// numbers. With skipHeader the first line is left out.
func Decode(r io.Reader, decoder *frecord.Decoder, skipHeader bool) (frecord.Batch, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return frecord.Batch{}, errors.Wrap(err, "Decode error")
	}

	numbered := make([]frecord.Line, 0, len(lines))
	for i, line := range lines {
		ordinal := i + 1
		if i == 0 && skipHeader {
			decoder.Diagnostics().Info(fdiag.Entry{Ordinal: ordinal, Message: "header line skipped"})
			continue
		}
		if strings.TrimSpace(line) == "" {
			decoder.Diagnostics().Info(fdiag.Entry{Ordinal: ordinal, Message: "blank line skipped"})
			continue
		}
		numbered = append(numbered, frecord.Line{Ordinal: ordinal, Text: line})
	}
	return decoder.DecodeLines(numbered), nil
}

// DecodeFile opens path and decodes it like Decode.
func DecodeFile(path string, decoder *frecord.Decoder, skipHeader bool) (frecord.Batch, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return frecord.Batch{}, errors.Wrapf(err, `DecodeFile error: open "%s"`, path)
	}
	defer file.Close()

	return Decode(file, decoder, skipHeader)
}
