package ftable

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"flatrec/ds"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type (
	// Row is anything that can be printed as one line of a table.
	Row interface {
		Names() []string
		Cells() []string
	}
	Options struct {
		Outlines bool
		Header   bool
	}
)

// DefaultColumnWidth is the width of every column of a table without rows.
const DefaultColumnWidth = 30

var DefaultOptions = Options{Outlines: true, Header: true}

var controlStripper = strings.NewReplacer("\r", "", "\n", "", "\f", "")

// Print writes rows as a text table. The first row's names become the header.
// Nothing is written when there are no rows.
func Print[R Row](w io.Writer, rows []R, options Options) error {
	if len(rows) == 0 {
		return nil
	}
	cells := lo.Map(rows, func(row R, _ int) []string {
		return row.Cells()
	})
	return PrintTable(w, rows[0].Names(), cells, options)
}

// PrintTable writes a header and rows of cells as a text table. Columns are as
// wide as their widest cell or label.
func PrintTable(w io.Writer, header []string, rows [][]string, options Options) error {
	rows = lo.Map(rows, func(row []string, _ int) []string {
		return lo.Map(row, func(cell string, _ int) string {
			return controlStripper.Replace(cell)
		})
	})
	widths := columnWidths(header, rows)

	bw := bufio.NewWriter(w)
	divider := dividerLine(widths)
	if options.Outlines {
		writeLine(bw, divider)
	}
	if options.Header {
		writeLine(bw, formatLine(header, widths, options.Outlines, center))
		if options.Outlines {
			writeLine(bw, divider)
		}
	}
	for _, row := range rows {
		writeLine(bw, formatLine(row, widths, options.Outlines, padRight))
	}
	if options.Outlines && len(rows) > 0 {
		writeLine(bw, divider)
	}

	err := bw.Flush()
	if err != nil {
		return errors.Wrap(err, "PrintTable error")
	}
	return nil
}

func columnWidths(header []string, rows [][]string) []int {
	if len(rows) == 0 {
		return lo.Map(ds.Repeat(len(header), DefaultColumnWidth), func(w int, i int) int {
			return ds.Max(w, width(header[i]))
		})
	}
	return lo.Map(header, func(label string, i int) int {
		cellWidths := lo.Map(rows, func(row []string, _ int) int {
			if i >= len(row) {
				return 0
			}
			return width(row[i])
		})
		return ds.Max(append(cellWidths, width(label))...)
	})
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

func dividerLine(widths []int) string {
	var sb strings.Builder
	sb.WriteString("+")
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteString("+")
	}
	return sb.String()
}

func formatLine(cells []string, widths []int, outlines bool, align func(string, int) string) string {
	padded := lo.Map(widths, func(w int, i int) string {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		return align(cell, w)
	})
	if !outlines {
		return strings.TrimRight(strings.Join(padded, " "), " ")
	}
	return "| " + strings.Join(padded, " | ") + " |"
}

func padRight(s string, w int) string {
	return s + strings.Repeat(" ", ds.Max(0, w-width(s)))
}

func center(s string, w int) string {
	left := ds.Max(0, w-width(s)) / 2
	return padRight(strings.Repeat(" ", left)+s, w)
}

func writeLine(bw *bufio.Writer, line string) {
	_, _ = bw.WriteString(line)
	_ = bw.WriteByte('\n')
}
