package frecord

import (
	"strings"

	"github.com/pkg/errors"
)

// IdentitySeparator splits the tag from the raw line in an identity string.
const IdentitySeparator = "~"

// Identity prefixes the raw line with the record type tag so that the record can
// be rebuilt without knowing its type up front.
func (r *Record) Identity() string {
	return FormatIdentity(r.schema.Tag(), r.Full)
}

func FormatIdentity(tag string, line string) string {
	return tag + IdentitySeparator + line
}

// SplitIdentity splits on the first separator. ok is false when there is none.
func SplitIdentity(identity string) (tag string, line string, ok bool) {
	return strings.Cut(identity, IdentitySeparator)
}

// BuildKey joins the text of the named fields with the output delimiter.
func (r *Record) BuildKey(names ...string) (string, error) {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		text, err := r.Text(name)
		if err != nil {
			return "", errors.Wrap(err, "BuildKey error")
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, r.schema.OutDelimiter()), nil
}

// Key builds the key from the schema's key fields.
func (r *Record) Key() (string, error) {
	return r.BuildKey(r.schema.KeyFields()...)
}

// Match compares the text of the named fields case-insensitively. Without names
// the key fields of a are used.
func Match(a *Record, b *Record, names ...string) (bool, error) {
	if len(names) == 0 {
		names = a.schema.KeyFields()
	}
	for _, name := range names {
		left, err := a.Text(name)
		if err != nil {
			return false, errors.Wrap(err, "Match error")
		}
		right, err := b.Text(name)
		if err != nil {
			return false, errors.Wrap(err, "Match error")
		}
		if !strings.EqualFold(left, right) {
			return false, nil
		}
	}
	return true, nil
}
