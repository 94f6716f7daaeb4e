package ftoken

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Placeholder stands in for a delimiter found inside a quoted span while the line
// is split. It is a private-use rune that does not occur in ordinary text.
const Placeholder = "\uE000"

type TokenizeError struct {
	Line      string
	Delimiter string
	Reason    string
}

func (r TokenizeError) Error() string {
	return fmt.Sprintf("tokenize error: %s (delimiter %q, line %q)", r.Reason, r.Delimiter, r.Line)
}

// Tokenize splits line on delimiter. Delimiters inside a "quoted" span do not split,
// and a token wrapped in a matching pair of double or single quotes is unwrapped.
// Trailing empty tokens are kept so that token i always maps to position i+1.
func Tokenize(line string, delimiter string) ([]string, error) {
	if strings.TrimSpace(line) == "" {
		return []string{}, nil
	}
	if delimiter == "" {
		return nil, TokenizeError{Line: line, Delimiter: delimiter, Reason: "empty delimiter"}
	}
	if strings.Contains(line, Placeholder) {
		return nil, TokenizeError{Line: line, Delimiter: delimiter, Reason: "line contains the quote placeholder"}
	}

	protected := line
	if strings.Contains(line, `"`) {
		protected = protectQuoted(line, delimiter)
	}

	tokens := strings.Split(protected, delimiter)
	return lo.Map(tokens, func(token string, _ int) string {
		token = Unquote(token)
		return strings.ReplaceAll(token, Placeholder, delimiter)
	}), nil
}

// protectQuoted replaces every delimiter inside a quoted span with the placeholder.
// An unmatched quote keeps the rest of the line quoted.
func protectQuoted(line string, delimiter string) string {
	var sb strings.Builder
	sb.Grow(len(line))
	inQuote := false
	for i := 0; i < len(line); {
		if line[i] == '"' {
			inQuote = !inQuote
			sb.WriteByte('"')
			i++
			continue
		}
		if inQuote && strings.HasPrefix(line[i:], delimiter) {
			sb.WriteString(Placeholder)
			i += len(delimiter)
			continue
		}
		sb.WriteByte(line[i])
		i++
	}
	return sb.String()
}

// Unquote strips one matching pair of double or single quotes wrapping the whole
// token. Blank and unbalanced tokens come back unchanged.
func Unquote(token string) string {
	if strings.TrimSpace(token) == "" || len(token) < 2 {
		return token
	}
	first, last := token[0], token[len(token)-1]
	if first == last && (first == '"' || first == '\'') {
		return token[1 : len(token)-1]
	}
	return token
}

// Quote wraps value in double quotes when it contains delimiter, so that Tokenize
// reads it back as a single token.
func Quote(value string, delimiter string) string {
	if delimiter != "" && strings.Contains(value, delimiter) {
		return `"` + value + `"`
	}
	return value
}
