package fvalue

import (
	"strings"
	"sync"
)

// Date patterns use the yyyy/MM/dd letter notation. They are translated to Go
// layouts: ParseLayout accepts one or two digits for numeric fields while
// FormatLayout always zero-pads them. When parsing a pattern without an am/pm
// marker, h reads hours 0 to 23.

var layoutCache sync.Map

type layoutKey struct {
	pattern string
	lenient bool
}

func ParseLayout(pattern string) string {
	return cachedLayout(pattern, true)
}

func FormatLayout(pattern string) string {
	return cachedLayout(pattern, false)
}

func cachedLayout(pattern string, lenient bool) string {
	key := layoutKey{pattern: pattern, lenient: lenient}
	if layout, ok := layoutCache.Load(key); ok {
		return layout.(string)
	}
	layout := translatePattern(pattern, lenient)
	layoutCache.Store(key, layout)
	return layout
}

func translatePattern(pattern string, lenient bool) string {
	padded := func(strict string, loose string) string {
		if lenient {
			return loose
		}
		return strict
	}

	var sb strings.Builder
	runes := []rune(pattern)
	twelveHour := !lenient || hasLetter(runes, 'a')
	for i := 0; i < len(runes); {
		letter := runes[i]
		if letter == '\'' {
			i = copyQuoted(&sb, runes, i)
			continue
		}
		n := 1
		for i+n < len(runes) && runes[i+n] == letter {
			n++
		}
		i += n

		switch letter {
		case 'y':
			if n == 2 {
				sb.WriteString("06")
			} else {
				sb.WriteString("2006")
			}
		case 'M':
			switch {
			case n >= 4:
				sb.WriteString("January")
			case n == 3:
				sb.WriteString("Jan")
			case n == 2:
				sb.WriteString(padded("01", "1"))
			default:
				sb.WriteString("1")
			}
		case 'd':
			if n >= 2 {
				sb.WriteString(padded("02", "2"))
			} else {
				sb.WriteString("2")
			}
		case 'D':
			sb.WriteString("002")
		case 'H':
			sb.WriteString("15")
		case 'h':
			if !twelveHour {
				sb.WriteString("15")
			} else if n >= 2 {
				sb.WriteString(padded("03", "3"))
			} else {
				sb.WriteString("3")
			}
		case 'm':
			if n >= 2 {
				sb.WriteString(padded("04", "4"))
			} else {
				sb.WriteString("4")
			}
		case 's':
			if n >= 2 {
				sb.WriteString(padded("05", "5"))
			} else {
				sb.WriteString("5")
			}
		case 'S':
			sb.WriteString(strings.Repeat("0", n))
		case 'a':
			sb.WriteString("PM")
		case 'E':
			if n >= 4 {
				sb.WriteString("Monday")
			} else {
				sb.WriteString("Mon")
			}
		case 'z':
			sb.WriteString("MST")
		case 'Z':
			sb.WriteString("-0700")
		case 'X':
			switch n {
			case 1:
				sb.WriteString("Z07")
			case 2:
				sb.WriteString("Z0700")
			default:
				sb.WriteString("Z07:00")
			}
		default:
			sb.WriteString(strings.Repeat(string(letter), n))
		}
	}
	return sb.String()
}

// hasLetter reports whether letter appears outside of quoted literals.
func hasLetter(runes []rune, letter rune) bool {
	quoted := false
	for _, r := range runes {
		switch {
		case r == '\'':
			quoted = !quoted
		case r == letter && !quoted:
			return true
		}
	}
	return false
}

// copyQuoted writes a 'quoted' literal starting at runes[start] and returns the
// index just past it. Two single quotes in a row stand for one.
func copyQuoted(sb *strings.Builder, runes []rune, start int) int {
	if start+1 < len(runes) && runes[start+1] == '\'' {
		sb.WriteRune('\'')
		return start + 2
	}
	i := start + 1
	for i < len(runes) {
		if runes[i] == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				sb.WriteRune('\'')
				i += 2
				continue
			}
			return i + 1
		}
		sb.WriteRune(runes[i])
		i++
	}
	return i
}
