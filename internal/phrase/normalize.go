// Package phrase normalizes recognized and authored phrases into canonical word sequences.
package phrase

import (
	"strings"
	"unicode"
)

// Options controls phrase assembly formatting behavior.
type Options struct {
	UpperCase bool
}

// Assemble joins recognized segments into one space-separated phrase.
//
// Word separators are runs of whitespace or `.`; a `.` between two digits is a
// decimal point and stays inside its number.
func Assemble(segments []string, opts Options) string {
	if len(segments) == 0 {
		return ""
	}

	words := make([]string, 0, len(segments))
	for _, segment := range segments {
		words = append(words, Words(segment)...)
	}
	normalized := strings.Join(words, " ")
	if opts.UpperCase {
		return strings.ToUpper(normalized)
	}
	return normalized
}

// Normalize returns text as a single-space separated phrase.
func Normalize(text string) string {
	return Assemble([]string{text}, Options{})
}

// Key returns the case-insensitive lookup form of text.
func Key(text string) string {
	return Assemble([]string{text}, Options{UpperCase: true})
}

// Words splits text on whitespace and `.` separators.
func Words(text string) []string {
	runes := []rune(text)
	words := make([]string, 0, 4)

	var current strings.Builder
	flush := func() {
		if current.Len() == 0 {
			return
		}
		words = append(words, current.String())
		current.Reset()
	}

	for i, r := range runes {
		switch {
		case unicode.IsSpace(r):
			flush()
		case r == '.' && !isDecimalPoint(runes, i):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return words
}

func isDecimalPoint(runes []rune, i int) bool {
	return i > 0 && i+1 < len(runes) && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1])
}
