// Package corpus reads cleaned one-sentence-per-line corpora and derives
// frequency-ordered word lists from them.
package corpus

import (
	"strings"
	"unicode"
)

// Normalize lower-cases a line, maps every decimal digit to '0' and
// collapses runs of whitespace to a single space.
func Normalize(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	space := false
	for _, r := range strings.TrimSpace(line) {
		switch {
		case unicode.IsSpace(r):
			space = true
			continue
		case unicode.IsDigit(r):
			r = '0'
		default:
			r = unicode.ToLower(r)
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
