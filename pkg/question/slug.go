package question

import (
	"strings"
	"unicode"
)

// MakeSlug normalises a display title into a URL-safe slug: lower-cased, runs
// of whitespace and punctuation collapsed to single hyphens, leading and
// trailing separators stripped. Non-breaking and narrow spaces count as
// whitespace.
func MakeSlug(title string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}
