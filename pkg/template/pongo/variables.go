package pongo

import "strings"

// keywords and literals that appear inside template tags but are not context
// variables.
var reservedWords = map[string]struct{}{
	"if": {}, "elif": {}, "else": {}, "endif": {},
	"for": {}, "endfor": {}, "in": {}, "not": {},
	"and": {}, "or": {}, "is": {}, "with": {},
	"set": {}, "block": {}, "endblock": {},
	"true": {}, "false": {}, "none": {}, "nil": {},
}

// referencedVariables scans template text for the root identifiers referenced
// inside {{ ... }} and {% ... %} tags. Filter names (after '|'), keywords,
// string and number literals, and dotted tails are excluded.
func referencedVariables(text string) []string {
	var out []string
	seen := make(map[string]struct{})

	add := func(name string) {
		root := name
		if idx := strings.IndexByte(root, '.'); idx >= 0 {
			root = root[:idx]
		}
		if root == "" {
			return
		}
		if _, reserved := reservedWords[strings.ToLower(root)]; reserved {
			return
		}
		if _, dup := seen[root]; dup {
			return
		}
		seen[root] = struct{}{}
		out = append(out, root)
	}

	for i := 0; i < len(text)-1; i++ {
		if text[i] != '{' {
			continue
		}
		var close string
		switch text[i+1] {
		case '{':
			close = "}}"
		case '%':
			close = "%}"
		default:
			continue
		}
		end := strings.Index(text[i+2:], close)
		if end < 0 {
			break
		}
		scanTag(text[i+2:i+2+end], add)
		i += 2 + end + 1
	}

	return out
}

func scanTag(tag string, add func(string)) {
	i := 0
	afterPipe := false
	for i < len(tag) {
		ch := tag[i]
		switch {
		case ch == '\'' || ch == '"':
			quote := ch
			i++
			for i < len(tag) && tag[i] != quote {
				i++
			}
			i++
		case ch == '|':
			afterPipe = true
			i++
		case isIdentStart(ch):
			start := i
			for i < len(tag) && isIdentPart(tag[i]) {
				i++
			}
			word := tag[start:i]
			if afterPipe {
				afterPipe = false
				continue
			}
			add(word)
		default:
			if ch != ' ' && ch != '\t' {
				afterPipe = false
			}
			i++
		}
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9') || ch == '.'
}
