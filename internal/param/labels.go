package param

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Labelize converts a parameter name into a human-friendly label, splitting
// on underscores, dashes and camelCase boundaries: "maxRetries_count" becomes
// "Max Retries Count". Renderers use it when no label was declared.
func Labelize(name string) string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		word := current.String()
		first, size := utf8.DecodeRuneInString(word)
		words = append(words, string(unicode.ToUpper(first))+strings.ToLower(word[size:]))
		current.Reset()
	}

	var prev rune
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			current.WriteRune(r)
		case unicode.IsDigit(r) != unicode.IsDigit(prev) && current.Len() > 0 && prev != 0 && !unicode.IsSpace(prev) && prev != '_' && prev != '-':
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
		prev = r
	}
	flush()

	return strings.Join(words, " ")
}
