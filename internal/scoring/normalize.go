package scoring

import (
	"strings"
	"unicode"
)

// NormalizeTitle normalizes a title for fuzzy comparison: case-fold, strip
// punctuation that commonly differs between providers (apostrophes, colons,
// brackets), map separators to spaces, and collapse whitespace.
func NormalizeTitle(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.' || r == '/':
			// Separator variants become plain spaces
			b.WriteRune(' ')
		default:
			// Apostrophes, colons, brackets and other punctuation are
			// dropped so "Bob's Burgers" and "Bobs Burgers" coincide
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenSet splits a normalized title into its unique word tokens
func tokenSet(normalized string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(normalized) {
		set[tok] = struct{}{}
	}
	return set
}
