package textstats

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// spaceClass matches the same runes as isSpace: Unicode White_Space plus the
// information separators U+001C..U+001F.
const spaceClass = `\s\v\p{Z}\x{85}\x{1c}-\x{1f}`

var (
	nonWordPattern  = regexp.MustCompile(`[^\p{L}\p{N}_'` + spaceClass + `]`)
	spaceRunPattern = regexp.MustCompile(`[` + spaceClass + `]+`)
)

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Normalize replaces every rune that is not a word rune, whitespace or an
// apostrophe with a space, collapses whitespace runs to a single space and
// trims the result. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	clean := nonWordPattern.ReplaceAllString(text, " ")
	clean = spaceRunPattern.ReplaceAllString(clean, " ")

	return strings.Trim(clean, " ")
}

// Tokenize splits text on whitespace. Empty or blank text yields no tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, isSpace)
}

// CountUnique returns the number of distinct tokens ignoring case
func CountUnique(tokens []string) int {
	lower := cases.Lower(language.Und)
	seen := make(map[string]struct{}, len(tokens))

	for _, token := range tokens {
		seen[lower.String(token)] = struct{}{}
	}

	return len(seen)
}

// CountCharacters counts the runes of text that are not whitespace.
// Punctuation is included.
func CountCharacters(text string) int {
	count := 0

	for _, r := range text {
		if !isSpace(r) {
			count++
		}
	}

	return count
}
