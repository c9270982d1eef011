package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeWord is the single canonical word form used for storage and
// comparison:
//   - trims leading/trailing whitespace
//   - strips trailing alternate-pronunciation markers like "(2)"
//   - capitalizes: first rune upper case, the rest lower case
//
// It is idempotent: NormalizeWord(NormalizeWord(w)) == NormalizeWord(w).
func NormalizeWord(word string) string {
	word = stripVariantMarkers(strings.TrimSpace(word))
	if word == "" {
		return ""
	}

	first, size := utf8.DecodeRuneInString(word)

	var b strings.Builder
	b.Grow(len(word))
	b.WriteRune(unicode.ToUpper(first))
	b.WriteString(strings.ToLower(word[size:]))
	return b.String()
}

// stripVariantMarkers removes one or more trailing "(N)" groups, where N is
// a run of ASCII digits, together with any whitespace before them. "READ(2)"
// and "READ (2)" become "READ"; "(2)" alone is kept, since stripping it
// would leave no word.
func stripVariantMarkers(word string) string {
	for {
		word = strings.TrimRightFunc(word, unicode.IsSpace)
		if !strings.HasSuffix(word, ")") {
			return word
		}
		open := strings.LastIndexByte(word, '(')
		if open <= 0 || strings.TrimSpace(word[:open]) == "" {
			return word
		}
		digits := word[open+1 : len(word)-1]
		if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
			return word
		}
		word = word[:open]
	}
}
