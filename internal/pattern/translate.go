// Package pattern translates phonetic patterns into regular expressions
// over encoded pronunciations.
//
// A phonetic pattern mixes phoneme names with three wildcards:
//
//	#  any consonant
//	@  any vowel
//	%  any syllable (consonants, one vowel, consonants)
//
// Everything else is passed through as regexp syntax with whitespace
// removed, so "K AE T", ".* AE T" and "(K|G) @{2}.*" all work.
package pattern

import (
	"regexp"
	"strings"
	"sync"

	"github.com/heartmarshall/myenglish-phonetics/internal/phoneme"
)

// Wildcard markers.
const (
	AnyConsonant = "#"
	AnyVowel     = "@"
	AnySyllable  = "%"
)

// tokenRE matches the separators of a phonetic pattern: a wildcard marker
// or a run of characters that are neither ASCII letters nor markers.
var tokenRE = regexp.MustCompile(`[%#@]|[^a-zA-Z%#@]+`)

var (
	consonantAlt = sync.OnceValue(func() string { return alternation(phoneme.Consonants()) })
	vowelAlt     = sync.OnceValue(func() string { return alternation(phoneme.Vowels()) })
	syllableAlt  = sync.OnceValue(func() string {
		return "(?:" + consonantAlt() + "*" + vowelAlt() + consonantAlt() + "*)"
	})
)

// Translate converts a phonetic pattern into unanchored regexp source over
// encoded pronunciations. A letter run that names a phoneme always
// translates to that phoneme's code unit. Translate is deterministic.
func Translate(text string) string {
	var b strings.Builder
	last := 0
	for _, loc := range tokenRE.FindAllStringIndex(text, -1) {
		b.WriteString(translateToken(text[last:loc[0]]))
		b.WriteString(translateToken(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(translateToken(text[last:]))
	return b.String()
}

// Anchored wraps the translation of text so it only matches a whole
// pronunciation.
func Anchored(text string) string {
	return "^(?:" + Translate(text) + ")$"
}

func translateToken(tok string) string {
	switch tok {
	case "":
		return ""
	case AnyConsonant:
		return consonantAlt()
	case AnyVowel:
		return vowelAlt()
	case AnySyllable:
		return syllableAlt()
	}
	if phoneme.IsKnown(tok) {
		u, _ := phoneme.EncodeSymbol(tok)
		return regexp.QuoteMeta(string(u))
	}
	return strings.Join(strings.Fields(tok), "")
}

func alternation(symbols []string) string {
	parts := make([]string, 0, len(symbols))
	for _, s := range symbols {
		u, err := phoneme.EncodeSymbol(s)
		if err != nil {
			panic(err) // table symbols always encode
		}
		parts = append(parts, regexp.QuoteMeta(string(u)))
	}
	return "(?:" + strings.Join(parts, "|") + ")"
}
