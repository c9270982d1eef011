// Package phoneme holds the ARPAbet phoneme table used by the CMU
// Pronouncing Dictionary and the codec that maps each phoneme to a single
// rune, so pronunciations can be matched with an unmodified regexp engine.
package phoneme

// table is the closed phoneme enumeration. The order defines the codec
// mapping: changing it invalidates every compiled dictionary.
var table = [...]string{
	"AA", "AE", "AH", "AO", "AW", "AY", "B", "CH", "D", "DH", "EH", "ER", "EY", "F", "G",
	"HH", "IH", "IY", "JH", "K", "L", "M", "N", "NG", "OW", "OY", "P", "R", "S", "SH", "T",
	"TH", "UH", "UW", "V", "W", "Y", "Z", "ZH",
}

var vowels = map[string]bool{
	"AA": true, "AE": true, "AH": true, "AO": true, "AW": true,
	"AY": true, "EH": true, "ER": true, "EY": true, "IH": true,
	"IY": true, "OW": true, "OY": true, "UH": true, "UW": true,
}

// index maps a symbol to its position in table.
var index = func() map[string]int {
	m := make(map[string]int, len(table))
	for i, s := range table {
		m[s] = i
	}
	return m
}()

// Count is the number of phonemes in the table.
const Count = len(table)

// Symbols returns all phoneme symbols in table order.
func Symbols() []string {
	out := make([]string, len(table))
	copy(out, table[:])
	return out
}

// Vowels returns the vowel symbols in table order.
func Vowels() []string {
	return filter(true)
}

// Consonants returns the consonant symbols in table order.
func Consonants() []string {
	return filter(false)
}

// IsVowel reports whether symbol (already sanitized) is a vowel phoneme.
func IsVowel(symbol string) bool {
	return vowels[symbol]
}

// IsKnown reports whether symbol sanitizes to a table entry.
func IsKnown(symbol string) bool {
	_, ok := index[Sanitize(symbol)]
	return ok
}

func filter(vowel bool) []string {
	var out []string
	for _, s := range table {
		if vowels[s] == vowel {
			out = append(out, s)
		}
	}
	return out
}
