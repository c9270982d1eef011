package domain

// Encoded is a pronunciation in code-unit form: one rune per phoneme.
// It is produced by the phoneme codec and is safe to match with regexp.
type Encoded string

// Entry is a single (word, pronunciation) pair from a dictionary source.
// A word with alternate pronunciations appears as several entries.
type Entry struct {
	Word          string
	Pronunciation Encoded
}
