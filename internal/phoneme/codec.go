package phoneme

import (
	"strings"

	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
)

// Base is the first code unit. Code units occupy [Base, Base+Count) inside
// the Unicode Private Use Area: no dictionary word contains them and regexp
// treats them as plain literals.
const Base rune = 0xE000

// Sanitize strips stress digits and upper-cases a phoneme token:
// "ae1" becomes "AE".
func Sanitize(symbol string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, symbol))
}

// EncodeSymbol maps a phoneme token to its code unit.
func EncodeSymbol(symbol string) (rune, error) {
	i, ok := index[Sanitize(symbol)]
	if !ok {
		return 0, &domain.UnknownPhonemeError{Symbol: symbol}
	}
	return Base + rune(i), nil
}

// DecodeUnit maps a code unit back to its phoneme symbol.
func DecodeUnit(unit rune) (string, error) {
	i := int(unit - Base)
	if unit < Base || i >= len(table) {
		return "", &domain.InvalidCodeUnitError{Unit: unit}
	}
	return table[i], nil
}

// EncodeSequence encodes phoneme tokens in order. Empty input yields an
// empty pronunciation.
func EncodeSequence(symbols []string) (domain.Encoded, error) {
	var b strings.Builder
	b.Grow(len(symbols) * 3)
	for _, s := range symbols {
		u, err := EncodeSymbol(s)
		if err != nil {
			return "", err
		}
		b.WriteRune(u)
	}
	return domain.Encoded(b.String()), nil
}

// DecodeSequence decodes an encoded pronunciation into phoneme symbols.
func DecodeSequence(enc domain.Encoded) ([]string, error) {
	out := make([]string, 0, len(enc)/3)
	for _, u := range string(enc) {
		s, err := DecodeUnit(u)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Validate checks that every rune of enc is a valid code unit.
func Validate(enc domain.Encoded) error {
	for _, u := range string(enc) {
		if _, err := DecodeUnit(u); err != nil {
			return err
		}
	}
	return nil
}
