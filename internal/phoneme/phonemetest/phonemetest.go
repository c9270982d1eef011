// Package phonemetest provides helpers for tests that need encoded
// pronunciations.
package phonemetest

import (
	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
	"github.com/heartmarshall/myenglish-phonetics/internal/phoneme"
)

// MustEncode encodes symbols and panics on an unknown phoneme.
func MustEncode(symbols ...string) domain.Encoded {
	enc, err := phoneme.EncodeSequence(symbols)
	if err != nil {
		panic(err)
	}
	return enc
}
