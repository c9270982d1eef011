// Package dictionary provides the pronunciation dictionary sources that
// every query scans. A Source yields (word, encoded pronunciation) entries
// in a stable order; the physical representation is chosen once when the
// source is opened.
package dictionary

import (
	"context"
	"iter"

	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
)

// Source is a read-only pronunciation dictionary.
//
// Entries yields every entry exactly once, in source order. If reading
// fails, a single non-nil error is yielded and iteration stops; callers
// must treat that as fatal for the whole scan. Words are already
// normalized with domain.NormalizeWord.
type Source interface {
	Entries(ctx context.Context) iter.Seq2[domain.Entry, error]
}

// Collect folds src into the entries for which keep returns true.
// A nil keep collects everything.
func Collect(ctx context.Context, src Source, keep func(domain.Entry) bool) ([]domain.Entry, error) {
	var out []domain.Entry
	for e, err := range src.Entries(ctx) {
		if err != nil {
			return nil, err
		}
		if keep == nil || keep(e) {
			out = append(out, e)
		}
	}
	return out, nil
}
