package dictionary

import (
	"context"
	"fmt"
	"iter"

	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
)

// MemorySource is a Source over entries held in memory.
type MemorySource struct {
	entries []domain.Entry
}

// NewMemorySource returns a source over entries. Words are normalized so
// the source behaves like the file-backed ones.
func NewMemorySource(entries []domain.Entry) *MemorySource {
	out := make([]domain.Entry, len(entries))
	for i, e := range entries {
		out[i] = domain.Entry{Word: domain.NormalizeWord(e.Word), Pronunciation: e.Pronunciation}
	}
	return &MemorySource{entries: out}
}

// Preload reads src once into memory. Subsequent scans do no I/O.
func Preload(ctx context.Context, src Source) (*MemorySource, error) {
	entries, err := Collect(ctx, src, nil)
	if err != nil {
		return nil, fmt.Errorf("preload dictionary: %w", err)
	}
	return &MemorySource{entries: entries}, nil
}

// Len returns the number of entries.
func (s *MemorySource) Len() int { return len(s.entries) }

// Ping always succeeds.
func (s *MemorySource) Ping(_ context.Context) error { return nil }

// Entries implements Source.
func (s *MemorySource) Entries(ctx context.Context) iter.Seq2[domain.Entry, error] {
	return func(yield func(domain.Entry, error) bool) {
		for i, e := range s.entries {
			if i%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					yield(domain.Entry{}, err)
					return
				}
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}
