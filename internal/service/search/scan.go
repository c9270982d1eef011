package search

import (
	"context"
	"regexp"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
)

// scanBatchSize is the number of entries handed to a worker at once.
const scanBatchSize = 512

// wordSet accumulates matching words.
type wordSet map[string]struct{}

// sorted returns the set's words in ascending order, never nil.
func (ws wordSet) sorted() []string {
	out := make([]string, 0, len(ws))
	for w := range ws {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// matchesAny reports whether enc matches at least one of the patterns.
func matchesAny(patterns []*regexp.Regexp, enc domain.Encoded) bool {
	s := string(enc)
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// collectMatches scans the whole source once and returns the sorted,
// deduplicated words whose pronunciation matches any of the patterns.
func (s *Service) collectMatches(ctx context.Context, patterns []*regexp.Regexp) ([]string, error) {
	if len(patterns) == 0 {
		return []string{}, nil
	}
	if s.opts.Workers < 2 {
		return s.collectSequential(ctx, patterns)
	}
	return s.collectParallel(ctx, patterns)
}

func (s *Service) collectSequential(ctx context.Context, patterns []*regexp.Regexp) ([]string, error) {
	found := make(wordSet)
	for e, err := range s.source.Entries(ctx) {
		if err != nil {
			return nil, err
		}
		if matchesAny(patterns, e.Pronunciation) {
			found[e.Word] = struct{}{}
		}
	}
	return found.sorted(), nil
}

// collectParallel reads the source on one goroutine and fans batches out
// to workers. Each worker owns its set; sets are merged after Wait.
func (s *Service) collectParallel(ctx context.Context, patterns []*regexp.Regexp) ([]string, error) {
	g, gctx := errgroup.WithContext(ctx)
	batches := make(chan []domain.Entry, s.opts.Workers)

	g.Go(func() error {
		defer close(batches)

		batch := make([]domain.Entry, 0, scanBatchSize)
		send := func() error {
			select {
			case batches <- batch:
				batch = make([]domain.Entry, 0, scanBatchSize)
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		}

		for e, err := range s.source.Entries(gctx) {
			if err != nil {
				return err
			}
			batch = append(batch, e)
			if len(batch) == scanBatchSize {
				if err := send(); err != nil {
					return err
				}
			}
		}
		if len(batch) > 0 {
			return send()
		}
		return nil
	})

	sets := make([]wordSet, s.opts.Workers)
	for i := range sets {
		sets[i] = make(wordSet)
		found := sets[i]
		g.Go(func() error {
			for batch := range batches {
				for _, e := range batch {
					if matchesAny(patterns, e.Pronunciation) {
						found[e.Word] = struct{}{}
					}
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(wordSet)
	for _, set := range sets {
		for w := range set {
			merged[w] = struct{}{}
		}
	}
	return merged.sorted(), nil
}

// pronunciationsOf returns the encoded pronunciations of word in source order.
func (s *Service) pronunciationsOf(ctx context.Context, word string) ([]domain.Encoded, error) {
	var out []domain.Encoded
	for e, err := range s.source.Entries(ctx) {
		if err != nil {
			return nil, err
		}
		if e.Word == word {
			out = append(out, e.Pronunciation)
		}
	}
	return out, nil
}
