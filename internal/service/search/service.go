package search

import (
	"context"
	"iter"
	"log/slog"
	"regexp"

	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
)

// entrySource defines the dictionary interface needed by the search service.
type entrySource interface {
	Entries(ctx context.Context) iter.Seq2[domain.Entry, error]
}

// patternCompiler defines the pattern compilation interface needed by the search service.
type patternCompiler interface {
	Compile(text string) (*regexp.Regexp, error)
}

// Options tune a Service.
type Options struct {
	// Workers is the number of goroutines testing entries. Values below 2
	// scan sequentially.
	Workers int

	// MaxPatternLength rejects longer user patterns. Zero means unlimited.
	MaxPatternLength int
}

// Service implements the phonetic queries over a dictionary source.
// It holds no per-query state and is safe for concurrent use.
type Service struct {
	log      *slog.Logger
	source   entrySource
	compiler patternCompiler
	opts     Options
}

// NewService creates a new search service instance.
func NewService(
	logger *slog.Logger,
	source entrySource,
	compiler patternCompiler,
	opts Options,
) *Service {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Service{
		log:      logger.With("service", "search"),
		source:   source,
		compiler: compiler,
		opts:     opts,
	}
}
