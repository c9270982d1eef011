package app

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/heartmarshall/myenglish-phonetics/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-phonetics/internal/adapter/postgres/dictentry"
	"github.com/heartmarshall/myenglish-phonetics/internal/config"
	"github.com/heartmarshall/myenglish-phonetics/internal/dictionary"
	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
)

// Dictionary is a source of entries that can report its own health.
type Dictionary interface {
	Entries(ctx context.Context) iter.Seq2[domain.Entry, error]
	Ping(ctx context.Context) error
}

// OpenDictionary builds the dictionary source selected by cfg.Dictionary.
// The returned close function releases any connections and is never nil.
func OpenDictionary(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Dictionary, func(), error) {
	var (
		src     Dictionary
		closeFn = func() {}
	)

	switch cfg.Dictionary.Source {
	case config.SourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, closeFn, fmt.Errorf("connect to database: %w", err)
		}
		src, closeFn = dictentry.New(pool), pool.Close

	default:
		file := dictionary.Open(cfg.Dictionary.Path)
		if err := file.Ping(ctx); err != nil {
			return nil, closeFn, fmt.Errorf("open dictionary: %w", err)
		}
		logger.Info("dictionary file opened",
			slog.String("path", cfg.Dictionary.Path),
			slog.String("kind", string(file.Kind())),
		)
		src = file
	}

	if !cfg.Dictionary.Preload {
		return src, closeFn, nil
	}

	start := time.Now()
	mem, err := dictionary.Preload(ctx, src)
	if err != nil {
		closeFn()
		return nil, func() {}, fmt.Errorf("preload dictionary: %w", err)
	}
	logger.Info("dictionary preloaded",
		slog.Int("entries", mem.Len()),
		slog.Duration("duration", time.Since(start)),
	)

	// The preloaded copy no longer needs the database.
	closeFn()
	return mem, func() {}, nil
}
