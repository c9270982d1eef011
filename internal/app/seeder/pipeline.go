package seeder

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/heartmarshall/myenglish-phonetics/internal/dictionary"
	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
)

// Result holds the outcome of an import run.
type Result struct {
	Read      int
	Inserted  int
	Truncated bool
	Total     int // rows in the table after the import
	Duration  time.Duration
}

// Pipeline streams a dictionary source into the entries table.
type Pipeline struct {
	log  *slog.Logger
	repo EntryBulkRepo
	tx   TxManager
	cfg  Config
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, repo EntryBulkRepo, tx TxManager, cfg Config) *Pipeline {
	return &Pipeline{
		log:  log.With("component", "seeder"),
		repo: repo,
		tx:   tx,
		cfg:  cfg,
	}
}

// Run imports every entry of src. The truncate and the inserts share one
// transaction: a malformed line anywhere in the file leaves the table as it
// was. In dry-run mode the source is only parsed.
func (p *Pipeline) Run(ctx context.Context, src dictionary.Source) (Result, error) {
	start := time.Now()
	var result Result

	if p.cfg.DryRun {
		read, err := batchProcess(src.Entries(ctx), p.cfg.BatchSize, func(batch []domain.Entry) (int, error) {
			return 0, nil
		})
		if err != nil {
			return result, fmt.Errorf("parse dictionary: %w", err)
		}
		result.Read = read
		result.Duration = time.Since(start)
		p.log.InfoContext(ctx, "dry run completed",
			slog.Int("read", result.Read),
			slog.Duration("duration", result.Duration),
		)
		return result, nil
	}

	err := p.tx.RunInTx(ctx, func(ctx context.Context) error {
		if p.cfg.Truncate {
			if err := p.repo.Truncate(ctx); err != nil {
				return fmt.Errorf("truncate: %w", err)
			}
			result.Truncated = true
		}

		batches := 0
		read, err := batchProcess(src.Entries(ctx), p.cfg.BatchSize, func(batch []domain.Entry) (int, error) {
			n, err := p.repo.BulkInsert(ctx, batch)
			if err != nil {
				return 0, fmt.Errorf("insert batch %d: %w", batches+1, err)
			}
			batches++
			result.Inserted += n
			p.log.DebugContext(ctx, "batch inserted", slog.Int("batch", batches), slog.Int("rows", n))
			return n, nil
		})
		result.Read = read
		if err != nil {
			return err
		}

		total, err := p.repo.Count(ctx)
		if err != nil {
			return fmt.Errorf("count: %w", err)
		}
		result.Total = total
		return nil
	})
	result.Duration = time.Since(start)
	if err != nil {
		return result, err
	}

	p.log.InfoContext(ctx, "import completed",
		slog.Int("read", result.Read),
		slog.Int("inserted", result.Inserted),
		slog.Int("total", result.Total),
		slog.Bool("truncated", result.Truncated),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

// batchProcess groups items from seq into batches of batchSize and calls fn
// for each one. It returns the number of items read. The first error from
// seq or fn stops processing.
func batchProcess[T any](seq iter.Seq2[T, error], batchSize int, fn func([]T) (int, error)) (int, error) {
	if batchSize <= 0 {
		batchSize = 500
	}

	read := 0
	batch := make([]T, 0, batchSize)
	for item, err := range seq {
		if err != nil {
			return read, err
		}
		read++
		batch = append(batch, item)
		if len(batch) == batchSize {
			if _, err := fn(batch); err != nil {
				return read, err
			}
			batch = make([]T, 0, batchSize)
		}
	}
	if len(batch) > 0 {
		if _, err := fn(batch); err != nil {
			return read, err
		}
	}
	return read, nil
}
