// Package dictentry stores pronunciation dictionary entries in PostgreSQL
// and streams them back as a dictionary source, in insertion order.
package dictentry

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/myenglish-phonetics/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
	"github.com/heartmarshall/myenglish-phonetics/internal/phoneme"
)

const (
	table = "dictionary_entries"

	colID            = "id"
	colPosition      = "position"
	colWord          = "word"
	colPronunciation = "pronunciation"
)

// maxRowsPerInsert keeps one INSERT under the 65535 bind parameter limit.
const maxRowsPerInsert = 65535 / 3

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var errEmptyPronunciation = errors.New("empty pronunciation")

// row is the scan target for dictionary_entries.
type row struct {
	Word          string `db:"word"`
	Pronunciation string `db:"pronunciation"`
}

// Repo provides dictionary entry persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new dictionary entry repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Entries streams every entry ordered by insertion position. Rows whose
// pronunciation is not a valid encoding are reported as malformed entries
// and end the scan.
func (r *Repo) Entries(ctx context.Context) iter.Seq2[domain.Entry, error] {
	return func(yield func(domain.Entry, error) bool) {
		query, args, err := psql.
			Select(colWord, colPronunciation).
			From(table).
			OrderBy(colPosition).
			ToSql()
		if err != nil {
			yield(domain.Entry{}, fmt.Errorf("build select: %w", err))
			return
		}

		rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
		if err != nil {
			yield(domain.Entry{}, postgres.MapError(err, table, ""))
			return
		}
		defer rows.Close()

		scanner := pgxscan.NewRowScanner(rows)
		n := 0
		for rows.Next() {
			n++
			var rec row
			if err := scanner.Scan(&rec); err != nil {
				yield(domain.Entry{}, fmt.Errorf("scan %s row %d: %w", table, n, err))
				return
			}

			enc := domain.Encoded(rec.Pronunciation)
			if err := validatePronunciation(enc); err != nil {
				yield(domain.Entry{}, &domain.MalformedEntryError{
					Source: table,
					Line:   n,
					Text:   rec.Word,
					Err:    err,
				})
				return
			}

			if !yield(domain.Entry{Word: domain.NormalizeWord(rec.Word), Pronunciation: enc}, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(domain.Entry{}, postgres.MapError(err, table, ""))
		}
	}
}

// BulkInsert appends entries with multi-row INSERTs, preserving slice
// order. Returns the number of inserted rows.
func (r *Repo) BulkInsert(ctx context.Context, entries []domain.Entry) (int, error) {
	inserted := 0
	for chunk := range slices.Chunk(entries, maxRowsPerInsert) {
		n, err := r.insertChunk(ctx, chunk)
		if err != nil {
			return inserted, err
		}
		inserted += n
	}
	return inserted, nil
}

func (r *Repo) insertChunk(ctx context.Context, entries []domain.Entry) (int, error) {
	insert := psql.Insert(table).Columns(colID, colWord, colPronunciation)
	for _, e := range entries {
		insert = insert.Values(uuid.New(), domain.NormalizeWord(e.Word), string(e.Pronunciation))
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, table, entries[0].Word)
	}

	return int(tag.RowsAffected()), nil
}

// Truncate removes all entries and restarts the position sequence.
func (r *Repo) Truncate(ctx context.Context) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, "TRUNCATE "+table+" RESTART IDENTITY"); err != nil {
		return postgres.MapError(err, table, "")
	}
	return nil
}

// Count returns the number of stored entries.
func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("count(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, table, "")
	}
	return n, nil
}

// Ping checks that the entries table is reachable.
func (r *Repo) Ping(ctx context.Context) error {
	query, args, err := psql.Select("1").From(table).Limit(1).ToSql()
	if err != nil {
		return fmt.Errorf("build ping: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, table, "")
	}
	rows.Close()
	return postgres.MapError(rows.Err(), table, "")
}

func validatePronunciation(enc domain.Encoded) error {
	if enc == "" {
		return errEmptyPronunciation
	}
	return phoneme.Validate(enc)
}
