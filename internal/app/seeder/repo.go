// Package seeder imports a pronunciation dictionary file into PostgreSQL.
package seeder

import (
	"context"

	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
)

// EntryBulkRepo defines the batch repository contract consumed by the import pipeline.
// All methods use only domain types, no adapter imports.
// Implemented by dictentry.Repo.
type EntryBulkRepo interface {
	BulkInsert(ctx context.Context, entries []domain.Entry) (int, error)
	Truncate(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// TxManager runs fn in a single database transaction.
// Implemented by postgres.TxManager.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
