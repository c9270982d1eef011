package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// ResetEntries empties dictionary_entries. Tests that scan the whole table
// must not run in parallel with each other.
func ResetEntries(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), `TRUNCATE dictionary_entries RESTART IDENTITY`); err != nil {
		t.Fatalf("testhelper: ResetEntries: %v", err)
	}
}

// SeedEntries inserts entries in order and returns them.
func SeedEntries(t *testing.T, pool *pgxpool.Pool, entries ...domain.Entry) []domain.Entry {
	t.Helper()
	ctx := context.Background()

	for _, e := range entries {
		_, err := pool.Exec(ctx,
			`INSERT INTO dictionary_entries (id, word, pronunciation) VALUES ($1, $2, $3)`,
			uuid.New(), e.Word, string(e.Pronunciation),
		)
		if err != nil {
			t.Fatalf("testhelper: SeedEntries insert %q: %v", e.Word, err)
		}
	}
	return entries
}

// UniqueWord returns a capitalized word that no other test seeds.
func UniqueWord(prefix string) string {
	return domain.NormalizeWord(prefix + uniqueSuffix())
}
