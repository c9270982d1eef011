package seeder_test

import (
	postgres "github.com/heartmarshall/myenglish-phonetics/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-phonetics/internal/adapter/postgres/dictentry"
	"github.com/heartmarshall/myenglish-phonetics/internal/app/seeder"
)

// Compile-time checks: the PostgreSQL adapters must satisfy the pipeline contracts.
var (
	_ seeder.EntryBulkRepo = (*dictentry.Repo)(nil)
	_ seeder.TxManager     = (*postgres.TxManager)(nil)
)
