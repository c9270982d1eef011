// Command seeder imports a CMU pronunciation dictionary (text or compiled)
// into PostgreSQL so the server can run with dictionary.source=postgres.
// It applies pending migrations first.
//
// Flags:
//
//	--dict           dictionary path (overrides the seeder config)
//	--dry-run        parse the dictionary without writing to DB
//	--truncate       replace the table contents instead of appending
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/myenglish-phonetics/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-phonetics/internal/adapter/postgres/dictentry"
	"github.com/heartmarshall/myenglish-phonetics/internal/app"
	"github.com/heartmarshall/myenglish-phonetics/internal/app/seeder"
	"github.com/heartmarshall/myenglish-phonetics/internal/config"
	"github.com/heartmarshall/myenglish-phonetics/internal/dictionary"
)

func main() {
	dictFlag := flag.String("dict", "", "dictionary path (text .txt or compiled)")
	dryRunFlag := flag.Bool("dry-run", false, "parse the dictionary without writing to DB")
	truncateFlag := flag.Bool("truncate", false, "truncate the entries table before importing")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	// Load app config (for DB connection).
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *dictFlag != "" {
		seederCfg.DictionaryPath = *dictFlag
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}
	if *truncateFlag {
		seederCfg.Truncate = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	src := dictionary.Open(seederCfg.DictionaryPath)
	if err := src.Ping(ctx); err != nil {
		logger.Error("open dictionary", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Dry runs only parse the source and never touch the repository.
	var (
		repo seeder.EntryBulkRepo
		txm  seeder.TxManager
	)

	if !seederCfg.DryRun {
		if appCfg.Database.DSN == "" {
			logger.Error("database.dsn is required unless --dry-run is set")
			os.Exit(1)
		}

		if err := postgres.Migrate(ctx, appCfg.Database.DSN, logger); err != nil {
			logger.Error("migrate", slog.String("error", err.Error()))
			os.Exit(1)
		}

		pool, err := postgres.NewPool(ctx, appCfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		txm = postgres.NewTxManager(pool)
		repo = dictentry.New(pool)
	}

	pipeline := seeder.NewPipeline(logger, repo, txm, *seederCfg)
	result, err := pipeline.Run(ctx, src)
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import completed successfully",
		slog.String("path", seederCfg.DictionaryPath),
		slog.String("format", string(src.Kind())),
		slog.Int("read", result.Read),
		slog.Int("inserted", result.Inserted),
		slog.Int("total", result.Total),
		slog.Bool("dry_run", seederCfg.DryRun),
	)
}
