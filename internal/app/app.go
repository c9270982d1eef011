package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/myenglish-phonetics/internal/config"
	"github.com/heartmarshall/myenglish-phonetics/internal/pattern"
	"github.com/heartmarshall/myenglish-phonetics/internal/service/search"
)

// Run is the application entry point. It loads configuration, initializes
// the logger, opens the dictionary, wires the search service and serves
// HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("dictionary_source", cfg.Dictionary.Source),
	)

	dict, closeDict, err := OpenDictionary(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDict()

	compiler, err := pattern.NewCompiler(cfg.Search.PatternCacheSize)
	if err != nil {
		return fmt.Errorf("create pattern compiler: %w", err)
	}

	svc := search.NewService(logger, dict, compiler, search.Options{
		Workers:          cfg.Search.Workers,
		MaxPatternLength: cfg.Search.MaxPatternLength,
	})

	limiter := newLimiter()
	defer limiter.Stop()

	handler := NewRouter(cfg, logger, svc, dict, limiter)

	return serve(ctx, cfg.Server, handler, logger)
}

// serve runs the HTTP server and shuts it down gracefully once ctx is done.
func serve(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server", slog.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	if err := <-errCh; err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info("http server stopped")

	return nil
}
