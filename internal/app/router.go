package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/myenglish-phonetics/internal/config"
	"github.com/heartmarshall/myenglish-phonetics/internal/service/search"
	"github.com/heartmarshall/myenglish-phonetics/internal/transport/middleware"
	"github.com/heartmarshall/myenglish-phonetics/internal/transport/rest"
)

const limiterCleanupInterval = 5 * time.Minute

func newLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(limiterCleanupInterval)
}

// NewRouter assembles the HTTP handler: health probes are served as-is,
// query routes go through the rate limiter, and everything shares the
// recovery, request ID, client IP, logging and CORS middleware.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	svc *search.Service,
	dict Dictionary,
	limiter *middleware.RateLimiter,
) http.Handler {
	health := rest.NewHealthHandler(dict, BuildVersion())

	queries := http.NewServeMux()
	rest.NewSearchHandler(svc, logger).Register(queries)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)
	mux.Handle("/v1/", limiter.Limit(cfg.Server.RateLimit)(queries))

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.ClientIP(cfg.Server.TrustProxy),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
}
