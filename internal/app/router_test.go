package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/myenglish-phonetics/internal/config"
	"github.com/heartmarshall/myenglish-phonetics/internal/pattern"
	"github.com/heartmarshall/myenglish-phonetics/internal/service/search"
)

const testDict = `;;; test dictionary
CAT  K AE1 T
BAT  B AE1 T
HAT  HH AE1 T
DOG  D AO1 G
`

func writeDict(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cmudict.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func testConfig(path string, preload bool) *config.Config {
	return &config.Config{
		Dictionary: config.DictionaryConfig{Source: config.SourceFile, Path: path, Preload: preload},
		Search:     config.SearchConfig{Workers: 2, PatternCacheSize: 16, MaxPatternLength: 64},
		Server:     config.ServerConfig{RateLimit: 0},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,OPTIONS",
			AllowedHeaders: "Content-Type",
			MaxAge:         60,
		},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dict, closeDict, err := OpenDictionary(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(closeDict)

	compiler, err := pattern.NewCompiler(cfg.Search.PatternCacheSize)
	require.NoError(t, err)

	svc := search.NewService(logger, dict, compiler, search.Options{
		Workers:          cfg.Search.Workers,
		MaxPatternLength: cfg.Search.MaxPatternLength,
	})

	limiter := newLimiter()
	t.Cleanup(limiter.Stop)

	return NewRouter(cfg, logger, svc, dict, limiter)
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRouter_Queries(t *testing.T) {
	for _, preload := range []bool{true, false} {
		h := newTestRouter(t, testConfig(writeDict(t, testDict), preload))

		rec := get(h, "/v1/rhymes?word=cat")
		require.Equal(t, http.StatusOK, rec.Code)

		var words struct {
			Word  string   `json:"word"`
			Count int      `json:"count"`
			Words []string `json:"words"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&words))
		assert.Equal(t, "Cat", words.Word)
		assert.Equal(t, []string{"Bat", "Hat"}, words.Words)
		assert.Equal(t, 2, words.Count)

		rec = get(h, "/v1/match?pattern="+url.QueryEscape("# AE T"))
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&words))
		assert.Equal(t, []string{"Bat", "Cat", "Hat"}, words.Words)

		rec = get(h, "/v1/lookup?word=dog")
		require.Equal(t, http.StatusOK, rec.Code)
		var lookup struct {
			Pronunciations [][]string `json:"pronunciations"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&lookup))
		assert.Equal(t, [][]string{{"D", "AO", "G"}}, lookup.Pronunciations)
	}
}

func TestRouter_BadPattern(t *testing.T) {
	h := newTestRouter(t, testConfig(writeDict(t, testDict), true))

	rec := get(h, "/v1/match?pattern="+url.QueryEscape("(K"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(h, "/v1/rhymes")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_HealthAndRequestID(t *testing.T) {
	h := newTestRouter(t, testConfig(writeDict(t, testDict), false))

	rec := get(h, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = get(h, "/live")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Preflight(t *testing.T) {
	h := newTestRouter(t, testConfig(writeDict(t, testDict), true))

	req := httptest.NewRequest(http.MethodOptions, "/v1/match", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimitAppliesToQueriesOnly(t *testing.T) {
	cfg := testConfig(writeDict(t, testDict), true)
	cfg.Server.RateLimit = 1
	h := newTestRouter(t, cfg)

	assert.Equal(t, http.StatusOK, get(h, "/v1/rhymes?word=cat").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(h, "/v1/rhymes?word=cat").Code)

	for range 3 {
		assert.Equal(t, http.StatusOK, get(h, "/live").Code)
	}
}

func TestOpenDictionary_MissingFile(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "missing.txt"), true)

	_, closeDict, err := OpenDictionary(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	assert.NotNil(t, closeDict)
}

func TestOpenDictionary_PreloadReportsMalformedEntry(t *testing.T) {
	cfg := testConfig(writeDict(t, "CAT K AE1 T\nBAD XX\n"), true)

	_, _, err := OpenDictionary(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preload dictionary")
}
