package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
)

// searchService defines the minimal interface needed by SearchHandler.
type searchService interface {
	Lookup(ctx context.Context, word string) ([][]string, error)
	Match(ctx context.Context, pattern string) ([]string, error)
	Rhymes(ctx context.Context, word string) ([]string, error)
	VowelMatches(ctx context.Context, word string) ([]string, error)
}

// SearchHandler serves the phonetic query endpoints.
type SearchHandler struct {
	svc searchService
	log *slog.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(svc searchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{svc: svc, log: logger.With("handler", "search")}
}

type lookupResponse struct {
	Word           string     `json:"word"`
	Pronunciations [][]string `json:"pronunciations"`
}

type wordsResponse struct {
	Word    string   `json:"word,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Count   int      `json:"count"`
	Words   []string `json:"words"`
}

// Register mounts the search routes on mux.
func (h *SearchHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/lookup", h.Lookup)
	mux.HandleFunc("GET /v1/match", h.Match)
	mux.HandleFunc("GET /v1/rhymes", h.Rhymes)
	mux.HandleFunc("GET /v1/vowel-matches", h.VowelMatches)
}

// Lookup handles GET /v1/lookup?word=.
func (h *SearchHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")

	prons, err := h.svc.Lookup(r.Context(), word)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, lookupResponse{
		Word:           domain.NormalizeWord(word),
		Pronunciations: prons,
	})
}

// Match handles GET /v1/match?pattern=.
func (h *SearchHandler) Match(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("pattern")

	words, err := h.svc.Match(r.Context(), pattern)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, wordsResponse{Pattern: pattern, Count: len(words), Words: words})
}

// Rhymes handles GET /v1/rhymes?word=.
func (h *SearchHandler) Rhymes(w http.ResponseWriter, r *http.Request) {
	h.wordQuery(w, r, h.svc.Rhymes)
}

// VowelMatches handles GET /v1/vowel-matches?word=.
func (h *SearchHandler) VowelMatches(w http.ResponseWriter, r *http.Request) {
	h.wordQuery(w, r, h.svc.VowelMatches)
}

func (h *SearchHandler) wordQuery(
	w http.ResponseWriter,
	r *http.Request,
	query func(ctx context.Context, word string) ([]string, error),
) {
	word := r.URL.Query().Get("word")

	words, err := query(r.Context(), word)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, wordsResponse{
		Word:  domain.NormalizeWord(word),
		Count: len(words),
		Words: words,
	})
}

func (h *SearchHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidPattern):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.log.WarnContext(r.Context(), "query aborted", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "query aborted before completion")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
