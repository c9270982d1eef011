package search

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
	"github.com/heartmarshall/myenglish-phonetics/internal/phoneme"
)

// Lookup returns the decoded pronunciations of word in source order.
// An unknown word yields an empty result.
func (s *Service) Lookup(ctx context.Context, word string) ([][]string, error) {
	if err := validateWord(word); err != nil {
		return nil, err
	}
	word = domain.NormalizeWord(word)

	prons, err := s.pronunciationsOf(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", word, err)
	}

	out := make([][]string, 0, len(prons))
	for _, p := range prons {
		symbols, err := phoneme.DecodeSequence(p)
		if err != nil {
			return nil, fmt.Errorf("decode pronunciation of %q: %w", word, err)
		}
		out = append(out, symbols)
	}
	return out, nil
}

// Match returns the words whose pronunciation matches the phonetic pattern.
func (s *Service) Match(ctx context.Context, pattern string) ([]string, error) {
	if err := s.validatePattern(pattern); err != nil {
		return nil, err
	}

	re, err := s.compiler.Compile(pattern)
	if err != nil {
		return nil, err
	}

	words, err := s.collectMatches(ctx, []*regexp.Regexp{re})
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", pattern, err)
	}

	s.log.DebugContext(ctx, "pattern matched", slog.String("pattern", pattern), slog.Int("count", len(words)))
	return words, nil
}

// Rhymes returns the words that rhyme with word under any of its
// pronunciations. The word itself is excluded.
func (s *Service) Rhymes(ctx context.Context, word string) ([]string, error) {
	return s.derivedQuery(ctx, "rhymes", word, RhymePattern)
}

// VowelMatches returns the words sharing the vowel sequence of word under
// any of its pronunciations. The word itself is excluded.
func (s *Service) VowelMatches(ctx context.Context, word string) ([]string, error) {
	return s.derivedQuery(ctx, "vowel matches", word, VowelPattern)
}

// derivedQuery looks up word, derives one pattern per pronunciation with
// build, and collects every other word matching any of them.
func (s *Service) derivedQuery(
	ctx context.Context,
	op string,
	word string,
	build func(symbols []string) (string, bool),
) ([]string, error) {
	if err := validateWord(word); err != nil {
		return nil, err
	}
	word = domain.NormalizeWord(word)

	prons, err := s.pronunciationsOf(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("%s of %q: %w", op, word, err)
	}

	var texts []string
	for _, p := range prons {
		symbols, err := phoneme.DecodeSequence(p)
		if err != nil {
			return nil, fmt.Errorf("decode pronunciation of %q: %w", word, err)
		}
		if text, ok := build(symbols); ok && !slices.Contains(texts, text) {
			texts = append(texts, text)
		}
	}

	patterns := make([]*regexp.Regexp, 0, len(texts))
	for _, text := range texts {
		re, err := s.compiler.Compile(text)
		if err != nil {
			return nil, fmt.Errorf("%s of %q: %w", op, word, err)
		}
		patterns = append(patterns, re)
	}

	words, err := s.collectMatches(ctx, patterns)
	if err != nil {
		return nil, fmt.Errorf("%s of %q: %w", op, word, err)
	}

	words = slices.DeleteFunc(words, func(w string) bool { return w == word })

	s.log.DebugContext(ctx, "derived query",
		slog.String("op", op),
		slog.String("word", word),
		slog.Int("patterns", len(patterns)),
		slog.Int("count", len(words)),
	)
	return words, nil
}

// RhymeWindow returns the suffix of a pronunciation starting at its first
// vowel. ok is false when the pronunciation has no vowel.
func RhymeWindow(symbols []string) (window []string, ok bool) {
	i := slices.IndexFunc(symbols, phoneme.IsVowel)
	if i < 0 {
		return nil, false
	}
	return symbols[i:], true
}

// RhymePattern builds the phonetic pattern matching any pronunciation that
// ends with the rhyme window of symbols.
func RhymePattern(symbols []string) (string, bool) {
	window, ok := RhymeWindow(symbols)
	if !ok {
		return "", false
	}
	return ".* " + strings.Join(window, " "), true
}

// VowelPattern builds the phonetic pattern matching any pronunciation whose
// vowels contain those of symbols in order, separated only by consonants.
func VowelPattern(symbols []string) (string, bool) {
	var vowels []string
	for _, sym := range symbols {
		if phoneme.IsVowel(sym) {
			vowels = append(vowels, sym)
		}
	}
	if len(vowels) == 0 {
		return "", false
	}
	return ".*" + strings.Join(vowels, "#*") + ".*", true
}
