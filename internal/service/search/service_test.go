package search

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/myenglish-phonetics/internal/dictionary"
	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
	"github.com/heartmarshall/myenglish-phonetics/internal/pattern"
	"github.com/heartmarshall/myenglish-phonetics/internal/phoneme/phonemetest"
)

//go:generate moq -out entry_source_mock_test.go -pkg search . entrySource
//go:generate moq -out pattern_compiler_mock_test.go -pkg search . patternCompiler

func entry(word string, symbols ...string) domain.Entry {
	return domain.Entry{Word: word, Pronunciation: phonemetest.MustEncode(symbols...)}
}

func sampleEntries() []domain.Entry {
	return []domain.Entry{
		entry("CAT", "K", "AE1", "T"),
		entry("BAT", "B", "AE1", "T"),
		entry("HAT", "HH", "AE1", "T"),
		entry("COT", "K", "AA1", "T"),
		entry("READ", "R", "IY1", "D"),
		entry("READ(1)", "R", "EH1", "D"),
		entry("REED", "R", "IY1", "D"),
		entry("RED", "R", "EH1", "D"),
		entry("BANANA", "B", "AH0", "N", "AE1", "N", "AH0"),
		entry("CABANA", "K", "AH0", "B", "AE1", "N", "AH0"),
		entry("HMM", "HH", "M"),
	}
}

// newTestService builds a service over the sample dictionary with a real
// compiler. workers selects the scan mode.
func newTestService(t *testing.T, workers int) *Service {
	t.Helper()
	compiler, err := pattern.NewCompiler(16)
	require.NoError(t, err)
	return NewService(
		slog.Default(),
		dictionary.NewMemorySource(sampleEntries()),
		compiler,
		Options{Workers: workers},
	)
}

// failingSource yields n entries then err.
func failingSource(n int, err error) *entrySourceMock {
	return &entrySourceMock{
		EntriesFunc: func(ctx context.Context) iter.Seq2[domain.Entry, error] {
			return func(yield func(domain.Entry, error) bool) {
				for i := range n {
					if !yield(entry(fmt.Sprintf("W%d", i), "K", "AE", "T"), nil) {
						return
					}
				}
				yield(domain.Entry{}, err)
			}
		},
	}
}

var workerModes = []struct {
	name    string
	workers int
}{
	{name: "sequential", workers: 1},
	{name: "parallel", workers: 4},
}

// ---------------------------------------------------------------------------
// Lookup
// ---------------------------------------------------------------------------

func TestLookup(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 1)

	tests := []struct {
		name string
		word string
		want [][]string
	}{
		{name: "single pronunciation", word: "CAT", want: [][]string{{"K", "AE", "T"}}},
		{name: "case insensitive", word: "cat", want: [][]string{{"K", "AE", "T"}}},
		{name: "variants in source order", word: "read", want: [][]string{{"R", "IY", "D"}, {"R", "EH", "D"}}},
		{name: "absent word", word: "DOG", want: [][]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := svc.Lookup(context.Background(), tt.word)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup_EmptyWord(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 1)

	_, err := svc.Lookup(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLookup_SourceError(t *testing.T) {
	t.Parallel()

	sourceErr := errors.New("disk gone")
	svc := NewService(slog.Default(), failingSource(3, sourceErr), &patternCompilerMock{}, Options{})

	got, err := svc.Lookup(context.Background(), "W1")
	assert.ErrorIs(t, err, sourceErr)
	assert.Nil(t, got)
}

// ---------------------------------------------------------------------------
// Match
// ---------------------------------------------------------------------------

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		want    []string
	}{
		{pattern: "K AE T", want: []string{"Cat"}},
		{pattern: "# AE T", want: []string{"Bat", "Cat", "Hat"}},
		{pattern: "K @ T", want: []string{"Cat", "Cot"}},
		{pattern: "(K|B) AE T", want: []string{"Bat", "Cat"}},
		{pattern: "R @ D", want: []string{"Read", "Red", "Reed"}},
		{pattern: "%%%", want: []string{"Banana", "Cabana"}},
		{pattern: "Z Z Z", want: []string{}},
	}

	for _, mode := range workerModes {
		svc := newTestService(t, mode.workers)
		for _, tt := range tests {
			t.Run(mode.name+"/"+tt.pattern, func(t *testing.T) {
				t.Parallel()
				got, err := svc.Match(context.Background(), tt.pattern)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	}
}

func TestMatch_InvalidPattern(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 1)

	_, err := svc.Match(context.Background(), "(K AE")
	assert.ErrorIs(t, err, domain.ErrInvalidPattern)
}

func TestMatch_Validation(t *testing.T) {
	t.Parallel()

	compiler := &patternCompilerMock{}
	svc := NewService(slog.Default(), dictionary.NewMemorySource(nil), compiler, Options{MaxPatternLength: 5})

	_, err := svc.Match(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Match(context.Background(), "K AE T T")
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Empty(t, compiler.CompileCalls())
}

func TestMatch_SourceErrorAbortsQuery(t *testing.T) {
	t.Parallel()

	sourceErr := &domain.MalformedEntryError{Source: "d.txt", Line: 9, Text: "WORD", Err: errors.New("no phonemes")}
	re := regexp.MustCompile(".*")

	for _, mode := range workerModes {
		t.Run(mode.name, func(t *testing.T) {
			t.Parallel()

			compiler := &patternCompilerMock{
				CompileFunc: func(string) (*regexp.Regexp, error) { return re, nil },
			}
			svc := NewService(slog.Default(), failingSource(2000, sourceErr), compiler, Options{Workers: mode.workers})

			got, err := svc.Match(context.Background(), "%")
			assert.ErrorIs(t, err, domain.ErrMalformedEntry)
			assert.Nil(t, got)
		})
	}
}

func TestMatch_ParallelEqualsSequential(t *testing.T) {
	t.Parallel()

	var entries []domain.Entry
	for i := range 5000 {
		syms := []string{"K", "AE", "T"}
		if i%3 == 0 {
			syms = []string{"B", "IY", "T"}
		}
		entries = append(entries, entry(fmt.Sprintf("W%04d", i%1700), syms...))
	}

	compiler, err := pattern.NewCompiler(0)
	require.NoError(t, err)
	seq := NewService(slog.Default(), dictionary.NewMemorySource(entries), compiler, Options{Workers: 1})
	par := NewService(slog.Default(), dictionary.NewMemorySource(entries), compiler, Options{Workers: 8})

	want, err := seq.Match(context.Background(), "# @ T")
	require.NoError(t, err)
	got, err := par.Match(context.Background(), "# @ T")
	require.NoError(t, err)

	assert.Len(t, want, 1700)
	assert.Equal(t, want, got)
}

// ---------------------------------------------------------------------------
// Rhymes
// ---------------------------------------------------------------------------

func TestRhymes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want []string
	}{
		{word: "CAT", want: []string{"Bat", "Hat"}},
		{word: "bat", want: []string{"Cat", "Hat"}},
		{word: "READ", want: []string{"Red", "Reed"}},
		{word: "BANANA", want: []string{}},
		{word: "DOG", want: []string{}},
		{word: "HMM", want: []string{}},
	}

	for _, mode := range workerModes {
		svc := newTestService(t, mode.workers)
		for _, tt := range tests {
			t.Run(mode.name+"/"+tt.word, func(t *testing.T) {
				t.Parallel()
				got, err := svc.Rhymes(context.Background(), tt.word)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	}
}

func TestRhymes_HomophonesAreSymmetric(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 1)

	reed, err := svc.Rhymes(context.Background(), "REED")
	require.NoError(t, err)
	red, err := svc.Rhymes(context.Background(), "RED")
	require.NoError(t, err)

	assert.Contains(t, reed, "Read")
	assert.Contains(t, red, "Read")
}

func TestRhymes_CompilesOnePatternPerWindow(t *testing.T) {
	t.Parallel()

	compiler := &patternCompilerMock{
		CompileFunc: func(text string) (*regexp.Regexp, error) { return pattern.Compile(text) },
	}
	svc := NewService(slog.Default(), dictionary.NewMemorySource(sampleEntries()), compiler, Options{})

	_, err := svc.Rhymes(context.Background(), "READ")
	require.NoError(t, err)

	calls := compiler.CompileCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, ".* IY D", calls[0].Text)
	assert.Equal(t, ".* EH D", calls[1].Text)
}

// ---------------------------------------------------------------------------
// VowelMatches
// ---------------------------------------------------------------------------

func TestVowelMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want []string
	}{
		{word: "CAT", want: []string{"Banana", "Bat", "Cabana", "Hat"}},
		{word: "BANANA", want: []string{"Cabana"}},
		{word: "COT", want: []string{}},
		{word: "HMM", want: []string{}},
	}

	for _, mode := range workerModes {
		svc := newTestService(t, mode.workers)
		for _, tt := range tests {
			t.Run(mode.name+"/"+tt.word, func(t *testing.T) {
				t.Parallel()
				got, err := svc.VowelMatches(context.Background(), tt.word)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	}
}

func TestVowelMatches_CatBatHat(t *testing.T) {
	t.Parallel()

	compiler, err := pattern.NewCompiler(0)
	require.NoError(t, err)
	svc := NewService(slog.Default(), dictionary.NewMemorySource([]domain.Entry{
		entry("CAT", "K", "AE", "T"),
		entry("BAT", "B", "AE", "T"),
		entry("HAT", "HH", "AE", "T"),
		entry("COT", "K", "AA", "T"),
	}), compiler, Options{})

	got, err := svc.VowelMatches(context.Background(), "CAT")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bat", "Hat"}, got)
}

// ---------------------------------------------------------------------------
// Pattern builders
// ---------------------------------------------------------------------------

func TestRhymeWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		symbols []string
		want    []string
		wantOK  bool
	}{
		{name: "first vowel", symbols: []string{"B", "AH", "N", "AE", "N", "AH"}, want: []string{"AH", "N", "AE", "N", "AH"}, wantOK: true},
		{name: "leading vowel", symbols: []string{"AE", "T"}, want: []string{"AE", "T"}, wantOK: true},
		{name: "no vowel", symbols: []string{"HH", "M"}},
		{name: "empty", symbols: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := RhymeWindow(tt.symbols)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVowelPattern(t *testing.T) {
	t.Parallel()

	got, ok := VowelPattern([]string{"B", "AH", "N", "AE", "N", "AH"})
	require.True(t, ok)
	assert.Equal(t, ".*AH#*AE#*AH.*", got)

	re, err := pattern.Compile(got)
	require.NoError(t, err)
	assert.True(t, re.MatchString(string(phonemetest.MustEncode("K", "AH", "B", "AE", "N", "AH"))))
	assert.False(t, re.MatchString(string(phonemetest.MustEncode("AH"))))

	_, ok = VowelPattern([]string{"HH", "M"})
	assert.False(t, ok)
}

func TestVowelPattern_RequiresOnlyConsonantsBetween(t *testing.T) {
	t.Parallel()

	text, ok := VowelPattern([]string{"K", "AE", "T", "IY"})
	require.True(t, ok)
	re, err := pattern.Compile(text)
	require.NoError(t, err)

	assert.True(t, re.MatchString(string(phonemetest.MustEncode("AE", "T", "S", "IY"))))
	assert.False(t, re.MatchString(string(phonemetest.MustEncode("AE", "OW", "IY"))))
	assert.False(t, re.MatchString(string(phonemetest.MustEncode("AE"))))
}
