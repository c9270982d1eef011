package dictionary

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"strings"

	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
	"github.com/heartmarshall/myenglish-phonetics/internal/phoneme"
)

// Kind identifies the on-disk format of a file source.
type Kind string

const (
	// KindText is the CMU text format:
	//   ;;; comment
	//   WORD  PH1 PH2 ...
	KindText Kind = "text"

	// KindCompiled is the pre-encoded format, one entry per line:
	//   WORD ENCODED
	KindCompiled Kind = "compiled"
)

// maxLineSize bounds a single dictionary line.
const maxLineSize = 1 << 20

// ctxCheckInterval is how many lines are read between context checks.
const ctxCheckInterval = 4096

var (
	errNoPhonemes   = errors.New("word has no phonemes")
	errFieldCount   = errors.New("expected word and encoded pronunciation")
	errEmptyEncoded = errors.New("empty encoded pronunciation")
)

// lineParser parses one raw line. ok=false with a nil error skips the line.
type lineParser func(line string) (entry domain.Entry, ok bool, err error)

// FileSource reads a dictionary file line by line. Each call to Entries
// reopens the file, so repeated scans see the same data in the same order.
type FileSource struct {
	kind  Kind
	fsys  fs.FS
	name  string
	parse lineParser
}

// NewTextSource returns a source over a CMU-format text file.
func NewTextSource(fsys fs.FS, name string) *FileSource {
	return &FileSource{kind: KindText, fsys: fsys, name: name, parse: parseTextLine}
}

// NewCompiledSource returns a source over a compiled dictionary file.
func NewCompiledSource(fsys fs.FS, name string) *FileSource {
	return &FileSource{kind: KindCompiled, fsys: fsys, name: name, parse: parseCompiledLine}
}

// Kind reports the file format.
func (s *FileSource) Kind() Kind { return s.kind }

// Name reports the file name inside the source filesystem.
func (s *FileSource) Name() string { return s.name }

// Ping checks that the file is still readable.
func (s *FileSource) Ping(_ context.Context) error {
	if _, err := fs.Stat(s.fsys, s.name); err != nil {
		return fmt.Errorf("stat %s: %w", s.name, err)
	}
	return nil
}

// Entries implements Source.
func (s *FileSource) Entries(ctx context.Context) iter.Seq2[domain.Entry, error] {
	return func(yield func(domain.Entry, error) bool) {
		f, err := s.fsys.Open(s.name)
		if err != nil {
			yield(domain.Entry{}, fmt.Errorf("open %s: %w", s.name, err))
			return
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		lineNo := 0
		for scanner.Scan() {
			lineNo++
			if lineNo%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					yield(domain.Entry{}, err)
					return
				}
			}

			line := scanner.Text()
			entry, ok, err := s.parse(line)
			if err != nil {
				yield(domain.Entry{}, &domain.MalformedEntryError{
					Source: s.name,
					Line:   lineNo,
					Text:   line,
					Err:    err,
				})
				return
			}
			if !ok {
				continue
			}
			if !yield(entry, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(domain.Entry{}, fmt.Errorf("read %s: %w", s.name, err))
		}
	}
}

// parseTextLine parses "WORD  PH1 PH2 ...". Comment (";;;") and blank lines
// are skipped; a word without phonemes is malformed.
func parseTextLine(line string) (domain.Entry, bool, error) {
	if strings.HasPrefix(line, ";;;") {
		return domain.Entry{}, false, nil
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return domain.Entry{}, false, nil
	}
	if len(fields) == 1 {
		return domain.Entry{}, false, errNoPhonemes
	}

	enc, err := phoneme.EncodeSequence(fields[1:])
	if err != nil {
		return domain.Entry{}, false, err
	}

	return domain.Entry{
		Word:          domain.NormalizeWord(fields[0]),
		Pronunciation: enc,
	}, true, nil
}

// parseCompiledLine parses "WORD ENCODED". Empty lines are skipped.
func parseCompiledLine(line string) (domain.Entry, bool, error) {
	if line == "" {
		return domain.Entry{}, false, nil
	}

	parts := strings.Split(line, " ")
	if len(parts) != 2 || parts[0] == "" {
		return domain.Entry{}, false, errFieldCount
	}

	enc := domain.Encoded(parts[1])
	if enc == "" {
		return domain.Entry{}, false, errEmptyEncoded
	}
	if err := phoneme.Validate(enc); err != nil {
		return domain.Entry{}, false, err
	}

	return domain.Entry{
		Word:          domain.NormalizeWord(parts[0]),
		Pronunciation: enc,
	}, true, nil
}
