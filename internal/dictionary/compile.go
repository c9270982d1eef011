package dictionary

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CompiledExt is appended to a dictionary path to name its compiled form.
const CompiledExt = ".phx"

// DefaultTextName is the dictionary file looked up when no path is given.
const DefaultTextName = "cmudict.txt"

// ErrNoDictionary is returned by FindDefault when neither default file exists.
var ErrNoDictionary = errors.New("no dictionary found")

// Open returns a file source for path. A ".txt" extension (any case)
// selects the CMU text format; anything else is read as compiled.
func Open(path string) *FileSource {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	fsys := os.DirFS(dir)

	if strings.EqualFold(filepath.Ext(name), ".txt") {
		return NewTextSource(fsys, name)
	}
	return NewCompiledSource(fsys, name)
}

// FindDefault looks for the compiled default dictionary in dir, then the
// text one, and returns the first that exists.
func FindDefault(dir string) (string, error) {
	for _, name := range []string{DefaultTextName + CompiledExt, DefaultTextName} {
		p := filepath.Join(dir, name)
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s%s and %s)",
		ErrNoDictionary, dir, DefaultTextName, CompiledExt, DefaultTextName)
}

// Compile writes every entry of src to w in the compiled line format.
// It returns the number of entries written.
func Compile(ctx context.Context, src Source, w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	for e, err := range src.Entries(ctx) {
		if err != nil {
			return n, err
		}
		if _, err := fmt.Fprintf(bw, "%s %s\n", e.Word, e.Pronunciation); err != nil {
			return n, fmt.Errorf("write entry: %w", err)
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("flush: %w", err)
	}
	return n, nil
}

// CompileFile compiles the dictionary at path into path+CompiledExt.
// The output is written to a temporary file and renamed into place, so a
// failed compilation never leaves a truncated dictionary behind.
func CompileFile(ctx context.Context, path string) (string, error) {
	out := path + CompiledExt

	tmp, err := os.CreateTemp(filepath.Dir(out), filepath.Base(out)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after rename

	if _, err := Compile(ctx, Open(path), tmp); err != nil {
		tmp.Close()
		return "", fmt.Errorf("compile %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), out); err != nil {
		return "", fmt.Errorf("rename compiled file: %w", err)
	}
	return out, nil
}
