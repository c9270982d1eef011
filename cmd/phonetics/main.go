// Command phonetics answers phonetic queries against a CMU pronunciation
// dictionary from the command line.
//
// Flags:
//
//	-regex        phonetic pattern to match whole pronunciations against
//	-lookup       print the pronunciations of a word, one per line
//	-rhyme        print the words that rhyme with a word
//	-vowel-match  print the words sharing a word's vowel sequence
//	-compile      compile the dictionary to DICT.phx and query the result
//	-dict         dictionary path (default: ./cmudict.txt.phx, then ./cmudict.txt)
//	-workers      goroutines used to scan the dictionary
//	-log-level    debug, info, warn or error
//
// Exit codes: 0 = success, 1 = error, 2 = usage error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/heartmarshall/myenglish-phonetics/internal/app"
	"github.com/heartmarshall/myenglish-phonetics/internal/config"
	"github.com/heartmarshall/myenglish-phonetics/internal/dictionary"
	"github.com/heartmarshall/myenglish-phonetics/internal/pattern"
	"github.com/heartmarshall/myenglish-phonetics/internal/phoneme"
	"github.com/heartmarshall/myenglish-phonetics/internal/service/search"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

type options struct {
	regex      string
	lookup     string
	rhyme      string
	vowelMatch string
	compile    bool
	dict       string
	workers    int
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, err)
		}
		return exitUsage
	}

	logger := app.NewLogger(config.LogConfig{Level: opts.logLevel, Format: "text"})

	if err := execute(ctx, opts, stdout, logger); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitError
	}
	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("phonetics", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.regex, "regex", "", "phonetic pattern to match, e.g. \"# AE T\"")
	fs.StringVar(&opts.lookup, "lookup", "", "look up the pronunciations of a word")
	fs.StringVar(&opts.rhyme, "rhyme", "", "find words which rhyme with a word")
	fs.StringVar(&opts.vowelMatch, "vowel-match", "", "find words with a matching vowel pattern")
	fs.BoolVar(&opts.compile, "compile", false, "compile the dictionary to speed up later queries")
	fs.StringVar(&opts.dict, "dict", "", "dictionary path (text .txt or compiled)")
	fs.IntVar(&opts.workers, "workers", runtime.NumCPU(), "goroutines used to scan the dictionary")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintln(out, "Usage: phonetics [-dict PATH] [-compile] -regex PATTERN | -lookup WORD | -rhyme WORD | -vowel-match WORD")
		fs.PrintDefaults()
		fmt.Fprintln(out, "\nPattern wildcards: # any consonant, @ any vowel, % any syllable.")
		fmt.Fprintln(out, "Phonemes:", strings.Join(phoneme.Symbols(), " "))
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	actions := 0
	for _, v := range []string{opts.regex, opts.lookup, opts.rhyme, opts.vowelMatch} {
		if v != "" {
			actions++
		}
	}
	switch {
	case actions > 1:
		return opts, errors.New("choose only one action: -regex, -lookup, -rhyme or -vowel-match")
	case actions == 0 && !opts.compile:
		fs.Usage()
		return opts, errUsage
	}

	return opts, nil
}

func execute(ctx context.Context, opts options, stdout io.Writer, logger *slog.Logger) error {
	path := opts.dict
	if path == "" {
		found, err := dictionary.FindDefault(".")
		if err != nil {
			return err
		}
		path = found
	}

	if opts.compile {
		compiled, err := dictionary.CompileFile(ctx, path)
		if err != nil {
			return err
		}
		logger.Info("dictionary compiled", slog.String("path", compiled))
		path = compiled
	}

	compiler, err := pattern.NewCompiler(0)
	if err != nil {
		return err
	}
	svc := search.NewService(logger, dictionary.Open(path), compiler, search.Options{Workers: opts.workers})

	var words []string
	switch {
	case opts.lookup != "":
		prons, err := svc.Lookup(ctx, opts.lookup)
		if err != nil {
			return err
		}
		return printPronunciations(stdout, prons)
	case opts.regex != "":
		words, err = svc.Match(ctx, opts.regex)
	case opts.rhyme != "":
		words, err = svc.Rhymes(ctx, opts.rhyme)
	case opts.vowelMatch != "":
		words, err = svc.VowelMatches(ctx, opts.vowelMatch)
	}
	if err != nil {
		return err
	}
	return printLines(stdout, words)
}

func printPronunciations(w io.Writer, prons [][]string) error {
	lines := make([]string, 0, len(prons))
	for _, p := range prons {
		lines = append(lines, strings.Join(p, " "))
	}
	return printLines(w, lines)
}

func printLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
