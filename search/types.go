package search

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// SearchConfig describes one search invocation. It is immutable for the
// duration of the search; workers only ever read it.
type SearchConfig struct {
	// Paths to search under. The first entry is the effective search root;
	// an empty list means the current directory.
	Paths []string

	// Patterns are filename globs (e.g. "*.txt"). A file is accepted when
	// ANY pattern matches its base name.
	Patterns []string

	// Query is the text to search for. Interpreted as a regular expression
	// when UseRegex is set, otherwise matched literally.
	Query    string
	UseRegex bool

	// ContextLines is the number of context lines captured before and after
	// each match (symmetric window).
	ContextLines int

	// NumWorkers is the worker pool size. Zero means one worker per CPU.
	NumWorkers int

	// SearchBinary disables the binary-content skip (NUL sentinel detection).
	SearchBinary bool

	// SkipHidden restores hidden-file and well-known-directory filtering
	// (.git, node_modules, ...). The default searches everything, matching
	// the current product behavior; flip this once product decides whether
	// the everything-included default is intentional.
	SkipHidden bool

	// Verbose enables per-file diagnostics on stderr.
	Verbose bool
}

// SearchPath returns the effective search root: the first configured path,
// or the current directory when none was given.
func (c SearchConfig) SearchPath() string {
	if len(c.Paths) > 0 && c.Paths[0] != "" {
		return c.Paths[0]
	}
	return "."
}

// logger returns a stderr logger in verbose mode and a discard logger
// otherwise. The engine never writes diagnostics to stdout.
func (c SearchConfig) logger() *slog.Logger {
	if c.Verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ContextLine is one line of context surrounding a match.
type ContextLine struct {
	Number int
	Text   string
}

// SearchResult is a single matched line together with its bounded context
// window. Immutable once emitted.
type SearchResult struct {
	Path          string
	LineNumber    int
	Line          string
	ContextBefore []ContextLine
	ContextAfter  []ContextLine
}

// FileEntry is one unit of work produced by the walker and consumed by
// exactly one worker.
type FileEntry struct {
	Path    string
	Regular bool
}

// CancelToken is a shared cooperative cancellation flag. Setting it is
// idempotent; the walker and every worker poll it between entries, so a file
// already mid-scan runs to completion before the stop takes effect.
type CancelToken struct {
	flag atomic.Bool
}

// Set requests cancellation.
func (t *CancelToken) Set() { t.flag.Store(true) }

// IsSet reports whether cancellation was requested.
func (t *CancelToken) IsSet() bool { return t.flag.Load() }
