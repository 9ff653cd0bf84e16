package search

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"find-text/config"
)

// walker enumerates the tree under the search root, filters entries by
// filename glob, and feeds accepted entries into the work queue. Traversal
// fans out across subdirectories; the cancellation token is polled before
// every entry so an in-flight subtree winds down instead of completing.
type walker struct {
	patterns   []glob.Glob
	skipHidden bool
	quit       *CancelToken
	log        *slog.Logger
}

// compilePatterns compiles the configured globs. A malformed pattern is not
// a configuration error: it is logged and ignored, and the remaining
// alternatives still apply.
func compilePatterns(patterns []string, log *slog.Logger) []glob.Glob {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			log.Warn("ignoring malformed file pattern", "pattern", p, "error", err)
			continue
		}
		compiled = append(compiled, g)
	}
	return compiled
}

// matchesAny reports whether any configured pattern matches the file name.
// Patterns are alternatives: one hit is enough.
func (w *walker) matchesAny(name string) bool {
	for _, g := range w.patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// run walks the root and closes out when enumeration is finished or
// cancellation was observed. It is the sole sender on out.
func (w *walker) run(root string, out chan<- FileEntry) {
	defer close(out)

	// A root that is itself a file is a single-entry walk.
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		if w.matchesAny(filepath.Base(root)) && !w.quit.IsSet() {
			out <- FileEntry{Path: root, Regular: info.Mode().IsRegular()}
		}
		return
	}

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())

	w.walkDir(root, g, out)
	g.Wait()
}

// walkDir processes one directory, spawning subdirectory walks onto the
// group when a slot is free and recursing inline otherwise. TryGo keeps the
// nested fan-out from deadlocking against the group limit.
func (w *walker) walkDir(dir string, g *errgroup.Group, out chan<- FileEntry) {
	if w.quit.IsSet() {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.log.Warn("cannot read directory", "path", dir, "error", err)
		return
	}

	for _, ent := range entries {
		if w.quit.IsSet() {
			return
		}

		name := ent.Name()
		if ent.IsDir() {
			if w.skipHidden && config.ShouldSkipDirectory(name) {
				continue
			}
			sub := filepath.Join(dir, name)
			if !g.TryGo(func() error {
				w.walkDir(sub, g, out)
				return nil
			}) {
				w.walkDir(sub, g, out)
			}
			continue
		}

		if w.skipHidden && config.IsHiddenFile(name) {
			continue
		}
		if !w.matchesAny(name) {
			continue
		}

		out <- FileEntry{
			Path:    filepath.Join(dir, name),
			Regular: ent.Type().IsRegular(),
		}
	}
}
