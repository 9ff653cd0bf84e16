package search

import (
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// ResolveWorkers turns the configured worker count into a concrete pool
// size: zero means one worker per CPU, with a floor of two when the runtime
// cannot report parallelism.
func ResolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	if p := runtime.NumCPU(); p > 0 {
		return p
	}
	return 2
}

// Search starts a search and returns the receiving end of its result
// sequence. Construction is non-blocking: the walker, the worker pool, and
// the channel plumbing are all spawned here and the caller drains results at
// its own pace. The channel is closed once the walker has finished
// enumerating and every worker has exited. The only error returned up front
// is an invalid query; everything that goes wrong later is per-file and
// recovered.
//
// Results from different files interleave in no particular order; within one
// file they arrive in ascending line order.
func Search(cfg SearchConfig, quit *CancelToken) (<-chan SearchResult, error) {
	m, err := NewMatcher(cfg.Query, cfg.UseRegex)
	if err != nil {
		return nil, err
	}

	if quit == nil {
		quit = &CancelToken{}
	}

	log := cfg.logger()
	workers := ResolveWorkers(cfg.NumWorkers)
	log.Info("starting search",
		"root", cfg.SearchPath(),
		"patterns", cfg.Patterns,
		"workers", workers,
	)

	workIn, workOut := unbounded[FileEntry]()
	resultIn, resultOut := unbounded[SearchResult]()

	w := &walker{
		patterns:   compilePatterns(cfg.Patterns, log),
		skipHidden: cfg.SkipHidden,
		quit:       quit,
		log:        log,
	}
	go w.run(cfg.SearchPath(), workIn)

	reg := NewRegistry()
	emit := func(r SearchResult) { resultIn <- r }

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runWorker(workOut, emit, m, reg, cfg, quit, log)
		}()
	}

	go func() {
		wg.Wait()
		close(resultIn)
	}()

	return resultOut, nil
}

// SearchFiles runs a search to completion and returns the materialized
// results. It blocks until the walk finishes or cancellation drains the
// pipeline.
func SearchFiles(cfg SearchConfig, quit *CancelToken) ([]SearchResult, error) {
	ch, err := Search(cfg, quit)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	for r := range ch {
		results = append(results, r)
	}
	return results, nil
}

// runWorker is one pool member: it owns each received entry for its
// lifetime, routes container formats to the extraction path and everything
// else to line scanning, and stops once the queue is drained or cancellation
// is observed. Per-file failures are logged and skipped, never propagated.
func runWorker(jobs <-chan FileEntry, emit func(SearchResult), m Matcher, reg *Registry, cfg SearchConfig, quit *CancelToken, log *slog.Logger) {
	for entry := range jobs {
		if quit.IsSet() {
			for range jobs {
				// Drain without processing so the queue goroutine can exit.
			}
			return
		}

		ext := strings.ToLower(filepath.Ext(entry.Path))
		if ex, ok := reg.Get(ext); ok {
			results, err := searchDocument(entry.Path, ex, m, cfg.ContextLines)
			if err != nil {
				log.Warn("document extraction failed", "path", entry.Path, "error", err)
				continue
			}
			for _, r := range results {
				emit(r)
			}
			continue
		}

		if !entry.Regular {
			continue
		}

		if err := scanFile(entry.Path, m, cfg.ContextLines, cfg.SearchBinary, emit); err != nil {
			log.Warn("cannot search file", "path", entry.Path, "error", err)
		}
	}
}
