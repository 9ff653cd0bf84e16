package search

import (
	"fmt"
	"strings"
)

// searchDocument handles one container-format file: extract its text in
// full, then compute context windows by slicing the materialized lines.
// With every line known up front there is no deferred-emission ambiguity,
// so the streaming sink is not involved. The extractor call is a fallible
// boundary: any error, including a panic inside an extraction library on a
// malformed document, turns into "no matches for this file".
func searchDocument(path string, ex Extractor, m Matcher, contextLines int) ([]SearchResult, error) {
	text, err := extractGuarded(ex, path)
	if err != nil {
		return nil, err
	}
	return windowResults(path, splitLines(cleanExtracted(text)), m, contextLines), nil
}

// extractGuarded shields the pipeline from faulty extractors. Malformed
// documents have crashed more than one parsing library; a panic here is a
// per-file failure like any other.
func extractGuarded(ex Extractor, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extractor panicked: %v", r)
		}
	}()
	return ex.ExtractText(path)
}

// splitLines materializes extracted text as a line array, tolerating CRLF
// endings and dropping a trailing newline's empty remnant.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// windowResults scans materialized lines for matches and attaches up to
// contextLines of surrounding context on each side, fewer near the edges of
// the document. Empty lines never match; matched lines are reported trimmed,
// as in the streaming path.
func windowResults(path string, lines []string, m Matcher, contextLines int) []SearchResult {
	var out []SearchResult

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !m.MatchString(trimmed) {
			continue
		}

		r := SearchResult{
			Path:       path,
			LineNumber: i + 1,
			Line:       trimmed,
		}

		lo := i - contextLines
		if lo < 0 {
			lo = 0
		}
		for j := lo; j < i; j++ {
			r.ContextBefore = append(r.ContextBefore, ContextLine{Number: j + 1, Text: lines[j]})
		}

		hi := i + contextLines
		if hi > len(lines)-1 {
			hi = len(lines) - 1
		}
		for j := i + 1; j <= hi; j++ {
			r.ContextAfter = append(r.ContextAfter, ContextLine{Number: j + 1, Text: lines[j]})
		}

		out = append(out, r)
	}

	return out
}
