package search

import "strings"

// sink turns the per-line event stream of one file into finalized
// SearchResults. It holds at most one pending match at a time: a match is
// not emitted until its after-context is complete, which happens when C
// further lines arrive, when the next match arrives (truncating the window),
// or at end of file.
type sink struct {
	path    string
	context int
	emit    func(SearchResult)

	// before is a bounded FIFO of the non-matching lines seen since the
	// last match, oldest first, never longer than context.
	before []ContextLine

	pending *SearchResult
	after   []ContextLine
}

func newSink(path string, contextLines int, emit func(SearchResult)) *sink {
	return &sink{
		path:    path,
		context: contextLines,
		emit:    emit,
	}
}

// OnMatch finalizes any pending match with the after-context gathered so
// far, then installs line as the new pending match with the current
// before-ring as its captured before-context.
func (s *sink) OnMatch(lineNum int, text string) {
	s.flush()

	r := SearchResult{
		Path:          s.path,
		LineNumber:    lineNum,
		Line:          strings.TrimSpace(text),
		ContextBefore: append([]ContextLine(nil), s.before...),
	}
	s.pending = &r
	s.before = s.before[:0]
	s.after = s.after[:0]
}

// OnContext records a non-matching line. The same line serves two roles: it
// extends the pending match's after-window (capped at context entries) and
// enters the before-ring for whatever match comes next.
func (s *sink) OnContext(lineNum int, text string) {
	if s.context == 0 {
		return
	}

	if s.pending != nil && len(s.after) < s.context {
		s.after = append(s.after, ContextLine{Number: lineNum, Text: text})
	}

	s.before = append(s.before, ContextLine{Number: lineNum, Text: text})
	if len(s.before) > s.context {
		s.before = s.before[1:]
	}
}

// OnFinish flushes the pending match at end of file; its after-context may
// be shorter than the window when the file ended first.
func (s *sink) OnFinish() {
	s.flush()
}

func (s *sink) flush() {
	if s.pending == nil {
		return
	}
	s.pending.ContextAfter = append([]ContextLine(nil), s.after...)
	s.emit(*s.pending)
	s.pending = nil
}
