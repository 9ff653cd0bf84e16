package search

import (
	"bufio"
	"bytes"
	"os"
)

// binarySentinel marks a file as binary when found on any line, mirroring
// the classic grep heuristic.
const binarySentinel = 0x00

// scanFile streams one plain file line by line, driving a fresh sink with
// match/context/finish events. Results surface through emit in ascending
// line order. Unless searchBinary is set, scanning quits at the first NUL
// byte and any still-pending match is dropped with it.
func scanFile(path string, m Matcher, contextLines int, searchBinary bool, emit func(SearchResult)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	snk := newSink(path, contextLines, emit)

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Bytes()

		if !searchBinary && bytes.IndexByte(line, binarySentinel) >= 0 {
			return nil
		}

		if m.Match(line) {
			snk.OnMatch(lineNum, string(line))
		} else {
			snk.OnContext(lineNum, string(line))
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	snk.OnFinish()
	return nil
}
