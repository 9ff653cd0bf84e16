package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(string) (string, error) {
	return f.text, f.err
}

type panickyExtractor struct{}

func (panickyExtractor) ExtractText(string) (string, error) {
	panic("malformed document")
}

func TestWindowResultsShapeMatchesStreamingCase(t *testing.T) {
	m, err := NewMatcher("two", false)
	require.NoError(t, err)

	lines := []string{"one", "two", "three", "four", "five"}
	results := windowResults("doc.pdf", lines, m, 2)

	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, 2, r.LineNumber)
	assert.Equal(t, "two", r.Line)
	assert.Equal(t, []ContextLine{{Number: 1, Text: "one"}}, r.ContextBefore)
	assert.Equal(t, []ContextLine{
		{Number: 3, Text: "three"},
		{Number: 4, Text: "four"},
	}, r.ContextAfter)
}

func TestWindowResultsEdges(t *testing.T) {
	m, err := NewMatcher("x", false)
	require.NoError(t, err)

	// Matches on the first and last lines get one-sided windows.
	results := windowResults("d", []string{"x start", "mid", "x end"}, m, 2)
	require.Len(t, results, 2)

	assert.Empty(t, results[0].ContextBefore)
	assert.Len(t, results[0].ContextAfter, 2)
	assert.Len(t, results[1].ContextBefore, 2)
	assert.Empty(t, results[1].ContextAfter)
}

func TestWindowResultsSkipsEmptyLines(t *testing.T) {
	m, err := NewMatcher(".*", true)
	require.NoError(t, err)

	results := windowResults("d", []string{"a", "", "   ", "b"}, m, 0)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].LineNumber)
	assert.Equal(t, 4, results[1].LineNumber)
}

func TestSearchDocumentWithFakeExtractor(t *testing.T) {
	m, err := NewMatcher("hello", false)
	require.NoError(t, err)

	ex := &fakeExtractor{text: "one\nhello there\nthree\n"}
	results, err := searchDocument("doc.pdf", ex, m, 1)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].LineNumber)
	assert.Equal(t, "hello there", results[0].Line)
	assert.Equal(t, []ContextLine{{Number: 1, Text: "one"}}, results[0].ContextBefore)
	assert.Equal(t, []ContextLine{{Number: 3, Text: "three"}}, results[0].ContextAfter)
}

func TestSearchDocumentRecoversExtractorPanic(t *testing.T) {
	m, err := NewMatcher("hello", false)
	require.NoError(t, err)

	results, err := searchDocument("bad.pdf", panickyExtractor{}, m, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
	assert.Empty(t, results)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\r\nb"))
	assert.Empty(t, splitLines(""))
}
