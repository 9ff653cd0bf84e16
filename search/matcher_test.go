package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherLiteralEscapesMetacharacters(t *testing.T) {
	m, err := NewMatcher("a.b", false)
	require.NoError(t, err)

	assert.True(t, m.MatchString("xx a.b yy"))
	assert.False(t, m.MatchString("axb"))
}

func TestMatcherRegexMode(t *testing.T) {
	m, err := NewMatcher("a.b", true)
	require.NoError(t, err)

	assert.True(t, m.MatchString("a.b"))
	assert.True(t, m.MatchString("axb"))
	assert.False(t, m.MatchString("ab"))
}

func TestMatcherInvalidRegexFailsFast(t *testing.T) {
	_, err := NewMatcher("fo[o", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid search query")
}

func TestMatcherInvalidSyntaxIsFineInLiteralMode(t *testing.T) {
	m, err := NewMatcher("fo[o", false)
	require.NoError(t, err)
	assert.True(t, m.MatchString("fo[o bar"))
}

func TestMatcherBytes(t *testing.T) {
	m, err := NewMatcher("needle", false)
	require.NoError(t, err)
	assert.True(t, m.Match([]byte("hay needle hay")))
	assert.False(t, m.Match([]byte("just hay")))
}
