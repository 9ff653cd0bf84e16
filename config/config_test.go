package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPatterns(t *testing.T) {
	assert.Equal(t, []string{"*.txt"}, SplitPatterns("*.txt"))
	assert.Equal(t, []string{"*.txt", "*.md"}, SplitPatterns("*.txt,*.md"))
	assert.Equal(t, []string{"*.txt", "*.md"}, SplitPatterns(" *.txt , *.md "))
	assert.Nil(t, SplitPatterns(""))
	assert.Nil(t, SplitPatterns(" , "))
}

func TestShouldSkipDirectory(t *testing.T) {
	assert.True(t, ShouldSkipDirectory(".git"))
	assert.True(t, ShouldSkipDirectory("node_modules"))
	assert.True(t, ShouldSkipDirectory(".anything-hidden"))
	assert.False(t, ShouldSkipDirectory("src"))
	assert.False(t, ShouldSkipDirectory("docs"))
}

func TestIsHiddenFile(t *testing.T) {
	assert.True(t, IsHiddenFile(".env"))
	assert.False(t, IsHiddenFile("env"))
}
