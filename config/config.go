// Package config holds the static tables and defaults shared by the search
// engine and its front-ends.
package config

import "strings"

// DefaultPattern matches every file name.
const DefaultPattern = "*"

// DefaultContextLines is the context window used when none is requested.
const DefaultContextLines = 0

// PDFTool is the PATH-resident converter used for PDF text extraction.
const PDFTool = "pdftotext"

// skipDirs lists directories excluded from traversal when hidden-file
// filtering is enabled. The default search visits them all.
var skipDirs = map[string]bool{
	".git":          true,
	".svn":          true,
	".hg":           true,
	"node_modules":  true,
	".vscode":       true,
	".idea":         true,
	"__pycache__":   true,
	".pytest_cache": true,
	"vendor":        true,
	"target":        true,
	"build":         true,
	"dist":          true,
	".next":         true,
	".nuxt":         true,
	"coverage":      true,
}

// ShouldSkipDirectory reports whether a directory is excluded under
// hidden-file filtering.
func ShouldSkipDirectory(name string) bool {
	return skipDirs[name] || strings.HasPrefix(name, ".")
}

// IsHiddenFile reports whether a file name is hidden by dotfile convention.
func IsHiddenFile(name string) bool {
	return strings.HasPrefix(name, ".")
}

// SplitPatterns turns a comma-separated pattern list into its independent
// alternatives, dropping empty segments.
func SplitPatterns(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
