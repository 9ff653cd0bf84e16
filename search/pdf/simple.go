//go:build pdfcpu

package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Default caps for PDF text extraction.
const (
	DefaultPageCap    = 200        // maximum number of pages to process
	DefaultPerPageCap = 128 * 1024 // 128 KiB per-page text cap
)

// asciiNormalize collapses non-printable or non-ASCII runes to space and
// normalizes whitespace within the page.
func asciiNormalize(s string) string {
	ascii := strings.Map(func(r rune) rune {
		if r > 127 || !unicode.IsPrint(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(ascii), " ")
}

// parseStringLiterals pulls text out of raw PDF content streams by
// collecting balanced parenthesized string literals, honoring backslash
// escapes, capped at maxOut bytes.
func parseStringLiterals(s string, maxOut int) string {
	var out strings.Builder
	depth := 0
	escape := false
	in := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if !in {
			if c == '(' {
				in = true
				depth = 1
			}
			continue
		}
		if escape {
			out.WriteByte(c)
			escape = false
			if out.Len() >= maxOut {
				return out.String()
			}
			continue
		}
		switch c {
		case '\\':
			escape = true
		case '(':
			depth++
			out.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				in = false
				out.WriteByte(' ')
			} else {
				out.WriteByte(c)
			}
		default:
			out.WriteByte(c)
		}
		if out.Len() >= maxOut {
			return out.String()
		}
	}
	return out.String()
}

// ExtractAllTextCapped extracts text from a PDF with pdfcpu, returning one
// ASCII-normalized line per page. Use pageCap/perPageCap <= 0 for defaults.
// Only compiled in builds with the "pdfcpu" tag.
func ExtractAllTextCapped(path string, pageCap, perPageCap int) (text string, err error) {
	if pageCap <= 0 {
		pageCap = DefaultPageCap
	}
	if perPageCap <= 0 {
		perPageCap = DefaultPerPageCap
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdfcpu panicked: %v", r)
		}
	}()

	tmpDir, err := os.MkdirTemp("", "find-text-pdfcpu-*")
	if err != nil {
		return "", fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := api.ExtractContentFile(path, tmpDir, nil, nil); err != nil {
		return "", fmt.Errorf("extract content: %w", err)
	}

	ents, err := os.ReadDir(tmpDir)
	if err != nil {
		return "", err
	}
	sort.Slice(ents, func(i, j int) bool { return ents[i].Name() < ents[j].Name() })

	var b strings.Builder
	pages := 0
	for _, de := range ents {
		if de.IsDir() {
			continue
		}
		if pages >= pageCap {
			break
		}
		data, _ := os.ReadFile(filepath.Join(tmpDir, de.Name()))
		if len(data) == 0 {
			continue
		}

		txt := asciiNormalize(parseStringLiterals(string(data), perPageCap))
		if len(txt) > perPageCap {
			txt = txt[:perPageCap]
		}
		if txt == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(txt)
		pages++
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("no text extracted")
	}
	return b.String(), nil
}
