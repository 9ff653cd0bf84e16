package search

import (
	"regexp"
	"strings"
)

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	htmlEntityRegex = regexp.MustCompile(`&[a-zA-Z0-9#]*;`)

	// Control characters other than newline and tab.
	controlCharRegex = regexp.MustCompile("[\x00-\x08\x0b-\x1f\x7f]")
	spaceRunRegex    = regexp.MustCompile(`[ \t]+`)
)

// stripHTMLTags flattens HTML to plain text: tags removed, common entities
// decoded, everything else entity-shaped replaced with a space.
func stripHTMLTags(html string) string {
	text := htmlTagRegex.ReplaceAllString(html, " ")

	text = htmlEntityRegex.ReplaceAllStringFunc(text, func(entity string) string {
		switch entity {
		case "&amp;":
			return "&"
		case "&lt;":
			return "<"
		case "&gt;":
			return ">"
		case "&quot;":
			return "\""
		case "&apos;":
			return "'"
		default:
			return " "
		}
	})

	return text
}

// stripXMLTags removes markup from zip-packaged document XML. Paragraph
// boundaries are approximated by closing block tags before stripping, so
// the result still splits into meaningful lines.
func stripXMLTags(xml string) string {
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "</text:p>", "\n")
	text := htmlTagRegex.ReplaceAllString(xml, " ")
	return cleanExtracted(text)
}

// cleanExtracted normalizes extracted document text without collapsing its
// line structure: control characters go, runs of spaces shrink to one, and
// trailing whitespace per line is dropped.
func cleanExtracted(text string) string {
	text = controlCharRegex.ReplaceAllString(text, "")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = spaceRunRegex.ReplaceAllString(line, " ")
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
