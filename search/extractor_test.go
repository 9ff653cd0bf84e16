package search

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRouting(t *testing.T) {
	reg := NewRegistry()

	for _, ext := range []string{".pdf", ".eml", ".mbox", ".msg", ".doc", ".docx", ".odt", ".rtf"} {
		_, ok := reg.Get(ext)
		assert.True(t, ok, ext)
	}
	_, ok := reg.Get(".PDF")
	assert.True(t, ok, "extension lookup is case-insensitive")

	for _, ext := range []string{".txt", ".md", ".html", ".go", ""} {
		_, ok := reg.Get(ext)
		assert.False(t, ok, "%q must take the line-scanning path", ext)
	}
}

func TestEMLExtractorPlainText(t *testing.T) {
	eml := "From: a@example.com\r\n" +
		"To: b@example.com\r\n" +
		"Subject: greetings\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"hello from the body\r\nsecond line\r\n"
	path := filepath.Join(t.TempDir(), "m.eml")
	require.NoError(t, os.WriteFile(path, []byte(eml), 0o644))

	text, err := (&EMLExtractor{}).ExtractText(path)
	require.NoError(t, err)
	assert.Contains(t, text, "hello from the body")
	assert.Contains(t, text, "second line")
}

func TestZipXMLExtractorDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document><w:body><w:p><w:r><w:t>first paragraph</w:t></w:r></w:p><w:p><w:r><w:t>second paragraph</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	text, err := (&ZipXMLExtractor{Entry: "word/document.xml"}).ExtractText(path)
	require.NoError(t, err)

	lines := splitLines(text)
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[0], "first paragraph")
	assert.Contains(t, lines[1], "second paragraph")
}

func TestZipXMLExtractorRejectsNonArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := (&ZipXMLExtractor{Entry: "word/document.xml"}).ExtractText(path)
	require.Error(t, err)
}

func TestRTFExtractor(t *testing.T) {
	rtf := `{\rtf1\ansi\deff0 {\fonttbl{\f0 Times;}}\f0\fs24 plain rtf body\par}`
	path := filepath.Join(t.TempDir(), "r.rtf")
	require.NoError(t, os.WriteFile(path, []byte(rtf), 0o644))

	text, err := (&RTFExtractor{}).ExtractText(path)
	require.NoError(t, err)
	assert.Contains(t, text, "plain rtf body")
	assert.NotContains(t, text, `\rtf1`)
	assert.NotContains(t, text, "{")
}

func TestPDFExtractorFailsCleanlyOnGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.pdf")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a pdf"), 0o644))

	_, err := (&PDFExtractor{Tool: "pdftotext"}).ExtractText(path)
	require.Error(t, err)
}

func TestCompoundFileExtractorRejectsPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.msg")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o644))

	_, err := (&CompoundFileExtractor{}).ExtractText(path)
	require.Error(t, err)
}

func TestPrintableRuns(t *testing.T) {
	data := []byte("\x01\x02real words here\x00\x03ok!?\xff")
	out := printableRuns(data)
	assert.Contains(t, out, "real words here")
	assert.Contains(t, out, "ok!?")
	assert.NotContains(t, out, "\x00")
}

func TestStripHTMLTags(t *testing.T) {
	out := stripHTMLTags(`<p>a &amp; b</p><br/>`)
	assert.Contains(t, out, "a & b")
	assert.NotContains(t, out, "<p>")
}
