package search

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/emersion/go-mbox"
	"github.com/jhillyerd/enmime"
	"github.com/ledongthuc/pdf"
	"github.com/richardlehane/mscfb"
	"golang.org/x/text/encoding/unicode"

	"find-text/config"
	ftpdf "find-text/search/pdf"
)

// Extractor converts one container document into plain text. Implementations
// may be invoked concurrently from multiple workers.
type Extractor interface {
	ExtractText(path string) (string, error)
}

// Registry maps container-format extensions (with leading dot, lower case)
// to their extractors. Extensions absent from the registry take the
// line-scanning path instead.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry builds the registry of built-in extractors.
func NewRegistry() *Registry {
	r := &Registry{extractors: make(map[string]Extractor)}

	r.extractors[".pdf"] = &PDFExtractor{Tool: config.PDFTool}

	// Email formats
	r.extractors[".eml"] = &EMLExtractor{}
	r.extractors[".mbox"] = &MBOXExtractor{}
	r.extractors[".msg"] = &CompoundFileExtractor{}

	// Office document formats
	r.extractors[".doc"] = &CompoundFileExtractor{}
	r.extractors[".docx"] = &ZipXMLExtractor{Entry: "word/document.xml"}
	r.extractors[".odt"] = &ZipXMLExtractor{Entry: "content.xml"}

	r.extractors[".rtf"] = &RTFExtractor{}

	return r
}

// Get returns the extractor registered for an extension, if any.
func (r *Registry) Get(ext string) (Extractor, bool) {
	ex, ok := r.extractors[strings.ToLower(ext)]
	return ex, ok
}

// PDFExtractor shells out to the external converter, writing to stdout with
// the quiet flag so library warnings never pollute the error stream. When
// the tool is missing or fails, extraction falls back to in-process readers
// before giving up on the file.
type PDFExtractor struct {
	Tool string
}

// ExtractText implements Extractor for PDF files.
func (e *PDFExtractor) ExtractText(path string) (string, error) {
	out, err := exec.Command(e.Tool, path, "-", "-q").Output()
	if err == nil {
		return string(out), nil
	}

	// Capped content-stream extraction, only present in pdfcpu-tagged builds.
	if text, ferr := ftpdf.ExtractAllTextCapped(path, 0, 0); ferr == nil {
		return text, nil
	}

	text, ferr := extractPDFInProcess(path)
	if ferr != nil {
		return "", fmt.Errorf("%s failed (%v) and fallback extraction failed: %w", e.Tool, err, ferr)
	}
	return text, nil
}

// extractPDFInProcess reads the PDF with the pure-Go reader. The library
// panics on some malformed documents, so every call into it is guarded.
func extractPDFInProcess(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panicked: %v", r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return "", err
	}

	pages := 0
	func() {
		defer func() { _ = recover() }()
		pages = reader.NumPage()
	}()
	if pages <= 0 {
		return "", fmt.Errorf("no readable pages")
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		func() {
			defer func() { _ = recover() }()
			page := reader.Page(i)
			if page.V.IsNull() {
				return
			}
			for _, item := range page.Content().Text {
				b.WriteString(item.S)
				b.WriteByte(' ')
			}
			b.WriteByte('\n')
		}()
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("no text extracted")
	}
	return out, nil
}

// EMLExtractor parses MIME messages, preferring the plain-text part and
// falling back to tag-stripped HTML.
type EMLExtractor struct{}

// ExtractText implements Extractor for EML files.
func (e *EMLExtractor) ExtractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return extractEML(data)
}

func extractEML(data []byte) (string, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse MIME message: %w", err)
	}

	text := env.Text
	if text == "" && env.HTML != "" {
		text = stripHTMLTags(env.HTML)
	}
	return text, nil
}

// MBOXExtractor concatenates the extracted text of every message in the
// mailbox, one per paragraph. Unreadable messages are skipped.
type MBOXExtractor struct{}

// ExtractText implements Extractor for MBOX files.
func (e *MBOXExtractor) ExtractText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader := mbox.NewReader(f)
	var b strings.Builder

	for {
		msg, err := reader.NextMessage()
		if err != nil {
			break
		}
		raw, err := io.ReadAll(msg)
		if err != nil {
			continue
		}
		text, err := extractEML(raw)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	return b.String(), nil
}

// compoundFileBudget caps how many stream bytes a single compound file may
// contribute, keeping pathological documents from ballooning memory.
const compoundFileBudget = 8 * 1024 * 1024

// CompoundFileExtractor reads OLE compound files (.msg Outlook messages and
// legacy .doc documents), pulling text from the streams that carry body
// content. Message bodies with the 001F suffix are UTF-16LE.
type CompoundFileExtractor struct{}

// ExtractText implements Extractor for MSG and DOC files.
func (e *CompoundFileExtractor) ExtractText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	cf, err := mscfb.New(f)
	if err != nil {
		return "", fmt.Errorf("open compound file: %w", err)
	}

	utf16le := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

	var b strings.Builder
	var total int64

	for ent, err := cf.Next(); err == nil; ent, err = cf.Next() {
		if total >= compoundFileBudget {
			break
		}
		if !isTextStream(ent.Name) {
			continue
		}

		size := ent.Size
		if size <= 0 {
			continue
		}
		if size > compoundFileBudget-total {
			size = compoundFileBudget - total
		}

		data := make([]byte, size)
		n, _ := io.ReadFull(ent, data)
		if n == 0 {
			continue
		}
		data = data[:n]
		total += int64(n)

		var text string
		if strings.HasSuffix(ent.Name, "001F") {
			decoded, derr := utf16le.Bytes(data)
			if derr != nil {
				continue
			}
			text = string(decoded)
		} else {
			text = printableRuns(data)
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("no text streams found")
	}
	return b.String(), nil
}

// isTextStream selects the compound-file streams that commonly carry body
// text: Outlook string properties (body 1000, subject 0037) and the Word
// main document stream.
func isTextStream(name string) bool {
	if name == "WordDocument" {
		return true
	}
	if strings.HasPrefix(name, "__substg1.0_1000") || strings.HasPrefix(name, "__substg1.0_0037") {
		return true
	}
	return false
}

// printableRuns keeps runs of printable ASCII from a binary stream,
// separating them with spaces. Runs shorter than four bytes are noise.
func printableRuns(data []byte) string {
	var b strings.Builder
	runStart := -1

	flush := func(end int) {
		if runStart >= 0 && end-runStart >= 4 {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.Write(data[runStart:end])
		}
		runStart = -1
	}

	for i, c := range data {
		if c >= 0x20 && c < 0x7f {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		flush(i)
	}
	flush(len(data))

	return b.String()
}

// ZipXMLExtractor handles the zip-packaged XML document formats (DOCX, ODT):
// locate the body entry and strip its markup.
type ZipXMLExtractor struct {
	Entry string
}

// ExtractText implements Extractor for DOCX and ODT files.
func (e *ZipXMLExtractor) ExtractText(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	for _, file := range zr.File {
		if file.Name != e.Entry {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		return stripXMLTags(string(content)), nil
	}

	return "", fmt.Errorf("no %s entry in archive", e.Entry)
}

var rtfControlRegex = regexp.MustCompile(`\\[a-z]+-?\d*[ ]?`)

// RTFExtractor strips RTF control words and group braces.
type RTFExtractor struct{}

// ExtractText implements Extractor for RTF files.
func (e *RTFExtractor) ExtractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	text := rtfControlRegex.ReplaceAllString(string(data), "")
	text = strings.ReplaceAll(text, "{", "")
	text = strings.ReplaceAll(text, "}", "")
	return text, nil
}
