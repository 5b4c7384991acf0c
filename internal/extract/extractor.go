// Package extract pulls plain text out of contact form attachments so each recorded
// inquiry carries a short readable preview.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/insightexus/site/pkg/utils"
)

// ErrUnsupported is returned for attachment types with no text extractor.
var ErrUnsupported = errors.New("unsupported attachment type")

// Extractor extracts plain text from attachment bytes.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Supported reports whether filename has an extension the extractor understands.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".xlsx", ".rtf", ".odt", ".txt", ".md", ".csv":
		return true
	}
	return false
}

// ExtractBytes extracts text from content based on the given extension, with every
// whitespace run collapsed to one space. ext should include the leading dot (e.g. ".pdf").
// When maxChars is positive, extraction stops once more than maxChars runes are
// collected; pages, sheets and runs past that point are never read.
func (e *Extractor) ExtractBytes(content []byte, ext string, maxChars int) (string, error) {
	buf := newTextBuffer(maxChars)
	var err error
	switch strings.ToLower(ext) {
	case ".pdf":
		err = extractPDF(content, buf)
	case ".docx":
		err = extractDOCX(content, buf)
	case ".xlsx":
		err = extractExcel(content, buf)
	case ".rtf", ".odt":
		err = extractWithCat(content, buf)
	case ".txt", ".md", ".csv":
		extractPlain(content, buf)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Preview extracts the text of an attachment named filename, cut to maxChars runes
// with "..." appended when more text followed.
func (e *Extractor) Preview(content []byte, filename string, maxChars int) (string, error) {
	text, err := e.ExtractBytes(content, filepath.Ext(filename), maxChars)
	if err != nil {
		return "", err
	}
	return utils.Truncate(text, maxChars), nil
}

// textBuffer collects extracted text with whitespace collapsed. It holds at most
// limit+1 runes so Truncate can still tell the text was cut. limit <= 0 means no cap.
type textBuffer struct {
	b       strings.Builder
	limit   int
	runes   int
	pending bool
}

func newTextBuffer(limit int) *textBuffer {
	return &textBuffer{limit: limit}
}

// WriteString appends s and reports whether the buffer takes more text.
func (t *textBuffer) WriteString(s string) bool {
	for _, r := range s {
		if t.Full() {
			return false
		}
		if unicode.IsSpace(r) {
			t.Break()
			continue
		}
		if t.pending {
			t.pending = false
			t.b.WriteByte(' ')
			t.runes++
			if t.Full() {
				return false
			}
		}
		t.b.WriteRune(r)
		t.runes++
	}
	return !t.Full()
}

// Break separates the next write from the text so far, as whitespace would.
func (t *textBuffer) Break() {
	t.pending = t.runes > 0
}

// Full reports whether the buffer reached its cap.
func (t *textBuffer) Full() bool {
	return t.limit > 0 && t.runes > t.limit
}

func (t *textBuffer) String() string {
	return t.b.String()
}
