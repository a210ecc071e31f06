// Package pdftext turns PDF documents into plain text for the answer engine.
package pdftext

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrNoExtractableText = errors.New("no extractable text found in PDF")

type Document struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
}

// ExtractFile reads the PDF at path.
func ExtractFile(path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	return extract(r)
}

// Extract reads a PDF of the given size from ra.
func Extract(ra io.ReaderAt, size int64) (Document, error) {
	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return Document{}, fmt.Errorf("open pdf: %w", err)
	}
	return extract(r)
}

func extract(r *pdf.Reader) (Document, error) {
	reader, err := r.GetPlainText()
	if err != nil {
		return Document{}, fmt.Errorf("extract pdf text: %w", err)
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, reader); err != nil {
		return Document{}, fmt.Errorf("read extracted text: %w", err)
	}
	text := Sanitize(buf.String())
	if text == "" {
		return Document{}, ErrNoExtractableText
	}
	return Document{Text: text, Pages: r.NumPage()}, nil
}

// Sanitize drops NUL bytes and other control characters that some PDF
// extractors emit, keeping newlines and tabs.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, ch := range s {
		if ch == '\n' || ch == '\r' || ch == '\t' {
			b.WriteRune(ch)
			continue
		}
		if ch < 0x20 || ch == 0x7f {
			continue
		}
		b.WriteRune(ch)
	}
	return strings.TrimSpace(b.String())
}
