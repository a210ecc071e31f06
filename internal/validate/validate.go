// Package validate checks user-supplied documents, queries and search
// parameters before they reach the engine.
package validate

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxPDFBytes    = 100 << 20
	MinQueryLength = 3
	MaxQueryLength = 500
	MaxTopK        = 100
)

type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

func ok() Result { return Result{Valid: true} }

func invalid(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

// Err returns nil for a valid result and the message as an error otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("%s", r.Message)
}

// PDF checks that path names a readable PDF no larger than MaxPDFBytes.
func PDF(path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return invalid("file not found: %s", path)
		}
		return invalid("pdf validation failed: %v", err)
	}
	if !info.Mode().IsRegular() {
		return invalid("path is not a file: %s", path)
	}
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		return invalid("not a pdf file: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return invalid("pdf validation failed: %v", err)
	}
	defer f.Close()
	if r := PDFHeader(f); !r.Valid {
		return r
	}
	if info.Size() > MaxPDFBytes {
		return invalid("pdf file too large (max %d MB)", MaxPDFBytes>>20)
	}
	return ok()
}

// PDFHeader sniffs the content type of the first bytes of r.
func PDFHeader(r io.Reader) Result {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return invalid("pdf validation failed: %v", err)
	}
	if mime := http.DetectContentType(head[:n]); mime != "application/pdf" {
		return invalid("invalid pdf file type: %s", mime)
	}
	return ok()
}

var allowedQueryChars = regexp.MustCompile(`[\w\s\-.,?!]`)

// Query checks length bounds and that the query has usable characters.
func Query(q string) Result {
	if strings.TrimSpace(q) == "" {
		return invalid("query must not be empty")
	}
	n := utf8.RuneCountInString(q)
	if n < MinQueryLength {
		return invalid("query too short (min %d characters)", MinQueryLength)
	}
	if n > MaxQueryLength {
		return invalid("query too long (max %d characters)", MaxQueryLength)
	}
	if !allowedQueryChars.MatchString(q) {
		return invalid("query contains no valid characters")
	}
	return ok()
}

// TopK checks the number of requested matches.
func TopK(n int) Result {
	if n < 1 {
		return invalid("top_k must be at least 1")
	}
	if n > MaxTopK {
		return invalid("top_k must be at most %d", MaxTopK)
	}
	return ok()
}
