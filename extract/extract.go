// Package extract pulls plain text out of document files. Paragraph
// boundaries are represented by a single line feed so that character offsets
// computed against the returned string stay valid wherever it is reused.
package extract

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// blankRuns matches any run of newlines (and blank space between them) that
// separates two paragraphs.
var blankRuns = regexp.MustCompile(`\n[ \t]*(\n[ \t]*)*`)

// Text extracts the full text of a document, dispatching on file extension.
// Supported: .txt, .pdf, .html, .htm.
func Text(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return fromText(path)
	case ".pdf":
		return fromPDF(path)
	case ".html", ".htm":
		return fromHTML(path)
	default:
		return "", fmt.Errorf("unsupported document format %q", filepath.Ext(path))
	}
}

// Supported reports whether Text can handle the file's extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".pdf", ".html", ".htm":
		return true
	}
	return false
}

// normalize collapses line endings and blank-line runs so that exactly one
// '\n' separates paragraphs, then trims surrounding whitespace.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = blankRuns.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
