// Package selection normalizes the text handed to the generation pipeline.
// Hosts promise to deliver a plain string, but selections arriving from rich
// editors or the clipboard are sometimes HTML; normalization keeps the
// renderer's contract (verbatim substitution of text) intact.
package selection

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// htmlMarkers are tags whose presence marks a selection as pasted rich text
// rather than prose that merely mentions angle brackets.
var htmlMarkers = []string{"<p", "<div", "<span", "<br", "<li", "<ul", "<ol", "<h1", "<h2", "<h3", "<table", "<a ", "<strong", "<em", "<!doctype", "<html"}

// looksLikeHTML reports whether s appears to be an HTML fragment.
func looksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	for _, marker := range htmlMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Normalize prepares a raw selection for placeholder substitution. HTML
// fragments are converted to Markdown; when conversion fails the original
// text is kept, since a best-effort cleanup must never lose the user's
// selection. Surrounding whitespace is trimmed either way.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if looksLikeHTML(trimmed) {
		markdown, err := htmltomarkdown.ConvertString(trimmed)
		if err == nil {
			return strings.TrimSpace(markdown)
		}
	}

	return trimmed
}
