package domain

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// PreviewLength is the max number of characters in a list preview
const PreviewLength = 150

// NoPreview is shown for summaries without body text
const NoPreview = "no summary available"

var stripPolicy = bluemonday.StrictPolicy()

// PlainText strips any markup from s and unescapes entities
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}

// Preview returns the first PreviewLength characters of plain text, with "..." appended if truncated
func Preview(body string) string {
	text := PlainText(body)
	if text == "" {
		return NoPreview
	}
	runes := []rune(text)
	if len(runes) <= PreviewLength {
		return text
	}
	return string(runes[:PreviewLength]) + "..."
}
