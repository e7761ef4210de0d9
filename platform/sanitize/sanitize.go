// Package sanitize provides text sanitization utilities for user-provided content.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// maxStripPasses bounds how many layers of entity encoding are unwrapped.
const maxStripPasses = 5

// StripHTML removes all markup from a string, making it safe for text-only display.
// Entities are decoded so stored text stays readable, and the result is
// stripped again until stable to catch encoded tags.
func StripHTML(s string) string {
	out := s
	for i := 0; i < maxStripPasses; i++ {
		next := html.UnescapeString(strict.Sanitize(out))
		if next == out {
			return strings.TrimSpace(out)
		}
		out = next
	}
	// Still unwrapping encodings: keep the escaped form.
	return strings.TrimSpace(strict.Sanitize(out))
}

// Text sanitizes a string for safe text storage.
// Use for user-provided fields like names, descriptions and notes.
func Text(s string) string {
	return StripHTML(s)
}

// TextPtr is a helper for optional string pointers
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Text(*s)
	return &result
}
