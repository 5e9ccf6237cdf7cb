// Package sanitize provides text sanitization utilities to prevent XSS attacks.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML removes all markup from s and returns its text content with
// entities decoded. Script and style bodies are dropped entirely.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	tokenizer := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// EOF or malformed input: keep what was read
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isRawTextTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isRawTextTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
			}
		}
	}
}

// Text sanitizes a string for safe text storage by stripping HTML.
// Use for user-provided free text such as inquiry messages.
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

func isRawTextTag(name string) bool {
	return name == "script" || name == "style"
}
