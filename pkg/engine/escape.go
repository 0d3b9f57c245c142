package engine

import "github.com/aymerick/raymond"

// HTMLEscape escapes HTML special characters the same way {{...}}
// interpolations do. Helpers that emit markup intentionally should escape
// untrusted fragments themselves, since their return text is spliced
// verbatim.
func HTMLEscape(text string) string {
	return raymond.Escape(text)
}

// NoEscape returns the text unchanged. It exists as the explicit counterpart
// of HTMLEscape for call sites that want to state the choice.
func NoEscape(text string) string {
	return text
}
