// Package source provides forward-only character cursors consumed by the
// tokenizer. A cursor is positioned on one character at a time and supports
// bounded lookahead without moving.
package source

import "strings"

// Source is a cursor over text. Implementations are not safe for concurrent
// use and cannot be rewound: parsing the same text again requires a new
// Source.
type Source interface {
	// Current returns the character under the cursor, ok is false when the
	// cursor is past the end of the content.
	Current() (r rune, ok bool)
	// Advance moves the cursor forward by one character. It is a no-op past
	// the end.
	Advance()
	// Peek returns up to n characters starting at the cursor (the current
	// character included). Fewer are returned near the end, never nil.
	Peek(n int) string
	// HasPrefix reports whether the content at the cursor starts with s.
	HasPrefix(s string, ignoreCase bool) bool
}

// hasPrefix compares a lookahead of exactly as many characters as s has with
// s itself.
func hasPrefix(peeked, s string, ignoreCase bool) bool {
	if ignoreCase {
		return strings.EqualFold(peeked, s)
	}
	return peeked == s
}
