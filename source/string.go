package source

import "unicode/utf8"

// String is a Source over in-memory text. Positions are counted in
// characters (runes), not bytes. Every byte that is not part of valid UTF-8
// sequence is a character of its own.
type String struct {
	text string
	off  int // byte offset of the cursor
	pos  int
}

// NewString creates cursor positioned at the first character of text.
func NewString(text string) *String {
	return &String{text: text}
}

func (s *String) Current() (rune, bool) {
	if s.off >= len(s.text) {
		return utf8.RuneError, false
	}
	r, _ := utf8.DecodeRuneInString(s.text[s.off:])
	return r, true
}

func (s *String) Advance() {
	if s.off < len(s.text) {
		_, size := utf8.DecodeRuneInString(s.text[s.off:])
		s.off += size
		s.pos++
	}
}

func (s *String) Peek(n int) string {
	end := s.off
	for ; n > 0 && end < len(s.text); n-- {
		_, size := utf8.DecodeRuneInString(s.text[end:])
		end += size
	}
	return s.text[s.off:end]
}

func (s *String) HasPrefix(prefix string, ignoreCase bool) bool {
	return hasPrefix(s.Peek(utf8.RuneCountInString(prefix)), prefix, ignoreCase)
}

// Pos returns number of characters consumed so far.
func (s *String) Pos() int {
	return s.pos
}
