package source

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	parse "github.com/tdewolff/parse/v2"
)

// Reader is a Source pulling its content from io.Reader. Content is
// buffered by parse.Input, lookahead never moves the cursor. Bytes that are
// not valid UTF-8 are characters of their own, as with String.
type Reader struct {
	in  *parse.Input
	pos int // characters consumed
}

// NewReader creates cursor over everything r produces. Read errors other
// than io.EOF are reported immediately.
func NewReader(r io.Reader) (*Reader, error) {
	in := parse.NewInput(r)
	if err := in.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to read stylesheet content: %w", err)
	}
	return &Reader{in: in}, nil
}

// decode returns character starting at byte offset off from the cursor and
// its length in bytes, zero length means end of content.
func (s *Reader) decode(off int) (rune, int) {
	var buf [utf8.UTFMax]byte
	n := 0
	for ; n < len(buf) && s.in.PeekErr(off+n) == nil; n++ {
		buf[n] = s.in.Peek(off + n)
	}
	if n == 0 {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(buf[:n])
}

func (s *Reader) Current() (rune, bool) {
	r, size := s.decode(0)
	return r, size > 0
}

func (s *Reader) Advance() {
	_, size := s.decode(0)
	if size == 0 {
		return
	}
	s.in.Move(size)
	s.pos++
	// nothing behind the cursor is ever looked at again
	s.in.Skip()
}

func (s *Reader) Peek(n int) string {
	end := 0
	for ; n > 0; n-- {
		_, size := s.decode(end)
		if size == 0 {
			break
		}
		end += size
	}
	if end == 0 {
		return ""
	}
	// selection always starts at the cursor, see Advance
	s.in.Move(end)
	text := string(s.in.Lexeme())
	s.in.Rewind(0)
	return text
}

func (s *Reader) HasPrefix(prefix string, ignoreCase bool) bool {
	return hasPrefix(s.Peek(utf8.RuneCountInString(prefix)), prefix, ignoreCase)
}

// Pos returns number of characters consumed so far.
func (s *Reader) Pos() int {
	return s.pos
}
