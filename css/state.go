package css

import (
	"unicode"

	"cssfrag/source"
)

type kind uint8

const (
	kindSelectorOrStyle kind = iota
	kindValue
	kindSingleLineComment
	kindMultiLineComment
	kindQuoted
	kindBracketed
	kindMediaQuery
	kindSkip
)

// state is a node of categorisation automaton. States are values: two states
// with the same fields behave identically, which makes them safe to intern.
type state struct {
	kind     kind
	category Category // quoted, bracketed and skip
	delim    rune     // closing quote or bracket
	n        int      // characters left to skip
	resume   *state   // where to go once construct ends
}

var (
	selectorMode = intern(state{kind: kindSelectorOrStyle})
	valueMode    = intern(state{kind: kindValue})
)

func singleLineComment(resume *state) *state {
	return intern(state{kind: kindSingleLineComment, resume: resume})
}

func multiLineComment(resume *state) *state {
	return intern(state{kind: kindMultiLineComment, resume: resume})
}

func quoted(quote rune, cat Category, resume *state) *state {
	return intern(state{kind: kindQuoted, category: cat, delim: quote, resume: resume})
}

func bracketed(closing rune, cat Category, resume *state) *state {
	return intern(state{kind: kindBracketed, category: cat, delim: closing, resume: resume})
}

func mediaQuery(resume *state) *state {
	return intern(state{kind: kindMediaQuery, resume: resume})
}

func skip(cat Category, n int, resume *state) *state {
	return intern(state{kind: kindSkip, category: cat, n: n, resume: resume})
}

// step categorises current character of src and selects state for the next
// one. src must not be exhausted.
func (t *Tokenizer) step(s *state, src source.Source) (Category, *state) {
	r, _ := src.Current()

	switch s.kind {
	case kindSelectorOrStyle, kindValue:
		return t.stepNormal(s, src, r)

	case kindSingleLineComment:
		switch {
		case src.HasPrefix("\r\n", false):
			return CategoryComment, skip(CategoryComment, 1, s.resume)
		case r == '\r' || r == '\n':
			return CategoryComment, s.resume
		}
		return CategoryComment, s

	case kindMultiLineComment:
		if src.HasPrefix("*/", false) {
			return CategoryComment, skip(CategoryComment, 1, s.resume)
		}
		return CategoryComment, s

	case kindQuoted:
		switch r {
		case '\\':
			return s.category, skip(s.category, 1, s)
		case s.delim:
			return s.category, s.resume
		}
		return s.category, s

	case kindBracketed:
		return t.stepBracketed(s, src, r)

	case kindMediaQuery:
		switch {
		case r == '{':
			return CategoryOpenBrace, s.resume
		case unicode.IsSpace(r):
			return CategoryWhitespace, s
		case src.HasPrefix("/*", false):
			return CategoryComment, skip(CategoryComment, 1, multiLineComment(s))
		}
		return CategorySelectorOrStyleProperty, s

	case kindSkip:
		if s.n <= 1 {
			return s.category, s.resume
		}
		return s.category, skip(s.category, s.n-1, s.resume)
	}
	panic("unknown tokenizer state")
}

func (t *Tokenizer) stepNormal(s *state, src source.Source, r rune) (Category, *state) {
	inSelector := s.kind == kindSelectorOrStyle
	plain := CategoryValue
	if inSelector {
		plain = CategorySelectorOrStyleProperty
	}

	switch r {
	case '{':
		return CategoryOpenBrace, selectorMode
	case '}':
		return CategoryCloseBrace, selectorMode
	case ';':
		return CategorySemiColon, selectorMode
	case ':':
		if !inSelector {
			return CategoryValue, s
		}
		ahead := []rune(src.Peek(t.lookahead))
		if len(ahead) > 1 && ahead[1] == ':' {
			return CategorySelectorOrStyleProperty, skip(CategorySelectorOrStyleProperty, 1, s)
		}
		if t.pseudoClassFollows(src, ahead) {
			return CategorySelectorOrStyleProperty, s
		}
		return CategoryStylePropertyColon, valueMode
	case '"', '\'':
		return CategoryValue, quoted(r, CategoryValue, s)
	}

	switch {
	case unicode.IsSpace(r):
		return CategoryWhitespace, s
	case t.grammar == GrammarLess && src.HasPrefix("//", false):
		return CategoryComment, singleLineComment(s)
	case src.HasPrefix("/*", false):
		return CategoryComment, skip(CategoryComment, 1, multiLineComment(s))
	case inSelector && r == '@' && mediaKeyword(src):
		return CategorySelectorOrStyleProperty, mediaQuery(s)
	case inSelector && (r == '[' || r == '('):
		return CategorySelectorOrStyleProperty, bracketed(closing(r), CategorySelectorOrStyleProperty, s)
	case !inSelector && r == '(':
		return CategoryValue, bracketed(')', CategoryValue, s)
	}
	return plain, s
}

func (t *Tokenizer) stepBracketed(s *state, src source.Source, r rune) (Category, *state) {
	switch r {
	case s.delim:
		return s.category, s.resume
	case '{':
		return CategoryOpenBrace, selectorMode
	case '}':
		return CategoryCloseBrace, selectorMode
	case '"', '\'':
		return s.category, quoted(r, s.category, s)
	case '(':
		return s.category, bracketed(')', s.category, s)
	case '[':
		if s.category == CategorySelectorOrStyleProperty {
			return s.category, bracketed(']', s.category, s)
		}
	}

	switch {
	case src.HasPrefix("/*", false):
		return CategoryComment, skip(CategoryComment, 1, multiLineComment(s))
	case s.category == CategorySelectorOrStyleProperty && t.grammar == GrammarLess && src.HasPrefix("//", false):
		return CategoryComment, singleLineComment(s)
	}
	return s.category, s
}

func closing(open rune) rune {
	if open == '[' {
		return ']'
	}
	return ')'
}

// mediaKeyword checks that "@media" at the cursor is complete keyword and not
// a prefix of LESS variable such as "@mediaWidth".
func mediaKeyword(src source.Source) bool {
	if !src.HasPrefix("@media", true) {
		return false
	}
	ahead := []rune(src.Peek(7))
	if len(ahead) == 6 {
		return true
	}
	next := ahead[6]
	return next == '(' || unicode.IsSpace(next)
}
