package css

import (
	"slices"
	"unicode"

	"cssfrag/source"
)

// DefaultPseudoClasses lists names which, following a colon in selector
// position, make that colon part of the selector. Matching is case sensitive.
var DefaultPseudoClasses = []string{
	"active", "after", "before", "checked", "default", "disabled", "empty",
	"enabled", "first", "first-child", "first-letter", "first-line",
	"first-of-type", "focus", "focus-visible", "focus-within", "has", "hover",
	"in-range", "indeterminate", "invalid", "is", "lang", "last-child",
	"last-of-type", "left", "link", "not", "nth-child", "nth-last-child",
	"nth-last-of-type", "nth-of-type", "only-child", "only-of-type", "optional",
	"out-of-range", "placeholder", "read-only", "read-write", "required",
	"right", "root", "selection", "target", "valid", "visited", "where",
	"-moz-focusring",
}

// defaultLookahead is number of characters examined after a colon. It has to
// cover optional whitespace, the longest pseudo-class name and whitespace
// before the terminator of a declaration.
const defaultLookahead = 96

// pseudoClassFollows decides if text following a colon starts with known
// pseudo-class. Word which is followed by ';', '}' or '!' is a property value
// ("cursor: default;") even if it is in the table. Whitespace and comments
// between the word and the terminator do not matter. ahead is lookahead
// window starting at the colon.
func (t *Tokenizer) pseudoClassFollows(src source.Source, ahead []rune) bool {
	i := skipSpace(ahead, 1)
	start := i
	for i < len(ahead) && isWordRune(ahead[i]) {
		i++
	}
	if i == start {
		return false
	}
	if _, ok := t.pseudo[string(ahead[start:i])]; !ok {
		return false
	}
	return !t.terminatorFollows(src, ahead, i)
}

// terminatorFollows reports whether declaration terminator comes at or
// after character i of the window once whitespace and comments are skipped.
// The window grows while skipped text reaches its end.
func (t *Tokenizer) terminatorFollows(src source.Source, ahead []rune, i int) bool {
	for size := len(ahead); ; {
		j := t.skipFiller(ahead, i)
		if j < len(ahead) {
			return slices.Contains([]rune{';', '}', '!'}, ahead[j])
		}
		if len(ahead) < size {
			// end of content
			return false
		}
		size *= 2
		ahead = []rune(src.Peek(size))
	}
}

// skipFiller returns index of the first character at or after i which is
// neither whitespace nor part of a comment. Unterminated comment runs to the
// end of the window.
func (t *Tokenizer) skipFiller(text []rune, i int) int {
	for {
		i = skipSpace(text, i)
		switch {
		case hasRunes(text, i, "/*"):
			end := indexRunes(text, i+2, "*/")
			if end < 0 {
				return len(text)
			}
			i = end + 2
		case t.grammar == GrammarLess && hasRunes(text, i, "//"):
			end := slices.IndexFunc(text[i:], func(r rune) bool { return r == '\n' || r == '\r' })
			if end < 0 {
				return len(text)
			}
			i += end
		default:
			return i
		}
	}
}

func hasRunes(text []rune, i int, s string) bool {
	r := []rune(s)
	return i+len(r) <= len(text) && slices.Equal(text[i:i+len(r)], r)
}

func indexRunes(text []rune, i int, s string) int {
	for ; i < len(text); i++ {
		if hasRunes(text, i, s) {
			return i
		}
	}
	return -1
}

func skipSpace(text []rune, i int) int {
	for i < len(text) && unicode.IsSpace(text[i]) {
		i++
	}
	return i
}

func isWordRune(r rune) bool {
	return r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
