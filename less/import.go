package less

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Target returns location referenced by the import: first quoted string or
// url() argument. Empty string is returned when there is none, for example
// when import references LESS variable.
func (i Import) Target() string {
	lexer := css.NewLexer(parse.NewInputString(i.Content))
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return ""
		case css.StringToken:
			return unquote(string(data))
		case css.URLToken:
			// token data is the whole url(...) text
			s := string(data)
			if open := strings.IndexByte(s, '('); open >= 0 {
				s = s[open+1:]
			}
			s = strings.TrimSuffix(s, ")")
			return unquote(s)
		}
	}
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
