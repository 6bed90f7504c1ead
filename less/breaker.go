package less

import (
	"strings"
	"unicode"
)

// Break splits raw rule header into comma separated groups and every group
// into whitespace separated segments. Content of brackets and parenthesis
// (nesting included) and quoted strings inside them are never split. Empty
// groups and segments are dropped.
func Break(header string) [][]string {
	var (
		groups  [][]string
		group   []string
		segment strings.Builder
		closers []rune // expected closing brackets, innermost last
		quote   rune
		escaped bool
	)
	endSegment := func() {
		if segment.Len() > 0 {
			group = append(group, segment.String())
			segment.Reset()
		}
	}
	endGroup := func() {
		endSegment()
		if len(group) > 0 {
			groups = append(groups, group)
			group = nil
		}
	}

	for _, r := range header {
		switch {
		case quote != 0:
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}
		case len(closers) > 0:
			switch r {
			case '"', '\'':
				quote = r
			case '[':
				closers = append(closers, ']')
			case '(':
				closers = append(closers, ')')
			case closers[len(closers)-1]:
				closers = closers[:len(closers)-1]
			}
		case r == '[':
			closers = append(closers, ']')
		case r == '(':
			closers = append(closers, ')')
		case r == ',':
			endGroup()
			continue
		case unicode.IsSpace(r):
			endSegment()
			continue
		}
		segment.WriteRune(r)
	}
	endGroup()
	return groups
}

// selectorSet builds selectors of rule header.
func selectorSet(header string) SelectorSet {
	if isMediaQuery(strings.TrimSpace(header)) {
		return SelectorSet{NormaliseWhitespace(header)}
	}
	groups := Break(header)
	set := make(SelectorSet, 0, len(groups))
	for _, g := range groups {
		set = append(set, strings.Join(g, " "))
	}
	return set
}
