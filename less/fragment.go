// Package less builds hierarchical tree of stylesheet fragments from
// categorised runs. Nested rules of LESS are supported, mixins and variables
// are kept as opaque text.
package less

import (
	"fmt"
	"strings"
	"unicode"
)

// Fragment is a node of the parsed tree. The set of implementations is
// closed: Comment, Import, StylePropertyName, StylePropertyValue, Selector
// and MediaQuery.
type Fragment interface {
	// SourceLineIndex is zero based line where fragment content begins.
	SourceLineIndex() int
	fragment()
}

type position struct {
	line int
}

func at(line int) position {
	if line < 0 {
		panic(fmt.Sprintf("negative source line index %d", line))
	}
	return position{line: line}
}

func (p position) SourceLineIndex() int {
	return p.line
}

func (position) fragment() {}

// Comment includes its delimiters. Line break terminating single line
// comment is not part of it.
type Comment struct {
	position
	Content string
}

func NewComment(content string, line int) Comment {
	return Comment{position: at(line), Content: content}
}

// Import is text between "@import" and terminating semicolon.
type Import struct {
	position
	Content string
}

func NewImport(content string, line int) Import {
	return Import{position: at(line), Content: content}
}

type StylePropertyName struct {
	position
	Value string
}

func NewStylePropertyName(value string, line int) StylePropertyName {
	return StylePropertyName{position: at(line), Value: value}
}

// StylePropertyValue holds all value segments of one property assignment,
// `font-family: "Segoe UI", Verdana` has two.
type StylePropertyValue struct {
	position
	Property      StylePropertyName
	ValueSegments []string
}

func NewStylePropertyValue(property StylePropertyName, segments []string, line int) StylePropertyValue {
	return StylePropertyValue{position: at(line), Property: property, ValueSegments: segments}
}

// Block is common part of rule blocks.
type Block struct {
	Selectors       SelectorSet
	ParentSelectors []SelectorSet
	Children        []Fragment
}

type Selector struct {
	position
	Block
}

func NewSelector(selectors SelectorSet, parents []SelectorSet, children []Fragment, line int) Selector {
	return Selector{position: at(line), Block: Block{Selectors: selectors, ParentSelectors: parents, Children: children}}
}

// MediaQuery has a single selector segment which is the whole "@media ..."
// header.
type MediaQuery struct {
	position
	Block
}

func NewMediaQuery(selectors SelectorSet, parents []SelectorSet, children []Fragment, line int) MediaQuery {
	return MediaQuery{position: at(line), Block: Block{Selectors: selectors, ParentSelectors: parents, Children: children}}
}

// SelectorSet is comma separated list of selectors of one rule header, each
// normalised with NormaliseWhitespace.
type SelectorSet []string

func (s SelectorSet) String() string {
	return strings.Join(s, ", ")
}

// IsMediaQuery reports if header is a media query.
func (s SelectorSet) IsMediaQuery() bool {
	return len(s) > 0 && isMediaQuery(s[0])
}

func isMediaQuery(header string) bool {
	return len(header) >= 6 && strings.EqualFold(header[:6], "@media")
}

// NormaliseWhitespace collapses every run of whitespace into single space
// and trims both ends.
func NormaliseWhitespace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
