package css

// Category classifies every character of stylesheet source. StylePropertyColon
// is only the colon between property name and its value, colons of
// pseudo-classes and media features are SelectorOrStyleProperty.
// ENUM(Comment, Whitespace, SelectorOrStyleProperty, OpenBrace, CloseBrace, SemiColon, StylePropertyColon, Value)
type Category int

// Singleton reports categories which are never merged with neighbours.
func (c Category) Singleton() bool {
	return c == CategoryOpenBrace || c == CategoryCloseBrace || c == CategorySemiColon
}

// Grammar selects stylesheet dialect. The only difference is that LESS
// supports single line "//" comments.
// ENUM(css, less)
type Grammar int

// Run is maximal same-category piece of source text. Offset is counted in
// characters (runes) from the beginning of the source.
type Run struct {
	Text     string
	Offset   int
	Category Category
}

// End returns offset of the character following the run.
func (r Run) End() int {
	return r.Offset + len([]rune(r.Text))
}
