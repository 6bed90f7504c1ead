package css

import "strings"

// grouper merges consecutive categorised characters into runs.
type grouper struct {
	text  strings.Builder
	cat   Category
	start int
	pos   int
}

// push adds text of the next character. It returns false when emit asked to
// stop.
func (g *grouper) push(char string, cat Category, emit func(Run) bool) bool {
	if g.text.Len() > 0 && (cat != g.cat || cat.Singleton()) {
		if !g.flush(emit) {
			return false
		}
	}
	if g.text.Len() == 0 {
		g.cat, g.start = cat, g.pos
	}
	g.text.WriteString(char)
	g.pos++
	if cat.Singleton() {
		return g.flush(emit)
	}
	return true
}

// flush emits accumulated run, if any.
func (g *grouper) flush(emit func(Run) bool) bool {
	if g.text.Len() == 0 {
		return true
	}
	run := Run{Text: g.text.String(), Offset: g.start, Category: g.cat}
	g.text.Reset()
	return emit(run)
}
