// Package css splits CSS and LESS stylesheets into categorised runs of
// characters without losing a single character of the source.
package css

import (
	"iter"

	"go.uber.org/zap"

	"cssfrag/source"
)

// Tokenizer categorises characters of a stylesheet. It holds no per-source
// state and may be used by several goroutines at once.
type Tokenizer struct {
	log       *zap.Logger
	grammar   Grammar
	pseudo    map[string]struct{}
	lookahead int
}

// Option changes Tokenizer defaults.
type Option func(*Tokenizer)

// WithPseudoClasses replaces table of known pseudo-classes.
func WithPseudoClasses(names []string) Option {
	return func(t *Tokenizer) {
		t.pseudo = make(map[string]struct{}, len(names))
		longest := 0
		for _, name := range names {
			t.pseudo[name] = struct{}{}
			longest = max(longest, len([]rune(name)))
		}
		t.lookahead = max(defaultLookahead, 2*longest+2)
	}
}

// NewTokenizer creates tokenizer for the requested grammar.
func NewTokenizer(log *zap.Logger, grammar Grammar, opts ...Option) *Tokenizer {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Tokenizer{
		log:     log.Named("tokenizer"),
		grammar: grammar,
	}
	WithPseudoClasses(DefaultPseudoClasses)(t)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Runs returns lazy sequence of runs read from src. Since src only moves
// forward the sequence may be iterated once. When iteration stops early src
// is left past the last yielded run.
func (t *Tokenizer) Runs(src source.Source) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		var (
			g     grouper
			runs  int
			st    = selectorMode
			count = func(r Run) bool {
				runs++
				return yield(r)
			}
		)
		t.log.Debug("Tokenizing", zap.Stringer("grammar", t.grammar))
		for {
			if _, ok := src.Current(); !ok {
				break
			}
			// raw text keeps bytes that are not valid UTF-8 intact
			text := src.Peek(1)
			var cat Category
			cat, st = t.step(st, src)
			src.Advance()
			if !g.push(text, cat, count) {
				return
			}
		}
		if g.flush(count) {
			t.log.Debug("Tokenized", zap.Int("characters", g.pos), zap.Int("runs", runs))
		}
	}
}

// String returns sequence of runs for in-memory text. Every iteration starts
// from the beginning of the text.
func (t *Tokenizer) String(text string) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		for r := range t.Runs(source.NewString(text)) {
			if !yield(r) {
				return
			}
		}
	}
}

var (
	cssTokenizer  = NewTokenizer(nil, GrammarCss)
	lessTokenizer = NewTokenizer(nil, GrammarLess)
)

// ParseCSS categorises plain CSS, "//" does not start a comment.
func ParseCSS(text string) iter.Seq[Run] {
	return cssTokenizer.String(text)
}

// ParseLESS categorises LESS, "//" starts a comment running to the end of
// line.
func ParseLESS(text string) iter.Seq[Run] {
	return lessTokenizer.String(text)
}
