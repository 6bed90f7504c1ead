package less

import (
	"iter"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"cssfrag/common"
	"cssfrag/css"
)

// CommentHandling selects whether comments become fragments.
type CommentHandling = common.CommentHandling

const (
	ExcludeComments = common.CommentHandlingExclude
	IncludeComments = common.CommentHandlingInclude
)

// DefaultMaxDepth limits nesting of rule blocks.
const DefaultMaxDepth = 256

// Parser reconstructs nesting of rules from categorised runs.
type Parser struct {
	log      *zap.Logger
	comments CommentHandling
	maxDepth int
}

// Option changes Parser defaults.
type Option func(*Parser)

func WithComments(h CommentHandling) Option {
	return func(p *Parser) {
		p.comments = h
	}
}

// WithMaxDepth sets nesting limit, values below 1 restore the default.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}
		p.maxDepth = depth
	}
}

// NewParser creates a new hierarchical parser.
func NewParser(log *zap.Logger, opts ...Option) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Parser{
		log:      log.Named("hierarchy"),
		comments: ExcludeComments,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseIntoStructuredData builds fragment tree with default parser settings.
func ParseIntoStructuredData(runs iter.Seq[css.Run], comments CommentHandling) ([]Fragment, error) {
	return NewParser(nil, WithComments(comments)).Parse(runs)
}

// Parse consumes runs and returns top level fragments. Only comments and
// whitespace may follow the end of top level scope (unbalanced closing
// brace). On error no fragments are returned.
func (p *Parser) Parse(runs iter.Seq[css.Run]) ([]Fragment, error) {
	next, stop := iter.Pull(runs)
	defer stop()

	b := &builder{Parser: p, next: next}
	fragments, _, err := b.parse(nil, 0, 0)
	if err == nil {
		err = b.drain(fragments)
	}
	if err != nil {
		p.log.Debug("Unable to build fragment tree", zap.Error(err))
		return nil, err
	}
	p.log.Debug("Fragment tree built", zap.Int("fragments", len(fragments)), zap.Int("runs", b.runs))
	return fragments, nil
}

type builder struct {
	*Parser
	next func() (css.Run, bool)
	runs int
}

func (b *builder) pull() (css.Run, bool) {
	run, ok := b.next()
	if ok {
		b.runs++
	}
	return run, ok
}

// drain checks content left after top level scope was closed.
func (b *builder) drain(fragments []Fragment) error {
	for {
		run, ok := b.pull()
		if !ok {
			return nil
		}
		switch run.Category {
		case css.CategoryComment, css.CategoryWhitespace:
			continue
		}
		if !run.Category.IsValid() {
			return &ParseError{Line: 1, Err: ErrUnknownCategory}
		}
		last := 0
		if len(fragments) > 0 {
			last = fragments[len(fragments)-1].SourceLineIndex()
		}
		return &ParseError{Line: last + 1, Err: ErrTrailingContent}
	}
}

// scope is state local to a single block.
type scope struct {
	fragments []Fragment

	buf     strings.Builder // selector or property text
	bufLine int

	name    *StylePropertyName // last completed property name
	pending []string           // value segments not yet flushed
	owner   *StylePropertyName // property pending segments belong to
	valLine int

	line int
}

func (s *scope) add(f Fragment) {
	s.fragments = append(s.fragments, f)
}

func (s *scope) text() string {
	return strings.TrimSpace(s.buf.String())
}

func (s *scope) clear() {
	s.buf.Reset()
}

// flushValue turns pending segments into property value.
func (s *scope) flushValue() {
	if len(s.pending) == 0 {
		return
	}
	s.add(NewStylePropertyValue(*s.owner, s.pending, s.valLine))
	s.pending, s.owner = nil, nil
}

// flushName turns buffer into property name.
func (s *scope) flushName() {
	text := s.text()
	s.clear()
	if text == "" {
		return
	}
	name := NewStylePropertyName(text, s.bufLine)
	s.name = &name
	s.add(name)
}

// importTarget returns remainder of the buffer when it holds @import
// statement.
func (s *scope) importTarget() (string, bool) {
	text := s.text()
	if len(text) < 7 || !strings.EqualFold(text[:7], "@import") {
		return "", false
	}
	if rest := text[7:]; rest == "" || !isIdentRune([]rune(rest)[0]) {
		return strings.TrimSpace(rest), true
	}
	return "", false
}

func isIdentRune(r rune) bool {
	return r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// parse builds fragments of one block. It returns when block is closed or
// runs are exhausted, together with number of line breaks consumed.
func (b *builder) parse(parents []SelectorSet, line, depth int) ([]Fragment, int, error) {
	s := &scope{line: line}

	for {
		run, ok := b.pull()
		if !ok {
			break
		}

		switch run.Category {
		case css.CategoryComment:
			if b.comments == IncludeComments {
				for c := range splitComments(run.Text, s.line) {
					s.add(c)
				}
			}

		case css.CategoryWhitespace:
			if s.buf.Len() > 0 {
				s.buf.WriteByte(' ')
			}

		case css.CategorySelectorOrStyleProperty:
			s.flushValue()
			if s.buf.Len() == 0 {
				s.bufLine = s.line
			}
			s.buf.WriteString(run.Text)

		case css.CategoryOpenBrace:
			s.flushValue()
			header := s.text()
			s.clear()
			selectors := selectorSet(header)
			if len(selectors) == 0 {
				return nil, 0, &ParseError{Line: s.line + 1, Err: ErrOpenBraceWithoutSelector}
			}
			if depth+1 > b.maxDepth {
				return nil, 0, &ParseError{Line: s.line + 1, Err: ErrNestingTooDeep}
			}
			nested := append(parents[:len(parents):len(parents)], selectors)
			children, consumed, err := b.parse(nested, s.line, depth+1)
			if err != nil {
				return nil, 0, err
			}
			if selectors.IsMediaQuery() {
				s.add(NewMediaQuery(selectors, parents, children, s.bufLine))
			} else {
				s.add(NewSelector(selectors, parents, children, s.bufLine))
			}
			s.line += consumed

		case css.CategoryCloseBrace:
			s.flushValue()
			s.flushName()
			return s.fragments, s.line - line, nil

		case css.CategoryStylePropertyColon, css.CategorySemiColon:
			s.flushValue()
			if target, ok := s.importTarget(); ok && target != "" {
				s.add(NewImport(target, s.bufLine))
				s.clear()
				break
			}
			s.flushName()

		case css.CategoryValue:
			if s.buf.Len() > 0 {
				if _, ok := s.importTarget(); ok {
					s.buf.WriteString(run.Text)
					break
				}
				s.flushName()
			}
			if s.name == nil {
				return nil, 0, &ParseError{Line: s.line + 1, Err: ErrOrphanValue}
			}
			if s.owner != nil && s.owner != s.name {
				return nil, 0, &ParseError{Line: s.line + 1, Err: ErrInconsistentValue}
			}
			if len(s.pending) == 0 {
				s.owner, s.valLine = s.name, s.line
			}
			if segment := strings.TrimSpace(run.Text); segment != "" {
				s.pending = append(s.pending, segment)
			}

		default:
			return nil, 0, &ParseError{Line: s.line + 1, Err: ErrUnknownCategory}
		}
		s.line += lineBreaks(run.Text)
	}

	// runs exhausted, block was never closed
	s.flushValue()
	if target, ok := s.importTarget(); ok && target != "" {
		s.add(NewImport(target, s.bufLine))
		s.clear()
	}
	if header := s.text(); header != "" && depth == 0 {
		switch selectors := selectorSet(header); {
		case selectors.IsMediaQuery():
			s.add(NewMediaQuery(selectors, parents, nil, s.bufLine))
			s.clear()
		case len(selectors) > 0:
			s.add(NewSelector(selectors, parents, nil, s.bufLine))
			s.clear()
		}
	}
	// inside unterminated block leftovers are property name
	s.flushName()
	return s.fragments, s.line - line, nil
}

// lineBreaks counts "\r\n", "\r" and "\n" as one line break each.
func lineBreaks(text string) int {
	n := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			n++
		case '\r':
			n++
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		}
	}
	return n
}

// splitComments separates adjacent comments grouped into a single run.
func splitComments(text string, line int) iter.Seq[Comment] {
	return func(yield func(Comment) bool) {
		for text != "" {
			var end int
			switch {
			case strings.HasPrefix(text, "/*"):
				if i := strings.Index(text[2:], "*/"); i >= 0 {
					end = i + 4
				} else {
					end = len(text)
				}
			default:
				if i := strings.IndexAny(text, "\r\n"); i >= 0 {
					end = i + 1
					if strings.HasPrefix(text[i:], "\r\n") {
						end++
					}
				} else {
					end = len(text)
				}
			}
			piece := text[:end]
			if content := strings.TrimRight(piece, "\r\n"); content != "" {
				if !yield(NewComment(content, line)) {
					return
				}
			}
			line += lineBreaks(piece)
			text = text[end:]
		}
	}
}
