// Package process resolves command line sources into stylesheets and drives
// them through tokenizer and fragment parser.
package process

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/tdewolff/parse/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"cssfrag/archive"
	"cssfrag/common"
	"cssfrag/config"
	"cssfrag/css"
	"cssfrag/less"
	"cssfrag/source"
)

// Stylesheet is decoded source ready for tokenizing. Grammar is always
// resolved to css or less. Path is slash separated name relative to the
// walked source: base name for a single file, path under the directory or
// archive prefix otherwise.
type Stylesheet struct {
	Name    string
	Path    string
	Grammar common.Grammar
	Text    string
}

// Processor keeps tokenizers and parser configured once for all stylesheets
// of a single run.
type Processor struct {
	log        *zap.Logger
	rpt        *config.Report
	grammar    common.Grammar
	codePage   encoding.Encoding
	tokenizers map[common.Grammar]*css.Tokenizer
	parser     *less.Parser
}

// New prepares processor from parsing configuration. Report may be nil.
func New(cfg *config.ParsingConfig, rpt *config.Report, log *zap.Logger) (*Processor, error) {
	if log == nil {
		log = zap.NewNop()
	}

	p := &Processor{
		log:     log.Named("process"),
		rpt:     rpt,
		grammar: cfg.Grammar,
	}

	if len(cfg.Encoding) > 0 {
		enc, err := ianaindex.IANA.Encoding(cfg.Encoding)
		if err != nil {
			return nil, fmt.Errorf("unknown input encoding '%s': %w", cfg.Encoding, err)
		}
		if enc == nil {
			return nil, fmt.Errorf("input encoding '%s' is not supported", cfg.Encoding)
		}
		p.codePage = enc
		n, _ := ianaindex.IANA.Name(enc)
		p.log.Debug("Forcefully decoding all stylesheets", zap.String("charset", n))
	}

	var opts []css.Option
	if len(cfg.PseudoClasses) > 0 {
		opts = append(opts, css.WithPseudoClasses(cfg.PseudoClasses))
	}
	p.tokenizers = map[common.Grammar]*css.Tokenizer{
		common.GrammarCss:  css.NewTokenizer(log, css.GrammarCss, opts...),
		common.GrammarLess: css.NewTokenizer(log, css.GrammarLess, opts...),
	}

	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = less.DefaultMaxDepth
	}
	p.parser = less.NewParser(log, less.WithComments(cfg.Comments), less.WithMaxDepth(maxDepth))
	return p, nil
}

func (p *Processor) tokenizer(g common.Grammar) *css.Tokenizer {
	if t, ok := p.tokenizers[g]; ok {
		return t
	}
	return p.tokenizers[common.GrammarCss]
}

// Runs tokenizes stylesheet.
func (p *Processor) Runs(s Stylesheet) iter.Seq[css.Run] {
	return p.tokenizer(s.Grammar).String(s.Text)
}

// Stream tokenizes content of r as is, without decoding. Content is expected
// to be UTF-8, grammar is css unless forced. Sequence may be iterated once.
func (p *Processor) Stream(r io.Reader) (common.Grammar, iter.Seq[css.Run], error) {
	src, err := source.NewReader(r)
	if err != nil {
		return common.GrammarCss, nil, err
	}
	g := p.grammar.ForName("")
	p.log.Debug("Tokenizing stream", zap.Stringer("grammar", g))
	return g, p.tokenizer(g).Runs(src), nil
}

// Fragments builds fragment tree of the stylesheet. Structural errors carry
// the offending source line.
func (p *Processor) Fragments(s Stylesheet) ([]less.Fragment, error) {
	fragments, err := p.parser.Parse(p.Runs(s))
	if err == nil {
		return fragments, nil
	}
	var perr *less.ParseError
	if !errors.As(err, &perr) {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	_, _, excerpt := parse.Position(strings.NewReader(s.Text), lineOffset(s.Text, perr.Line))
	p.log.Debug("Stylesheet structure is broken", zap.String("stylesheet", s.Name), zap.Int("line", perr.Line), zap.Error(err))
	return nil, fmt.Errorf("%s: %w\n%s", s.Name, err, excerpt)
}

// lineOffset returns byte offset of 1-based line counting line breaks the
// way fragment parser does.
func lineOffset(text string, line int) int {
	for i := 0; i < len(text) && line > 1; i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			fallthrough
		case '\n':
			line--
			if line == 1 {
				return i + 1
			}
		}
	}
	if line > 1 {
		return len(text)
	}
	return 0
}

// Walk resolves source which could be a stylesheet, a directory (searched
// recursively) or a zip archive optionally followed by path inside of it,
// and calls fn for every stylesheet found in natural order of names. Errors
// from individual stylesheets do not stop processing and are combined in the
// result, cancelled context does.
func (p *Processor) Walk(ctx context.Context, src string, fn func(Stylesheet) error) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return p.walkDir(ctx, head, fn)
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		arc, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if arc {
			inner := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			return p.walkArchive(ctx, head, inner, fn)
		}

		ok, err := isStylesheetFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if ok && len(tail) == 0 {
			return p.visitFile(head, filepath.Base(head), fn)
		}
		return fmt.Errorf("input was not recognized as stylesheet (%s)", head)
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

func (p *Processor) walkDir(ctx context.Context, dir string, fn func(Stylesheet) error) (err error) {
	var names []string
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && isStylesheetName(path) {
			names = append(names, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("unable to walk directory '%s': %w", dir, err)
	}
	sort.Sort(natural.StringSlice(names))

	p.log.Debug("Processing directory", zap.String("dir", dir), zap.Int("stylesheets", len(names)))
	for _, name := range names {
		if er := ctx.Err(); er != nil {
			return multierr.Append(err, er)
		}
		rel, er := filepath.Rel(dir, name)
		if er != nil {
			rel = filepath.Base(name)
		}
		err = multierr.Append(err, p.visitFile(name, filepath.ToSlash(rel), fn))
	}
	return err
}

func (p *Processor) walkArchive(ctx context.Context, arc, inner string, fn func(Stylesheet) error) (err error) {
	match := func(name string) bool {
		return isStylesheetName(name) && (inner == "" || name == inner || strings.HasPrefix(name, strings.TrimSuffix(inner, "/")+"/"))
	}
	count := 0
	werr := archive.Walk(arc, match, func(archive string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		count++
		name := filepath.Join(archive, filepath.FromSlash(f.Name))
		r, er := f.Open()
		if er != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", name, er))
			return nil
		}
		data, er := io.ReadAll(r)
		r.Close()
		if er != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", name, er))
			return nil
		}
		p.rpt.StoreData(filepath.ToSlash(filepath.Join("input", filepath.Base(archive), f.Name)), data)
		err = multierr.Append(err, p.visit(name, relInArchive(f.Name, inner), data, fn))
		return nil
	})
	if werr != nil {
		return multierr.Append(err, fmt.Errorf("unable to walk archive '%s': %w", arc, werr))
	}
	if count == 0 {
		return multierr.Append(err, fmt.Errorf("no stylesheets found in archive (%s) => (%s)", arc, inner))
	}
	return err
}

// relInArchive returns entry name relative to the requested archive prefix,
// a prefix naming the entry itself leaves just its base name.
func relInArchive(name, inner string) string {
	inner = strings.TrimSuffix(inner, "/")
	switch {
	case inner == "":
		return name
	case name == inner:
		return path.Base(name)
	}
	return strings.TrimPrefix(name, inner+"/")
}

func (p *Processor) visitFile(fname, rel string, fn func(Stylesheet) error) error {
	data, err := os.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	if err := p.rpt.StoreCopy("input/"+rel, fname); err != nil {
		p.log.Warn("Unable to store stylesheet in report", zap.String("file", fname), zap.Error(err))
	}
	return p.visit(fname, rel, data, fn)
}

func (p *Processor) visit(name, rel string, data []byte, fn func(Stylesheet) error) error {
	text, err := decode(data, p.codePage)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	s := Stylesheet{Name: name, Path: rel, Grammar: p.grammar.ForName(name), Text: text}
	p.log.Debug("Stylesheet loaded", zap.String("name", name), zap.Stringer("grammar", s.Grammar), zap.Int("size", len(text)))
	if err := fn(s); err != nil {
		p.log.Error("Unable to process stylesheet", zap.String("name", name), zap.Error(err))
		return err
	}
	return nil
}
