package process

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssfrag/common"
	"cssfrag/css"
	"cssfrag/export"
	"cssfrag/index"
	"cssfrag/render"
	"cssfrag/state"
)

// prepare builds processor from configuration with command line overrides.
func prepare(ctx context.Context, cmd *cli.Command, name string) (*state.LocalEnv, *Processor, *zap.Logger, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, nil, err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named(name)

	parsing := env.Cfg.Parsing
	if cmd.IsSet("grammar") {
		g, err := common.ParseGrammar(cmd.String("grammar"))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("unknown grammar requested: %w", err)
		}
		parsing.Grammar = g
	}
	if cmd.Bool("comments") {
		parsing.Comments = common.CommentHandlingInclude
	}
	if cp := cmd.String("encoding"); len(cp) > 0 {
		parsing.Encoding = cp
	}

	p, err := New(&parsing, env.Rpt, env.Log)
	if err != nil {
		return nil, nil, nil, err
	}
	return env, p, log, nil
}

func sources(cmd *cli.Command, skip int) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) <= skip {
		return nil, errors.New("no input source has been specified")
	}
	return args[skip:], nil
}

func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func walkSources(ctx context.Context, p *Processor, srcs []string, log *zap.Logger, fn func(Stylesheet) error) (err error) {
	log.Info("Processing starting", zap.Strings("sources", srcs))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	for _, src := range srcs {
		if er := ctx.Err(); er != nil {
			return multierr.Append(err, er)
		}
		if abs, er := filepath.Abs(src); er == nil {
			src = abs
		}
		err = multierr.Append(err, p.Walk(ctx, src, fn))
	}
	return err
}

// Tokens lists categorized runs of every stylesheet.
func Tokens(ctx context.Context, cmd *cli.Command) error {
	_, p, log, err := prepare(ctx, cmd, "tokens")
	if err != nil {
		return err
	}
	srcs, err := sources(cmd, 0)
	if err != nil {
		return err
	}
	if len(srcs) == 1 && srcs[0] == "-" {
		g, runs, err := p.Stream(stdin(cmd))
		if err != nil {
			return err
		}
		return writeTokens(stdout(cmd), Stylesheet{Name: "STDIN", Grammar: g}, runs)
	}
	return walkSources(ctx, p, srcs, log, func(s Stylesheet) error {
		return writeTokens(stdout(cmd), s, p.Runs(s))
	})
}

func writeTokens(w io.Writer, s Stylesheet, runs iter.Seq[css.Run]) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s (%s)\n", s.Name, s.Grammar)
	for run := range runs {
		fmt.Fprintf(bw, "%6d  %-24s %q\n", run.Offset, run.Category, run.Text)
	}
	return bw.Flush()
}

// Tree outputs fragment tree of every stylesheet in requested format.
func Tree(ctx context.Context, cmd *cli.Command) error {
	env, p, log, err := prepare(ctx, cmd, "tree")
	if err != nil {
		return err
	}
	srcs, err := sources(cmd, 0)
	if err != nil {
		return err
	}

	format := env.Cfg.Output.Format
	if cmd.IsSet("format") {
		if format, err = common.ParseOutputFormat(cmd.String("format")); err != nil {
			return fmt.Errorf("unknown output format requested: %w", err)
		}
	}
	outs := newOutputs(cmd, &env.Cfg.Output, format.Ext())

	return walkSources(ctx, p, srcs, log, func(s Stylesheet) (err error) {
		fragments, err := p.Fragments(s)
		if err != nil {
			return err
		}
		out, err := outs.open(s)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, out.Close())
		}()
		if outs.toStdout() && format == common.OutputFormatText {
			fmt.Fprintf(out, "# %s\n", s.Name)
		}
		return export.Write(out, fragments, format, env.Cfg.Output.Indent)
	})
}

// Render produces HTML page with highlighted source of every stylesheet.
func Render(ctx context.Context, cmd *cli.Command) error {
	env, p, log, err := prepare(ctx, cmd, "render")
	if err != nil {
		return err
	}
	srcs, err := sources(cmd, 0)
	if err != nil {
		return err
	}
	tmpl, err := env.Cfg.Render.LoadPageTemplate()
	if err != nil {
		return err
	}
	outs := newOutputs(cmd, &env.Cfg.Output, ".html")

	return walkSources(ctx, p, srcs, log, func(s Stylesheet) (err error) {
		page, err := render.Page(tmpl, env.Cfg.Render.Title, s.Name, render.HTML(p.Runs(s)))
		if err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		out, err := outs.open(s)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, out.Close())
		}()
		_, err = out.Write(page)
		return err
	})
}

// Index stores fragment trees of every stylesheet in index database.
func Index(ctx context.Context, cmd *cli.Command) (err error) {
	_, p, log, err := prepare(ctx, cmd, "index")
	if err != nil {
		return err
	}
	dbPath := cmd.Args().Get(0)
	if len(dbPath) == 0 {
		return errors.New("no index database has been specified")
	}
	srcs, err := sources(cmd, 1)
	if err != nil {
		return err
	}

	db, err := index.Open(dbPath, log)
	if err != nil {
		return err
	}
	defer func() {
		if er := db.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close index: %w", er))
		}
	}()

	count := 0
	err = walkSources(ctx, p, srcs, log, func(s Stylesheet) error {
		fragments, err := p.Fragments(s)
		if err != nil {
			return err
		}
		if err := db.Add(s.Name, fragments); err != nil {
			return err
		}
		count++
		return nil
	})
	log.Info("Stylesheets indexed", zap.String("index", dbPath), zap.Int("count", count))
	return err
}

// Lookup lists all assignments of a property found in index database.
func Lookup(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("lookup")

	dbPath, property := cmd.Args().Get(0), cmd.Args().Get(1)
	if len(dbPath) == 0 || len(property) == 0 {
		return errors.New("index database and property name are required")
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("unable to access index: %w", err)
	}

	db, err := index.Open(dbPath, log)
	if err != nil {
		return err
	}
	defer func() {
		if er := db.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close index: %w", er))
		}
	}()

	matches, err := db.LookupProperty(property)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		log.Info("Property was not found", zap.String("property", property))
		return nil
	}
	return writeMatches(stdout(cmd), property, matches)
}

func writeMatches(w io.Writer, property string, matches []index.Match) error {
	bw := bufio.NewWriter(w)
	for _, m := range matches {
		fmt.Fprintf(bw, "%s:%d: %s { %s: %s }\n", m.File, m.Line, m.Selector, property, m.Value)
	}
	return bw.Flush()
}
