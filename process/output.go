package process

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"

	"cssfrag/config"
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// outputs hands out destinations for stylesheets of a single command, either
// standard output or a file per stylesheet under dir. The same file is never
// handed out twice.
type outputs struct {
	cmd           *cli.Command
	dir           string
	ext           string
	transliterate bool
	taken         map[string]string // file name -> stylesheet
}

func newOutputs(cmd *cli.Command, cfg *config.OutputConfig, ext string) *outputs {
	return &outputs{
		cmd:           cmd,
		dir:           cmd.String("out"),
		ext:           ext,
		transliterate: cfg.FileNameTransliterate,
		taken:         make(map[string]string),
	}
}

func (o *outputs) toStdout() bool {
	return len(o.dir) == 0
}

// open creates destination for the stylesheet. File names mirror stylesheet
// path under walked source with output extension appended, so "one/a.css"
// and "two/a.css" or "a.css" and "a.less" do not overwrite each other.
func (o *outputs) open(s Stylesheet) (io.WriteCloser, error) {
	if o.toStdout() {
		return nopCloser{stdout(o.cmd)}, nil
	}

	fname := filepath.Join(o.dir, o.fileName(s.Path))
	if prev, ok := o.taken[fname]; ok {
		return nil, fmt.Errorf("%s: destination file '%s' was already written for '%s'", s.Name, fname, prev)
	}
	o.taken[fname] = s.Name

	if err := os.MkdirAll(filepath.Dir(fname), 0755); err != nil {
		return nil, fmt.Errorf("unable to create destination directory '%s': %w", filepath.Dir(fname), err)
	}
	f, err := os.Create(fname)
	if err != nil {
		return nil, fmt.Errorf("unable to create destination file '%s': %w", fname, err)
	}
	return f, nil
}

// fileName turns slash separated stylesheet path into relative file name,
// every segment cleaned up separately.
func (o *outputs) fileName(rel string) string {
	segments := strings.Split(path.Clean("/" + rel)[1:], "/")
	for i, seg := range segments {
		if o.transliterate {
			ext := path.Ext(seg)
			seg = slug.Make(strings.TrimSuffix(seg, ext)) + ext
		}
		segments[i] = config.CleanFileName(seg)
	}
	segments[len(segments)-1] += o.ext
	return filepath.Join(segments...)
}
