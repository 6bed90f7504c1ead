package process

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap/zaptest"

	"cssfrag/state"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runWithInput(t, "", args...)
}

func runWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	ctx, err := state.ContextWithDefaults(context.Background(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("ContextWithDefaults() error = %v", err)
	}
	var out bytes.Buffer
	root := &cli.Command{
		Name:     "cssfrag",
		Reader:   strings.NewReader(input),
		Writer:   &out,
		Commands: Commands(nil),
	}
	err = root.Run(ctx, append([]string{"cssfrag"}, args...))
	return out.String(), err
}

const siteCSS = "@import url(base.css);\n@media print {\n  a, b { color: red; }\n}\n"

func prepareSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"site.css":   siteCSS,
		"theme.less": ".box { .inner { margin: 0 auto; } }\n",
	})
	return dir
}

func TestTokens(t *testing.T) {
	dir := prepareSite(t)
	out, err := run(t, "tokens", filepath.Join(dir, "site.css"))
	if err != nil {
		t.Fatalf("tokens error = %v", err)
	}
	for _, want := range []string{
		"# " + filepath.Join(dir, "site.css") + " (css)",
		`     0  SelectorOrStyleProperty  "@import"`,
		`OpenBrace                "{"`,
		`Value                    "red"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestTokens_Stdin(t *testing.T) {
	out, err := runWithInput(t, "a { b: \"\xff\" }", "tokens", "-")
	if err != nil {
		t.Fatalf("tokens error = %v", err)
	}
	for _, want := range []string{
		"# STDIN (css)",
		`     0  SelectorOrStyleProperty  "a"`,
		`     7  Value                    "\"\xff\""`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}

	out, err = runWithInput(t, "@c: red; // x\n", "tokens", "--grammar", "less", "-")
	if err != nil {
		t.Fatalf("tokens error = %v", err)
	}
	if !strings.Contains(out, "# STDIN (less)") || !strings.Contains(out, `Comment                  "// x\n"`) {
		t.Errorf("stdin is not tokenized as less:\n%s", out)
	}
}

func TestTree(t *testing.T) {
	dir := prepareSite(t)

	out, err := run(t, "tree", dir)
	if err != nil {
		t.Fatalf("tree error = %v", err)
	}
	for _, want := range []string{
		`import (line 1): "url(base.css)"`,
		`media (line 2): "@media print"`,
		`  selector (line 3): "a" "b"`,
		"\nselector (line 1): \".box\"",
		`    value of margin (line 1): "0" "auto"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "site.css") > strings.Index(out, "theme.less") {
		t.Errorf("stylesheets are not in natural order:\n%s", out)
	}

	outDir := filepath.Join(t.TempDir(), "out")
	if _, err := run(t, "tree", "--format", "yaml", "--out", outDir, dir); err != nil {
		t.Fatalf("tree --out error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "theme.less.yaml"))
	if err != nil {
		t.Fatalf("tree output not written: %v", err)
	}
	if !strings.Contains(string(data), "kind: selector") {
		t.Errorf("unexpected yaml:\n%s", data)
	}

	if _, err := run(t, "tree", "--format", "json", dir); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := run(t, "tree", "--grammar", "sass", dir); err == nil {
		t.Error("expected error for unknown grammar")
	}
	if _, err := run(t, "tree"); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestTree_OutputNamesDoNotCollide(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"one/a.css": "one { x: 1; }",
		"two/a.css": "two { x: 2; }",
		"a.less":    "three { x: 3; }",
	})
	outDir := filepath.Join(t.TempDir(), "out")
	if _, err := run(t, "tree", "--out", outDir, dir); err != nil {
		t.Fatalf("tree --out error = %v", err)
	}
	for name, want := range map[string]string{
		filepath.Join("one", "a.css.txt"): `"one"`,
		filepath.Join("two", "a.css.txt"): `"two"`,
		"a.less.txt":                      `"three"`,
	} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Errorf("output %s not written: %v", name, err)
			continue
		}
		if !strings.Contains(string(data), want) {
			t.Errorf("%s holds wrong tree:\n%s", name, data)
		}
	}

	// same base name from two sources cannot share destination
	outDir = filepath.Join(t.TempDir(), "out")
	_, err := run(t, "tree", "--out", outDir, filepath.Join(dir, "one", "a.css"), filepath.Join(dir, "two", "a.css"))
	if err == nil || !strings.Contains(err.Error(), "already written") {
		t.Fatalf("got %v, want destination conflict", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "a.css.txt"))
	if err != nil || !strings.Contains(string(data), `"one"`) {
		t.Errorf("first output was lost: %q, %v", data, err)
	}
}

func TestTree_BrokenStylesheet(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.css": "{ x: y; }",
		"b.css": "b { x: y; }",
	})
	out, err := run(t, "tree", dir)
	if err == nil {
		t.Fatal("expected error for broken stylesheet")
	}
	if !strings.Contains(out, `selector (line 1): "b"`) {
		t.Errorf("remaining stylesheets must be processed:\n%s", out)
	}
}

func TestRender(t *testing.T) {
	dir := prepareSite(t)
	out, err := run(t, "render", filepath.Join(dir, "site.css"))
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<span class="kwd">color</span>`,
		`<span class="str">red</span>`,
		"site.css",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestIndexAndLookup(t *testing.T) {
	dir := prepareSite(t)
	db := filepath.Join(t.TempDir(), "styles.db")

	if _, err := run(t, "index", db, dir); err != nil {
		t.Fatalf("index error = %v", err)
	}

	out, err := run(t, "lookup", db, "margin")
	if err != nil {
		t.Fatalf("lookup error = %v", err)
	}
	want := filepath.Join(dir, "theme.less") + ":1: .box / .inner { margin: 0 auto }\n"
	if out != want {
		t.Errorf("lookup output = %q, want %q", out, want)
	}

	out, err = run(t, "lookup", db, "padding")
	if err != nil || out != "" {
		t.Errorf("lookup of absent property = %q, %v", out, err)
	}

	if _, err := run(t, "lookup", filepath.Join(t.TempDir(), "missing.db"), "margin"); err == nil {
		t.Error("expected error for missing index")
	}
	if _, err := run(t, "index", db); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestDumpConfig(t *testing.T) {
	out, err := run(t, "dumpconfig")
	if err != nil {
		t.Fatalf("dumpconfig error = %v", err)
	}
	if !strings.Contains(out, "version: 1") || !strings.Contains(out, "grammar: auto") {
		t.Errorf("unexpected configuration:\n%s", out)
	}

	fname := filepath.Join(t.TempDir(), "defaults.yaml")
	if _, err := run(t, "dumpconfig", "--default", fname); err != nil {
		t.Fatalf("dumpconfig --default error = %v", err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "parsing:") {
		t.Errorf("unexpected default configuration:\n%s", data)
	}
}
