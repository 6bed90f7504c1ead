package index_test

import (
	"path/filepath"
	"slices"
	"testing"

	"cssfrag/css"
	"cssfrag/index"
	"cssfrag/less"
)

func parse(t *testing.T, text string) []less.Fragment {
	t.Helper()
	fragments, err := less.ParseIntoStructuredData(css.ParseLESS(text), less.ExcludeComments)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return fragments
}

func TestLookupProperty(t *testing.T) {
	db, err := index.Open(filepath.Join(t.TempDir(), "index.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if err := db.Add("b.less", parse(t, "a {\n  color: red;\n  .inner { color: blue green; }\n}\n")); err != nil {
		t.Fatalf("Add b.less: %v", err)
	}
	if err := db.Add("a.css", parse(t, "@media print {\n  p { Color: black; }\n}\n")); err != nil {
		t.Fatalf("Add a.css: %v", err)
	}

	got, err := db.LookupProperty("COLOR")
	if err != nil {
		t.Fatalf("LookupProperty: %v", err)
	}
	want := []index.Match{
		{File: "a.css", Line: 2, Selector: "@media print / p", Value: "black"},
		{File: "b.less", Line: 2, Selector: "a", Value: "red"},
		{File: "b.less", Line: 3, Selector: "a / .inner", Value: "blue green"},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("LookupProperty:\n got %+v\nwant %+v", got, want)
	}

	none, err := db.LookupProperty("margin")
	if err != nil {
		t.Fatalf("LookupProperty: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %+v", none)
	}
}

func TestAddReplaces(t *testing.T) {
	db, err := index.Open(":memory:", nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if err := db.Add("site.css", parse(t, "a { width: 1px; }")); err != nil {
		t.Fatal(err)
	}
	if err := db.Add("site.css", parse(t, "b { width: 2px; }")); err != nil {
		t.Fatal(err)
	}

	files, err := db.Files()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(files, []string{"site.css"}) {
		t.Fatalf("Files = %v", files)
	}
	got, err := db.LookupProperty("width")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Value != "2px" || got[0].Selector != "b" {
		t.Fatalf("stale entries after re-adding: %+v", got)
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	db, err := index.Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Add("x.css", parse(t, "x { top: 0; }")); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db, err = index.Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	got, err := db.LookupProperty("top")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].File != "x.css" || got[0].Line != 1 {
		t.Fatalf("unexpected matches after reopen: %+v", got)
	}
}
