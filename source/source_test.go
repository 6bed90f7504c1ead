package source_test

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"cssfrag/source"
)

func newSources(t *testing.T, text string) map[string]source.Source {
	t.Helper()
	rd, err := source.NewReader(strings.NewReader(text))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	return map[string]source.Source{
		"string": source.NewString(text),
		"reader": rd,
	}
}

func TestSource_Walk(t *testing.T) {
	const text = "añ{\r\n}"
	for name, src := range newSources(t, text) {
		t.Run(name, func(t *testing.T) {
			var got []rune
			for {
				r, ok := src.Current()
				if !ok {
					break
				}
				got = append(got, r)
				src.Advance()
			}
			if string(got) != text {
				t.Fatalf("walked %q, want %q", string(got), text)
			}
			// advancing past the end is harmless
			src.Advance()
			if _, ok := src.Current(); ok {
				t.Fatal("current character available past the end")
			}
			if p := src.Peek(3); p != "" {
				t.Fatalf("peek past the end returned %q", p)
			}
		})
	}
}

func TestSource_Peek(t *testing.T) {
	for name, src := range newSources(t, "@Media ü") {
		t.Run(name, func(t *testing.T) {
			tests := []struct {
				n    int
				want string
			}{
				{0, ""},
				{1, "@"},
				{6, "@Media"},
				{8, "@Media ü"},
				{100, "@Media ü"},
			}
			for _, tt := range tests {
				if got := src.Peek(tt.n); got != tt.want {
					t.Errorf("Peek(%d) = %q, want %q", tt.n, got, tt.want)
				}
			}
			if r, _ := src.Current(); r != '@' {
				t.Fatalf("peek moved the cursor to %q", r)
			}
		})
	}
}

func TestSource_HasPrefix(t *testing.T) {
	for name, src := range newSources(t, "@Media") {
		t.Run(name, func(t *testing.T) {
			tests := []struct {
				prefix     string
				ignoreCase bool
				want       bool
			}{
				{"@media", true, true},
				{"@media", false, false},
				{"@Media", false, true},
				{"@Media ", false, false},
				{"", false, true},
				{"x", true, false},
			}
			for _, tt := range tests {
				if got := src.HasPrefix(tt.prefix, tt.ignoreCase); got != tt.want {
					t.Errorf("HasPrefix(%q, %v) = %v, want %v", tt.prefix, tt.ignoreCase, got, tt.want)
				}
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestNewReader_Error(t *testing.T) {
	if _, err := source.NewReader(failingReader{}); err == nil {
		t.Fatal("expected read error")
	}
}

func TestSource_InvalidUTF8(t *testing.T) {
	const text = "a\xffb\xe2\x82"
	for name, src := range newSources(t, text) {
		t.Run(name, func(t *testing.T) {
			if p := src.Peek(5); p != text {
				t.Fatalf("Peek(5) = %q, want %q", p, text)
			}
			var (
				raw   strings.Builder
				chars int
			)
			for {
				r, ok := src.Current()
				if !ok {
					break
				}
				if chars == 1 && r != utf8.RuneError {
					t.Errorf("invalid byte decoded as %q", r)
				}
				raw.WriteString(src.Peek(1))
				chars++
				src.Advance()
			}
			if raw.String() != text {
				t.Errorf("raw characters %q, want %q", raw.String(), text)
			}
			if chars != 5 {
				t.Errorf("got %d characters, want 5", chars)
			}
		})
	}
}
