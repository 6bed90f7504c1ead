package process

import (
	"path/filepath"
	"testing"
)

func TestOutputs_FileName(t *testing.T) {
	tests := []struct {
		name          string
		rel           string
		transliterate bool
		want          string
	}{
		{"base name", "a.css", false, "a.css.txt"},
		{"nested", "one/a.css", false, filepath.Join("one", "a.css.txt")},
		{"less keeps its extension", "a.less", false, "a.less.txt"},
		{"parent references", "../x/./a.less", false, filepath.Join("x", "a.less.txt")},
		{"hidden file", ".hidden.css", false, "hidden.css.txt"},
		{"transliterated", "Café Menu/Main Page.css", true, filepath.Join("cafe-menu", "main-page.css.txt")},
		{"kept as is", "Café Menu/Main Page.css", false, filepath.Join("Café Menu", "Main Page.css.txt")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &outputs{ext: ".txt", transliterate: tt.transliterate}
			if got := o.fileName(tt.rel); got != tt.want {
				t.Errorf("fileName(%q) = %q, want %q", tt.rel, got, tt.want)
			}
		})
	}
}
