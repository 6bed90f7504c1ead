package common

import "testing"

func TestGrammar_ForName(t *testing.T) {
	tests := []struct {
		grammar Grammar
		name    string
		want    Grammar
	}{
		{GrammarAuto, "site.less", GrammarLess},
		{GrammarAuto, "THEME.LESS", GrammarLess},
		{GrammarAuto, "site.css", GrammarCss},
		{GrammarAuto, "less", GrammarCss},
		{GrammarCss, "site.less", GrammarCss},
		{GrammarLess, "site.css", GrammarLess},
	}
	for _, tt := range tests {
		if got := tt.grammar.ForName(tt.name); got != tt.want {
			t.Errorf("%s.ForName(%q) = %s, want %s", tt.grammar, tt.name, got, tt.want)
		}
	}
}

func TestOutputFormat_Text(t *testing.T) {
	var f OutputFormat
	if err := f.UnmarshalText([]byte("xml")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if f != OutputFormatXml || f.Ext() != ".xml" {
		t.Fatalf("got %s (%s)", f, f.Ext())
	}
	if err := f.UnmarshalText([]byte("json")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
