package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"

	"cssfrag/common"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Parsing.Grammar != common.GrammarAuto {
		t.Errorf("Grammar = %v, want auto", cfg.Parsing.Grammar)
	}
	if cfg.Parsing.Comments != common.CommentHandlingExclude {
		t.Errorf("Comments = %v, want exclude", cfg.Parsing.Comments)
	}
	if cfg.Parsing.MaxDepth != 256 {
		t.Errorf("MaxDepth = %d, want 256", cfg.Parsing.MaxDepth)
	}
	if len(cfg.Parsing.PseudoClasses) != 0 {
		t.Errorf("PseudoClasses = %v, want empty", cfg.Parsing.PseudoClasses)
	}
	if cfg.Output.Format != common.OutputFormatText || cfg.Output.Indent != 2 {
		t.Errorf("Output = %+v, want text with indent 2", cfg.Output)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" || cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	configPath := writeConfig(t, `version: 1
parsing:
  grammar: less
  comments: include
  max_depth: 16
  pseudo_classes: [hover, focus-within]
  encoding: windows-1251
output:
  format: xml
  indent: 4
render:
  title: "{{ .Source }}"
logging:
  console:
    level: debug
`)

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Parsing.Grammar != common.GrammarLess {
		t.Errorf("Grammar = %v, want less", cfg.Parsing.Grammar)
	}
	if cfg.Parsing.Comments != common.CommentHandlingInclude {
		t.Errorf("Comments = %v, want include", cfg.Parsing.Comments)
	}
	if cfg.Parsing.MaxDepth != 16 {
		t.Errorf("MaxDepth = %d, want 16", cfg.Parsing.MaxDepth)
	}
	if !slices.Equal(cfg.Parsing.PseudoClasses, []string{"hover", "focus-within"}) {
		t.Errorf("PseudoClasses = %v", cfg.Parsing.PseudoClasses)
	}
	if cfg.Parsing.Encoding != "windows-1251" {
		t.Errorf("Encoding = %q", cfg.Parsing.Encoding)
	}
	if cfg.Output.Format != common.OutputFormatXml || cfg.Output.Indent != 4 {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Render.Title != "{{ .Source }}" {
		t.Errorf("Title = %q, template must not be expanded", cfg.Render.Title)
	}
	// values absent from the file keep defaults
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("FileLogger.Level = %q, want default none", cfg.Logging.FileLogger.Level)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\nparsing:\n  grammar: css\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"invalid version", "version: 2\n"},
		{"invalid enum", "version: 1\nparsing:\n  grammar: sass\n"},
		{"invalid depth", "version: 1\nparsing:\n  max_depth: 0\n"},
		{"pseudo class with colon", "version: 1\nparsing:\n  pseudo_classes: [':hover']\n"},
		{"invalid indent", "version: 1\noutput:\n  indent: 100\n"},
		{"invalid log level", "version: 1\nlogging:\n  console:\n    level: verbose\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}

	t.Run("nonexistent file", func(t *testing.T) {
		if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
			t.Error("Expected error for nonexistent file")
		}
	})
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {}
	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty data")
	}
	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Parsing.Grammar = common.GrammarLess
	cfg.Output.Format = common.OutputFormatIon

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "grammar: less") || !strings.Contains(string(data), "format: ion") {
		t.Errorf("Dump() does not use enum names:\n%s", data)
	}

	loaded, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if loaded.Parsing.Grammar != common.GrammarLess || loaded.Output.Format != common.OutputFormatIon {
		t.Errorf("Dumped config lost values: %+v", loaded)
	}
}

func TestRenderConfig_LoadPageTemplate(t *testing.T) {
	conf := RenderConfig{}
	tmpl, err := conf.LoadPageTemplate()
	if err != nil || tmpl != "" {
		t.Fatalf("LoadPageTemplate() = %q, %v, want built-in", tmpl, err)
	}

	conf.PageTemplate = writeConfig(t, "<html>{{ .Body }}</html>")
	tmpl, err = conf.LoadPageTemplate()
	if err != nil {
		t.Fatalf("LoadPageTemplate() error = %v", err)
	}
	if tmpl != "<html>{{ .Body }}</html>" {
		t.Errorf("LoadPageTemplate() = %q", tmpl)
	}

	conf.PageTemplate = filepath.Join(t.TempDir(), "missing.tmpl")
	if _, err := conf.LoadPageTemplate(); err == nil {
		t.Error("expected error for missing template")
	}
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	_, err := unmarshalConfig([]byte("version: 99\n"), &Config{}, true)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "validat") {
		t.Errorf("expected error to mention validation, got: %v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error, got bare error: %v", err)
	}
}
