package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"cssfrag/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	ParsingConfig struct {
		Grammar  common.Grammar         `yaml:"grammar"`
		Comments common.CommentHandling `yaml:"comments"`
		MaxDepth int                    `yaml:"max_depth" validate:"min=1,max=4096"`
		// Replaces built-in list of pseudo classes when not empty
		PseudoClasses []string `yaml:"pseudo_classes,omitempty" validate:"dive,required,excludesall=:"`
		// IANA name of input encoding, when empty encoding is detected from
		// BOM and @charset rule
		Encoding string `yaml:"encoding,omitempty"`
	}

	OutputConfig struct {
		Format common.OutputFormat `yaml:"format"`
		Indent int                 `yaml:"indent" validate:"min=0,max=16"`

		// file names written with --out are transliterated to ASCII
		FileNameTransliterate bool `yaml:"file_name_transliterate"`
	}

	RenderConfig struct {
		Title        string `yaml:"title"`
		PageTemplate string `yaml:"page_template,omitempty" sanitize:"assure_file_access"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Parsing   ParsingConfig  `yaml:"parsing"`
		Output    OutputConfig   `yaml:"output"`
		Render    RenderConfig   `yaml:"render"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, title is expanded later by
	// page template
	TitleTemplateFieldName TemplateFieldName = "title"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(TitleTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("configuration sanitizing failed: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// LoadPageTemplate returns content of the configured page template or empty
// string when built-in one should be used.
func (conf *RenderConfig) LoadPageTemplate() (string, error) {
	if conf.PageTemplate == "" {
		return "", nil
	}
	data, err := os.ReadFile(conf.PageTemplate)
	if err != nil {
		return "", fmt.Errorf("unable to read page template: %w", err)
	}
	return string(data), nil
}
