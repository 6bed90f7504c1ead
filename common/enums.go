// The only reason this package exists is because config, processing and the
// stylesheet parsers need the same enums and config should not depend on the
// parsers. So I have to separate enums into package.
package common

import (
	"path/filepath"
	"strings"
)

// Specification of stylesheet dialect, auto selects by file extension.
// ENUM(auto, css, less)
type Grammar int

// ForName resolves auto grammar for the file name.
func (g Grammar) ForName(name string) Grammar {
	if g != GrammarAuto {
		return g
	}
	if strings.EqualFold(filepath.Ext(name), ".less") {
		return GrammarLess
	}
	return GrammarCss
}

// Specification of fragment tree output.
// ENUM(text, yaml, xml, ion)
type OutputFormat int

func (o OutputFormat) Ext() string {
	switch o {
	case OutputFormatYaml:
		return ".yaml"
	case OutputFormatXml:
		return ".xml"
	case OutputFormatIon:
		return ".ion"
	default:
		return ".txt"
	}
}

// Specification of comments processing in fragment tree.
// ENUM(exclude, include)
type CommentHandling int
