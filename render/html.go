// Package render turns categorised runs into pretty printed HTML.
package render

import (
	"bufio"
	"io"
	"iter"
	"strings"

	"golang.org/x/net/html"

	"cssfrag/css"
)

// Class returns prettify class used for the run category. Selectors and
// property names share category, property names (followed by a colon) get
// "kwd" while selectors get "typ".
func Class(cat css.Category, beforeColon bool) string {
	switch cat {
	case css.CategoryValue:
		return "str"
	case css.CategoryOpenBrace, css.CategoryCloseBrace, css.CategorySemiColon, css.CategoryStylePropertyColon:
		return "pun"
	case css.CategoryComment:
		return "com"
	case css.CategorySelectorOrStyleProperty:
		if beforeColon {
			return "kwd"
		}
		return "typ"
	case css.CategoryWhitespace:
		return "pln"
	}
	return ""
}

// WriteHTML renders runs as sequence of spans. Selector text is held back
// until the next significant run shows whether it was property name.
func WriteHTML(w io.Writer, runs iter.Seq[css.Run]) error {
	bw := bufio.NewWriter(w)

	var held []css.Run // selector run followed by whitespace and comments
	release := func(beforeColon bool) {
		for i, run := range held {
			writeRun(bw, run, i == 0 && beforeColon)
		}
		held = held[:0]
	}

	for run := range runs {
		switch {
		case len(held) > 0 && (run.Category == css.CategoryWhitespace || run.Category == css.CategoryComment):
			held = append(held, run)
			continue
		case len(held) > 0:
			release(run.Category == css.CategoryStylePropertyColon)
		}
		if run.Category == css.CategorySelectorOrStyleProperty {
			held = append(held, run)
			continue
		}
		writeRun(bw, run, false)
	}
	release(false)
	return bw.Flush()
}

// HTML renders runs into a string.
func HTML(runs iter.Seq[css.Run]) string {
	var sb strings.Builder
	_ = WriteHTML(&sb, runs)
	return sb.String()
}

func writeRun(w *bufio.Writer, run css.Run, beforeColon bool) {
	class := Class(run.Category, beforeColon)
	if class != "" {
		w.WriteString(`<span class="`)
		w.WriteString(class)
		w.WriteString(`">`)
	}
	if run.Category == css.CategoryWhitespace {
		w.WriteString(whitespace(run.Text))
	} else {
		w.WriteString(html.EscapeString(run.Text))
	}
	if class != "" {
		w.WriteString("</span>")
	}
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// whitespace keeps spacing visible: runs of spaces become "&nbsp; " pairs
// and line breaks become <br/>.
func whitespace(text string) string {
	s := html.EscapeString(newlines.Replace(text))
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", "&nbsp; ")
	}
	return strings.ReplaceAll(s, "\n", "<br/>")
}
