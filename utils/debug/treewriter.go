// Package debug has helpers producing human readable dumps of parsed data.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented lines, one per tree node or node field.
type TreeWriter struct {
	w      *strings.Builder
	indent string
}

// NewTreeWriter creates writer indenting every level by the given number of
// spaces, values below 1 select 2.
func NewTreeWriter(indent int) *TreeWriter {
	if indent < 1 {
		indent = 2
	}
	return &TreeWriter{
		w:      &strings.Builder{},
		indent: strings.Repeat(" ", indent),
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// List writes label followed by every value quoted, values separated by
// spaces.
func (tw TreeWriter) List(depth int, label string, values []string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteByte(':')
	for _, v := range values {
		tw.w.WriteByte(' ')
		tw.w.WriteString(strconv.Quote(v))
	}
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
