package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/amazon-ion/ion-go/ion"
	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"

	"cssfrag/common"
	"cssfrag/less"
	"cssfrag/utils/debug"
)

// Write serialises fragments in requested format. Indent applies to text,
// yaml and xml output.
func Write(w io.Writer, fragments []less.Fragment, format common.OutputFormat, indent int) error {
	nodes := Nodes(fragments)
	if indent < 1 {
		indent = 2
	}

	switch format {
	case common.OutputFormatText:
		tw := debug.NewTreeWriter(indent)
		writeText(tw, nodes, 0)
		_, err := io.WriteString(w, tw.String())
		return err

	case common.OutputFormatYaml:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(indent)
		if err := enc.Encode(nodes); err != nil {
			return fmt.Errorf("unable to encode yaml: %w", err)
		}
		return enc.Close()

	case common.OutputFormatXml:
		doc := etree.NewDocument()
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
		root := doc.CreateElement("stylesheet")
		for _, n := range nodes {
			writeXML(root, n)
		}
		doc.Indent(indent)
		if _, err := doc.WriteTo(w); err != nil {
			return fmt.Errorf("unable to write xml: %w", err)
		}
		return nil

	case common.OutputFormatIon:
		if nodes == nil {
			nodes = []Node{}
		}
		data, err := ion.MarshalText(nodes)
		if err != nil {
			return fmt.Errorf("unable to encode ion: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}
	return fmt.Errorf("unsupported output format %s", format)
}

func writeText(tw *debug.TreeWriter, nodes []Node, depth int) {
	for _, n := range nodes {
		switch n.Kind {
		case KindComment:
			tw.TextBlock(depth, fmt.Sprintf("comment (line %d)", n.Line+1), n.Text)
		case KindImport:
			tw.TextBlock(depth, fmt.Sprintf("import (line %d)", n.Line+1), n.Text)
		case KindProperty:
			tw.TextBlock(depth, fmt.Sprintf("property (line %d)", n.Line+1), n.Text)
		case KindValue:
			tw.List(depth, fmt.Sprintf("value of %s (line %d)", n.Property, n.Line+1), n.Values)
		case KindSelector, KindMediaQuery:
			tw.List(depth, fmt.Sprintf("%s (line %d)", n.Kind, n.Line+1), n.Selectors)
			writeText(tw, n.Children, depth+1)
		}
	}
}

func writeXML(parent *etree.Element, n Node) {
	el := parent.CreateElement(n.Kind)
	el.CreateAttr("line", strconv.Itoa(n.Line))
	switch n.Kind {
	case KindImport:
		if n.Target != "" {
			el.CreateAttr("target", n.Target)
		}
		el.SetText(n.Text)
	case KindComment, KindProperty:
		el.SetText(n.Text)
	case KindValue:
		el.CreateAttr("property", n.Property)
		for _, v := range n.Values {
			el.CreateElement("segment").SetText(v)
		}
	case KindSelector, KindMediaQuery:
		for _, s := range n.Selectors {
			el.CreateElement("selector-text").SetText(s)
		}
		for _, c := range n.Children {
			writeXML(el, c)
		}
	}
}
