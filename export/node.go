// Package export serialises fragment trees.
package export

import (
	"cssfrag/less"
)

// Node is format neutral view of a fragment. Line is zero based.
type Node struct {
	Kind      string     `yaml:"kind" ion:"kind"`
	Line      int        `yaml:"line" ion:"line"`
	Text      string     `yaml:"text,omitempty" ion:"text,omitempty"`
	Target    string     `yaml:"target,omitempty" ion:"target,omitempty"`
	Property  string     `yaml:"property,omitempty" ion:"property,omitempty"`
	Values    []string   `yaml:"values,omitempty" ion:"values,omitempty"`
	Selectors []string   `yaml:"selectors,omitempty" ion:"selectors,omitempty"`
	Parents   [][]string `yaml:"parents,omitempty" ion:"parents,omitempty"`
	Children  []Node     `yaml:"children,omitempty" ion:"children,omitempty"`
}

const (
	KindComment    = "comment"
	KindImport     = "import"
	KindProperty   = "property"
	KindValue      = "value"
	KindSelector   = "selector"
	KindMediaQuery = "media"
)

// Nodes converts fragments recursively.
func Nodes(fragments []less.Fragment) []Node {
	if len(fragments) == 0 {
		return nil
	}
	nodes := make([]Node, 0, len(fragments))
	for _, f := range fragments {
		nodes = append(nodes, NewNode(f))
	}
	return nodes
}

func NewNode(f less.Fragment) Node {
	n := Node{Line: f.SourceLineIndex()}
	switch f := f.(type) {
	case less.Comment:
		n.Kind, n.Text = KindComment, f.Content
	case less.Import:
		n.Kind, n.Text, n.Target = KindImport, f.Content, f.Target()
	case less.StylePropertyName:
		n.Kind, n.Text = KindProperty, f.Value
	case less.StylePropertyValue:
		n.Kind, n.Property, n.Values = KindValue, f.Property.Value, f.ValueSegments
	case less.Selector:
		n.Kind = KindSelector
		block(&n, f.Block)
	case less.MediaQuery:
		n.Kind = KindMediaQuery
		block(&n, f.Block)
	}
	return n
}

func block(n *Node, b less.Block) {
	n.Selectors = b.Selectors
	for _, p := range b.ParentSelectors {
		n.Parents = append(n.Parents, p)
	}
	n.Children = Nodes(b.Children)
}
