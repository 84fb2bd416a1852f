package domain

// NodeType discriminates the two kinds of document node.
type NodeType int

const (
	// NodeText is a run of decoded character data.
	NodeText NodeType = iota

	// NodeElement is a tag with attributes and children.
	NodeElement
)

// Attr is a single attribute of an element.
// Values are entity-decoded at parse time; names are lowercased.
type Attr struct {
	Name  string
	Value string
}

// Node is a node of a parsed HTML document.
// Each node owns its children; there are no parent pointers.
type Node struct {
	// Type selects which of the remaining fields are meaningful.
	Type NodeType

	// Tag is the lowercase tag name (elements only).
	Tag string

	// Attrs holds attributes in source order. Names are not deduplicated.
	Attrs []Attr

	// Children holds child nodes in source order (elements only).
	Children []Node

	// Data is the decoded text content (text nodes only).
	Data string
}

// Element builds an element node.
func Element(tag string, attrs []Attr, children ...Node) Node {
	return Node{
		Type:     NodeElement,
		Tag:      tag,
		Attrs:    attrs,
		Children: children,
	}
}

// Text builds a text node.
func Text(data string) Node {
	return Node{Type: NodeText, Data: data}
}

// IsElement reports whether n is an element node.
func (n Node) IsElement() bool {
	return n.Type == NodeElement
}

// IsText reports whether n is a text node.
func (n Node) IsText() bool {
	return n.Type == NodeText
}

// Attr returns the value of the first attribute with the given name.
func (n Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
