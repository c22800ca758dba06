// Package svgdoc parses a vector venue drawing into a generic element tree.
//
// The tree is deliberately dumb: tags, attributes and children, nothing more.
// Interpretation (seat containers, seat identifiers, size derivation) belongs to
// the binding layer so drawings authored with arbitrary extra graphics still
// parse cleanly.
package svgdoc

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	dErrors "boxoffice/pkg/domain-errors"
)

// Attr is a single element attribute. Order is preserved from the document.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Node is one element of the drawing tree. Text nodes carry only Text.
type Node struct {
	Tag      string  `json:"tag,omitempty"`
	Text     string  `json:"text,omitempty"`
	Attrs    []Attr  `json:"attrs,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Parse reads an XML vector document and returns the root drawing node, which is
// the first top-level element with the "svg" tag.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var stack []*Node
	var roots []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed drawing document")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Tag: t.Name.Local}
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				roots = append(roots, node)
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, dErrors.New(dErrors.CodeBadRequest, "malformed drawing document: unbalanced end tag")
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text == "" || len(stack) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{Text: text})
		}
	}

	for _, root := range roots {
		if root.Tag == "svg" {
			return root, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeBadRequest, "drawing document has no root svg element")
}

// ParseString is Parse over an in-memory document.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool {
	return n.Tag == "" && n.Text != ""
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// ID returns the element identifier attribute, if any.
func (n *Node) ID() string {
	v, _ := n.Attr("id")
	return v
}

// FloatAttr parses the named attribute as a float. Missing or non-numeric
// attributes are an invalid-geometry condition for the caller to handle.
func (n *Node) FloatAttr(name string) (float64, error) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, dErrors.Newf(dErrors.CodeInvalidGeometry, "element %q has no %q attribute", n.Tag, name)
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeInvalidGeometry, "element %q attribute %q is not numeric: %q", n.Tag, name, v)
	}
	return f, nil
}

// SetAttr replaces or appends the named attribute.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// RemoveAttr drops the named attribute if present.
func (n *Node) RemoveAttr(name string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return
		}
	}
}

// ViewBox returns the four fields of a viewBox attribute.
func (n *Node) ViewBox() (minX, minY, width, height float64, err error) {
	raw, ok := n.Attr("viewBox")
	if !ok {
		return 0, 0, 0, 0, dErrors.Newf(dErrors.CodeInvalidGeometry, "element %q has no viewBox attribute", n.Tag)
	}
	fields := strings.Fields(raw)
	if len(fields) != 4 {
		return 0, 0, 0, 0, dErrors.Newf(dErrors.CodeInvalidGeometry, "invalid viewBox: %q", raw)
	}
	vals := make([]float64, 4)
	for i, f := range fields {
		vals[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, 0, 0, dErrors.Newf(dErrors.CodeInvalidGeometry, "invalid viewBox: %q", raw)
		}
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}
