package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// SIDD-style metadata documents are schema-driven trees rather than fixed Go
// structs, so struct-tag unmarshaling is not usable here. This package keeps a
// plain element tree that record schemas can walk in both directions.

// Attr is a single attribute on a Node. Namespace declarations never appear
// here; they are resolved during parsing and re-created during serialization.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of a metadata document tree.
type Node struct {
	Tag      string
	Prefix   string
	Space    string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// AddChild appends a child element.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Child returns the first child with the given local tag, or nil if there is none.
func (n *Node) Child(tag string) *Node {
	for _, child := range n.Children {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// ChildrenByTag returns all children with the given local tag, in document order.
func (n *Node) ChildrenByTag(tag string) []*Node {
	var matched []*Node
	for _, child := range n.Children {
		if child.Tag == tag {
			matched = append(matched, child)
		}
	}
	return matched
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing any existing value.
func (n *Node) SetAttr(name, value string) {
	for i, attr := range n.Attrs {
		if attr.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Parse reads a serialized XML document into a Node tree rooted at the document
// element. Element namespace URIs are resolved into Node.Space, so trees built
// by Parse carry no xmlns attributes and no prefixes.
func Parse(data []byte) (*Node, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var root *Node
	var stack []*Node

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing XML document: %v", err)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			node := &Node{Tag: tok.Name.Local, Space: tok.Name.Space}
			for _, attr := range tok.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
					continue
				}
				node.Attrs = append(node.Attrs, Attr{Name: attr.Name.Local, Value: attr.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("document has more than one root element")
				}
				root = node
			} else {
				stack[len(stack)-1].AddChild(node)
			}
			stack = append(stack, node)
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(tok)
			}
		case xml.EndElement:
			top := stack[len(stack)-1]
			top.Text = strings.TrimSpace(top.Text)
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, errors.New("document has no root element")
	}
	return root, nil
}

// String serializes the tree compactly. A namespace is declared on the
// outermost element where it takes effect; descendants sharing it are written
// without re-declaring.
func (n *Node) String() string {
	var buf bytes.Buffer
	n.write(&buf, "", "")
	return buf.String()
}

// Document serializes the tree as a standalone XML document.
func (n *Node) Document() string {
	return xml.Header + n.String()
}

func (n *Node) write(buf *bytes.Buffer, inheritedSpace, inheritedPrefix string) {
	name := n.Tag
	if n.Prefix != "" {
		name = n.Prefix + ":" + n.Tag
	}

	buf.WriteByte('<')
	buf.WriteString(name)

	space, prefix := inheritedSpace, inheritedPrefix
	if n.Space != "" {
		if n.Space != inheritedSpace || n.Prefix != inheritedPrefix {
			if n.Prefix != "" {
				buf.WriteString(` xmlns:` + n.Prefix + `="`)
			} else {
				buf.WriteString(` xmlns="`)
			}
			xml.EscapeText(buf, []byte(n.Space))
			buf.WriteByte('"')
		}
		space, prefix = n.Space, n.Prefix
	}

	for _, attr := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(attr.Name)
		buf.WriteString(`="`)
		xml.EscapeText(buf, []byte(attr.Value))
		buf.WriteByte('"')
	}

	if n.Text == "" && len(n.Children) == 0 {
		buf.WriteString("/>")
		return
	}

	buf.WriteByte('>')
	xml.EscapeText(buf, []byte(n.Text))
	for _, child := range n.Children {
		child.write(buf, space, prefix)
	}
	buf.WriteString("</")
	buf.WriteString(name)
	buf.WriteByte('>')
}
