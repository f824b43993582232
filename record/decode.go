package record

import (
	"fmt"

	"github.com/venicegeo/sidd-go/xmldoc"
)

// Decode populates a record from an XML element. Declared children that are
// absent leave their fields unset, for Validate to report; unknown children
// are ignored. When the element's namespace differs from the inherited ns,
// the difference is kept as the record's override so the document
// re-serializes the way it arrived.
func Decode(rec Record, node *xmldoc.Node, ns *Namespace) error {
	effective := ns
	if node.Space != "" && (ns == nil || node.Space != ns.URI) {
		override := &Namespace{URI: node.Space, Prefix: node.Prefix}
		rec.SetNamespace(override)
		effective = override
	}

	schema := rec.Schema()
	for i := range schema.Fields {
		field := &schema.Fields[i]

		switch field.Kind {
		case RecordField:
			child := node.Child(field.Name)
			if child == nil {
				continue
			}
			nested := field.New()
			if err := Decode(nested, child, effective); err != nil {
				return err
			}
			if err := rec.SetField(field.Name, nested); err != nil {
				return err
			}
		case RecordListField:
			parent := node
			if field.Array {
				if parent = node.Child(field.Name); parent == nil {
					continue
				}
			}
			elements := parent.ChildrenByTag(field.ChildTag)
			if len(elements) == 0 {
				continue
			}
			items := make([]Record, len(elements))
			for idx, element := range elements {
				nested := field.New()
				if err := Decode(nested, element, effective); err != nil {
					return err
				}
				items[idx] = nested
			}
			if err := rec.SetField(field.Name, items); err != nil {
				return err
			}
		case ParametersField:
			elements := node.ChildrenByTag(field.ChildTag)
			if len(elements) == 0 {
				continue
			}
			params := make(Parameters, len(elements))
			for idx, element := range elements {
				name, ok := element.Attr("name")
				if !ok {
					return &ParseError{Field: field.Name, Text: element.Text, Err: fmt.Errorf("%s element has no name attribute", field.ChildTag)}
				}
				params[idx] = Parameter{Name: name, Value: element.Text}
			}
			if err := rec.SetField(field.Name, params); err != nil {
				return err
			}
		default:
			var text string
			var present bool
			if field.Attribute {
				text, present = node.Attr(field.Name)
			} else if child := node.Child(field.Name); child != nil {
				text, present = child.Text, true
			}
			if !present {
				continue
			}
			value, err := parseScalar(field, text)
			if err != nil {
				return err
			}
			if err = rec.SetField(field.Name, value); err != nil {
				return err
			}
		}
	}

	return nil
}
