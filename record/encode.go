package record

import "github.com/venicegeo/sidd-go/xmldoc"

// Encode maps a record to an XML element. The element is named tag, or the
// schema tag when tag is empty, and is placed under the record's namespace
// override when present, else the inherited ns. Unset fields are skipped and
// no validation is performed, so an incomplete record yields an incomplete
// element; callers that need completeness gate on Validate first.
func Encode(rec Record, tag string, ns *Namespace) (*xmldoc.Node, error) {
	effective := ns
	if override := rec.Namespace(); override != nil {
		effective = override
	}

	if tag == "" {
		tag = rec.Schema().Tag
	}
	node := newElement(tag, effective)

	schema := rec.Schema()
	for i := range schema.Fields {
		field := &schema.Fields[i]
		value := rec.Field(field.Name)
		if value == nil {
			continue
		}

		switch field.Kind {
		case RecordField:
			child, err := Encode(value.(Record), field.Name, effective)
			if err != nil {
				return nil, err
			}
			node.AddChild(child)
		case RecordListField:
			parent := node
			if field.Array {
				parent = newElement(field.Name, effective)
				node.AddChild(parent)
			}
			for _, item := range value.([]Record) {
				child, err := Encode(item, field.ChildTag, effective)
				if err != nil {
					return nil, err
				}
				parent.AddChild(child)
			}
		case ParametersField:
			for _, param := range value.(Parameters) {
				child := newElement(field.ChildTag, effective)
				child.SetAttr("name", param.Name)
				child.Text = param.Value
				node.AddChild(child)
			}
		default:
			text := formatScalar(value)
			if field.Attribute {
				node.SetAttr(field.Name, text)
			} else {
				child := newElement(field.Name, effective)
				child.Text = text
				node.AddChild(child)
			}
		}
	}

	return node, nil
}

func newElement(tag string, ns *Namespace) *xmldoc.Node {
	node := &xmldoc.Node{Tag: tag}
	if ns != nil {
		node.Space = ns.URI
		node.Prefix = ns.Prefix
	}
	return node
}
