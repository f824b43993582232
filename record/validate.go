package record

import "fmt"

// Validate verifies that every required field of the record is set, recursing
// into nested records and lists. The returned ValidationError names all
// missing fields by dotted path, so one pass reports everything.
func Validate(rec Record) error {
	missing := missingFields(rec, "")
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Tag: rec.Schema().Tag, Missing: missing}
}

func missingFields(rec Record, prefix string) []string {
	var missing []string

	schema := rec.Schema()
	for i := range schema.Fields {
		field := &schema.Fields[i]
		value := rec.Field(field.Name)

		if value == nil {
			if field.Required {
				missing = append(missing, prefix+field.Name)
			}
			continue
		}

		switch field.Kind {
		case RecordField:
			missing = append(missing, missingFields(value.(Record), prefix+field.Name+".")...)
		case RecordListField:
			for idx, item := range value.([]Record) {
				missing = append(missing, missingFields(item, fmt.Sprintf("%s%s[%d].", prefix, field.Name, idx))...)
			}
		}
	}

	return missing
}
