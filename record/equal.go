package record

import "time"

// Equal reports whether two records have the same schema and the same field
// values. Namespace context is ignored: two records that differ only in the
// namespace they serialize under are equal.
func Equal(a, b Record) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	schema := a.Schema()
	if schema != b.Schema() {
		return false
	}

	for i := range schema.Fields {
		field := &schema.Fields[i]
		if !valueEqual(field, a.Field(field.Name), b.Field(field.Name)) {
			return false
		}
	}
	return true
}

func valueEqual(field *Field, a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch field.Kind {
	case DateTimeField:
		return a.(time.Time).Equal(b.(time.Time))
	case RecordField:
		return Equal(a.(Record), b.(Record))
	case RecordListField:
		listA, listB := a.([]Record), b.([]Record)
		if len(listA) != len(listB) {
			return false
		}
		for i := range listA {
			if !Equal(listA[i], listB[i]) {
				return false
			}
		}
		return true
	case ParametersField:
		paramsA, paramsB := a.(Parameters), b.(Parameters)
		if len(paramsA) != len(paramsB) {
			return false
		}
		for i := range paramsA {
			if paramsA[i] != paramsB[i] {
				return false
			}
		}
		return true
	}
	return a == b
}
