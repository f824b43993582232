package record

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// coerceValue converts loose construction input to the canonical value for
// the field's declared kind. A nil input clears the field.
func coerceValue(field *Field, value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}

	switch field.Kind {
	case StringField:
		if s, ok := value.(string); ok {
			return s, nil
		}
	case DateTimeField:
		switch v := value.(type) {
		case time.Time:
			return NormalizeTime(v), nil
		case string:
			t, err := ParseMetadataTime(v)
			if err != nil {
				return nil, &CoercionError{Field: field.Name, Value: value, Reason: err.Error()}
			}
			return t, nil
		}
	case IntField:
		switch v := value.(type) {
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		case float64:
			if v != math.Trunc(v) {
				return nil, &CoercionError{Field: field.Name, Value: value, Reason: "value is not an integer"}
			}
			return int64(v), nil
		case string:
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, &CoercionError{Field: field.Name, Value: value, Reason: err.Error()}
			}
			return n, nil
		}
	case DoubleField:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, &CoercionError{Field: field.Name, Value: value, Reason: err.Error()}
			}
			return f, nil
		}
	case RecordField:
		return coerceRecord(field, value)
	case RecordListField:
		return coerceRecordList(field, value)
	case ParametersField:
		switch v := value.(type) {
		case Parameters:
			return v, nil
		case []Parameter:
			return Parameters(v), nil
		case map[string]string:
			return ParametersFromMap(v), nil
		}
	}

	return nil, &CoercionError{Field: field.Name, Value: value, Reason: fmt.Sprintf("type %T is not accepted for %s fields", value, field.Kind)}
}

func coerceRecord(field *Field, value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case Record:
		return v, nil
	case Fields:
		return recordFromFields(field, v)
	case map[string]interface{}:
		return recordFromFields(field, Fields(v))
	case []float64:
		return recordFromPositional(field, v)
	case []int:
		values := make([]float64, len(v))
		for i, n := range v {
			values[i] = float64(n)
		}
		return recordFromPositional(field, values)
	}
	return nil, &CoercionError{Field: field.Name, Value: value, Reason: fmt.Sprintf("type %T is not accepted for record fields", value)}
}

func recordFromFields(field *Field, fields Fields) (Record, error) {
	nested := field.New()
	if err := applyFields(nested, fields, nil, false); err != nil {
		return nil, err
	}
	return nested, nil
}

func recordFromPositional(field *Field, values []float64) (Record, error) {
	nested := field.New()
	positional, ok := nested.(Positional)
	if !ok {
		return nil, &CoercionError{Field: field.Name, Value: values, Reason: fmt.Sprintf("%s records do not accept positional values", nested.Schema().Tag)}
	}
	if err := positional.SetPositional(values); err != nil {
		return nil, &CoercionError{Field: field.Name, Value: values, Reason: err.Error()}
	}
	return nested, nil
}

func coerceRecordList(field *Field, value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case []Record:
		return v, nil
	case []interface{}:
		records := make([]Record, len(v))
		for i, item := range v {
			coerced, err := coerceRecord(field, item)
			if err != nil {
				return nil, err
			}
			records[i] = coerced.(Record)
		}
		return records, nil
	case []Fields:
		records := make([]Record, len(v))
		for i, item := range v {
			rec, err := recordFromFields(field, item)
			if err != nil {
				return nil, err
			}
			records[i] = rec
		}
		return records, nil
	}
	return nil, &CoercionError{Field: field.Name, Value: value, Reason: fmt.Sprintf("type %T is not accepted for list fields", value)}
}

// parseScalar converts serialized text to the canonical value for a scalar
// field kind.
func parseScalar(field *Field, text string) (interface{}, error) {
	switch field.Kind {
	case StringField:
		return text, nil
	case DateTimeField:
		t, err := ParseMetadataTime(text)
		if err != nil {
			return nil, &ParseError{Field: field.Name, Text: text, Err: err}
		}
		return t, nil
	case IntField:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, &ParseError{Field: field.Name, Text: text, Err: err}
		}
		return n, nil
	case DoubleField:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &ParseError{Field: field.Name, Text: text, Err: err}
		}
		return f, nil
	}
	return nil, &ParseError{Field: field.Name, Text: text, Err: fmt.Errorf("%s is not a scalar field kind", field.Kind)}
}

// formatScalar writes a canonical scalar value as serialized text.
func formatScalar(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		return FormatMetadataTime(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", value)
}
