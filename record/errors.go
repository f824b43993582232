package record

import (
	"fmt"
	"strings"
)

// ValidationError reports required fields that are unset. Missing holds
// dotted paths relative to the validated record, in schema order.
type ValidationError struct {
	Tag     string
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s record is missing required fields: %s", e.Tag, strings.Join(e.Missing, ", "))
}

// CoercionError reports a construction value that cannot be converted to its
// field's declared kind.
type CoercionError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("Cannot coerce value `%v` for field %s: %s", e.Value, e.Field, e.Reason)
}

// ParseError reports serialized content that cannot be parsed during
// decoding.
type ParseError struct {
	Field string
	Text  string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Cannot parse value `%s` for field %s: %v", e.Text, e.Field, e.Err)
}

// SchemaError reports use of a field name that is not part of a record's
// declared schema. It is a programming error, not an input error, and is
// raised as a panic.
type SchemaError struct {
	Tag  string
	Name string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("Field %s is not declared by the %s schema", e.Name, e.Tag)
}
