// Copyright 2019, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package record

// Metadata record types declare their fields in a static schema table, one
// Schema per type, listed in serialization order. The generic construction,
// validation and XML binding routines in this package consult the table, so
// individual records carry no schema state of their own.

// Kind identifies the semantic type of a declared field.
type Kind string

// The supported field kinds.
const (
	StringField     Kind = "string"
	DateTimeField   Kind = "datetime"
	IntField        Kind = "int"
	DoubleField     Kind = "double"
	RecordField     Kind = "record"
	RecordListField Kind = "list"
	ParametersField Kind = "parameters"
)

// Field describes one declared field of a record type.
type Field struct {
	Name     string
	Kind     Kind
	Required bool

	// Attribute serializes a scalar as an attribute of the record element
	// instead of a child element.
	Attribute bool

	// DefaultNow substitutes the current UTC time when a DateTimeField is
	// absent at construction. Decoding never applies defaults.
	DefaultNow bool

	// Array and ChildTag fix the serialized shape of RecordListField and
	// ParametersField values. Array=false writes the entries as sibling
	// elements tagged ChildTag directly under the record element;
	// Array=true wraps them in a single container element named after the
	// field.
	Array    bool
	ChildTag string

	// New allocates an empty nested record, for RecordField and
	// RecordListField decoding and map construction.
	New func() Record
}

// Schema is the static field table of a record type. Record types share one
// Schema value per type, so schema identity is pointer identity.
type Schema struct {
	Tag    string
	Fields []Field
}

// Field returns the declared field with the given name, or nil.
func (s *Schema) Field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// Record is implemented by all metadata record types.
//
// Field and SetField traffic in canonical values: string, time.Time, int64,
// float64, Record, []Record and Parameters. Field returns nil for an unset
// field; SetField with a nil value clears one. Both panic with *SchemaError
// when the name is not part of the declared schema.
type Record interface {
	Schema() *Schema
	Field(name string) interface{}
	SetField(name string, value interface{}) error
	Namespace() *Namespace
	SetNamespace(*Namespace)
}

// Positional is implemented by record types that can populate themselves from
// a fixed-arity sequence of numeric values, such as (row, column) pairs.
type Positional interface {
	SetPositional(values []float64) error
}

// Namespace is the XML namespace context a record serializes under.
type Namespace struct {
	URI    string
	Prefix string
}

// NS carries a per-record namespace override. Record types embed it; a record
// with no override inherits the namespace passed down from its parent during
// encoding and decoding. The override is transient serialization context and
// takes no part in Equal.
type NS struct {
	ns *Namespace
}

// Namespace returns the record's namespace override, or nil.
func (x *NS) Namespace() *Namespace { return x.ns }

// SetNamespace sets the record's namespace override.
func (x *NS) SetNamespace(ns *Namespace) { x.ns = ns }

// Fields is loosely-typed construction input for Apply, keyed by declared
// field name.
type Fields map[string]interface{}
