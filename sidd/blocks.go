package sidd

import (
	"fmt"
	"math"

	"github.com/venicegeo/sidd-go/record"
)

// Pixel-grid 2-vectors used by the chip geometry. Row and Col are pointers so
// an unset coordinate is distinguishable from zero, which is a legitimate
// grid position.

var rowColIntSchema = &record.Schema{
	Tag: "RowColInt",
	Fields: []record.Field{
		{Name: "Row", Kind: record.IntField, Required: true},
		{Name: "Col", Kind: record.IntField, Required: true},
	},
}

// RowColInt is an integer (row, column) pair.
type RowColInt struct {
	record.NS
	Row *int64
	Col *int64
}

// NewRowColInt creates a fully populated integer pair.
func NewRowColInt(row, col int64) *RowColInt {
	return &RowColInt{Row: &row, Col: &col}
}

// Schema implements the record.Record interface
func (rc *RowColInt) Schema() *record.Schema {
	return rowColIntSchema
}

// Field implements the record.Record interface
func (rc *RowColInt) Field(name string) interface{} {
	switch name {
	case "Row":
		return int64Value(rc.Row)
	case "Col":
		return int64Value(rc.Col)
	}
	panic(&record.SchemaError{Tag: rowColIntSchema.Tag, Name: name})
}

// SetField implements the record.Record interface
func (rc *RowColInt) SetField(name string, value interface{}) error {
	switch name {
	case "Row":
		return setInt64(&rc.Row, name, value)
	case "Col":
		return setInt64(&rc.Col, name, value)
	}
	panic(&record.SchemaError{Tag: rowColIntSchema.Tag, Name: name})
}

// SetPositional implements the record.Positional interface with an exact
// (row, col) pair of integral values.
func (rc *RowColInt) SetPositional(values []float64) error {
	if len(values) != 2 {
		return fmt.Errorf("expected 2 values (row, col), got %d", len(values))
	}
	for _, v := range values {
		if v != math.Trunc(v) {
			return fmt.Errorf("value %v is not an integer", v)
		}
	}
	row, col := int64(values[0]), int64(values[1])
	rc.Row, rc.Col = &row, &col
	return nil
}

var rowColDoubleSchema = &record.Schema{
	Tag: "RowColDouble",
	Fields: []record.Field{
		{Name: "Row", Kind: record.DoubleField, Required: true},
		{Name: "Col", Kind: record.DoubleField, Required: true},
	},
}

// RowColDouble is a floating-point (row, column) pair. Chip corners land on
// fractional grid positions, so this is the corner coordinate type.
type RowColDouble struct {
	record.NS
	Row *float64
	Col *float64
}

// NewRowColDouble creates a fully populated floating-point pair.
func NewRowColDouble(row, col float64) *RowColDouble {
	return &RowColDouble{Row: &row, Col: &col}
}

// Schema implements the record.Record interface
func (rc *RowColDouble) Schema() *record.Schema {
	return rowColDoubleSchema
}

// Field implements the record.Record interface
func (rc *RowColDouble) Field(name string) interface{} {
	switch name {
	case "Row":
		return float64Value(rc.Row)
	case "Col":
		return float64Value(rc.Col)
	}
	panic(&record.SchemaError{Tag: rowColDoubleSchema.Tag, Name: name})
}

// SetField implements the record.Record interface
func (rc *RowColDouble) SetField(name string, value interface{}) error {
	switch name {
	case "Row":
		return setFloat64(&rc.Row, name, value)
	case "Col":
		return setFloat64(&rc.Col, name, value)
	}
	panic(&record.SchemaError{Tag: rowColDoubleSchema.Tag, Name: name})
}

// SetPositional implements the record.Positional interface with an exact
// (row, col) pair.
func (rc *RowColDouble) SetPositional(values []float64) error {
	if len(values) != 2 {
		return fmt.Errorf("expected 2 values (row, col), got %d", len(values))
	}
	row, col := values[0], values[1]
	rc.Row, rc.Col = &row, &col
	return nil
}

func int64Value(p *int64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func float64Value(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func setInt64(target **int64, name string, value interface{}) error {
	if value == nil {
		*target = nil
		return nil
	}
	n, ok := value.(int64)
	if !ok {
		return &record.CoercionError{Field: name, Value: value, Reason: "canonical int64 value required"}
	}
	*target = &n
	return nil
}

func setFloat64(target **float64, name string, value interface{}) error {
	if value == nil {
		*target = nil
		return nil
	}
	f, ok := value.(float64)
	if !ok {
		return &record.CoercionError{Field: name, Value: value, Reason: "canonical float64 value required"}
	}
	*target = &f
	return nil
}
