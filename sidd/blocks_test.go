package sidd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowColInt_SetPositional(t *testing.T) {
	// Tested code
	pair := &RowColInt{}
	err := pair.SetPositional([]float64{512, 604})

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, int64(512), *pair.Row)
	assert.Equal(t, int64(604), *pair.Col)
}

func TestRowColInt_SetPositional_RejectsFractionalValues(t *testing.T) {
	pair := &RowColInt{}
	err := pair.SetPositional([]float64{512.5, 604})

	assert.NotNil(t, err, "Expected a fractional row to be rejected; it was accepted")
}

func TestRowColInt_SetPositional_RejectsWrongArity(t *testing.T) {
	pair := &RowColInt{}

	assert.NotNil(t, pair.SetPositional([]float64{512}))
	assert.NotNil(t, pair.SetPositional([]float64{1, 2, 3}))
}

func TestRowColDouble_SetPositional(t *testing.T) {
	pair := &RowColDouble{}
	err := pair.SetPositional([]float64{100.5, 200.25})

	assert.Nil(t, err)
	assert.Equal(t, 100.5, *pair.Row)
	assert.Equal(t, 200.25, *pair.Col)
}

func TestRowColInt_FieldAccess(t *testing.T) {
	// Mock
	pair := &RowColInt{}

	// Tested code + Asserts
	assert.Nil(t, pair.Field("Row"), "Expected an unset coordinate to read as nil")

	assert.Nil(t, pair.SetField("Row", int64(0)))
	assert.Equal(t, int64(0), pair.Field("Row"), "Expected a zero coordinate to be distinguishable from unset")

	assert.Nil(t, pair.SetField("Row", nil))
	assert.Nil(t, pair.Field("Row"), "Expected a cleared coordinate to read as nil")

	assert.Panics(t, func() { pair.Field("Height") })
	assert.Panics(t, func() { pair.SetField("Height", int64(1)) })
}

func TestRowColDouble_FieldAccess_WrongCanonicalType(t *testing.T) {
	pair := &RowColDouble{}
	err := pair.SetField("Row", "not a float")

	assert.NotNil(t, err, "Expected a non-canonical value to be rejected; it was accepted")
}
