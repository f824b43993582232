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

// Package sidd holds the Sensor Independent Derived Data metadata record
// types for downstream reprocessing: the chip extraction geometry of a
// derived product and the history of processing applied to it after initial
// creation.
package sidd

import (
	"time"

	"github.com/venicegeo/sidd-go/record"
	"github.com/venicegeo/sidd-go/xmldoc"
)

// DefaultNamespace is the namespace downstream-reprocessing documents are
// written under unless construction supplies an override.
var DefaultNamespace = record.Namespace{URI: "urn:SIDD:2.0.0"}

var geometricChipSchema = &record.Schema{
	Tag: "GeometricChip",
	Fields: []record.Field{
		{Name: "ChipSize", Kind: record.RecordField, Required: true, New: newRowColInt},
		{Name: "OriginalUpperLeftCoordinate", Kind: record.RecordField, Required: true, New: newRowColDouble},
		{Name: "OriginalUpperRightCoordinate", Kind: record.RecordField, Required: true, New: newRowColDouble},
		{Name: "OriginalLowerLeftCoordinate", Kind: record.RecordField, Required: true, New: newRowColDouble},
		{Name: "OriginalLowerRightCoordinate", Kind: record.RecordField, Required: true, New: newRowColDouble},
	},
}

func newRowColInt() record.Record    { return &RowColInt{} }
func newRowColDouble() record.Record { return &RowColDouble{} }

// GeometricChip records how a chipped product was extracted from its parent
// image: the chip pixel dimensions plus the parent-image coordinates of the
// four chip corners.
type GeometricChip struct {
	record.NS
	ChipSize                     *RowColInt
	OriginalUpperLeftCoordinate  *RowColDouble
	OriginalUpperRightCoordinate *RowColDouble
	OriginalLowerLeftCoordinate  *RowColDouble
	OriginalLowerRightCoordinate *RowColDouble
}

// NewGeometricChip creates a chip geometry record from its five components.
func NewGeometricChip(size *RowColInt, upperLeft, upperRight, lowerLeft, lowerRight *RowColDouble) *GeometricChip {
	return &GeometricChip{
		ChipSize:                     size,
		OriginalUpperLeftCoordinate:  upperLeft,
		OriginalUpperRightCoordinate: upperRight,
		OriginalLowerLeftCoordinate:  lowerLeft,
		OriginalLowerRightCoordinate: lowerRight,
	}
}

// Schema implements the record.Record interface
func (gc *GeometricChip) Schema() *record.Schema {
	return geometricChipSchema
}

// Field implements the record.Record interface
func (gc *GeometricChip) Field(name string) interface{} {
	switch name {
	case "ChipSize":
		if gc.ChipSize == nil {
			return nil
		}
		return gc.ChipSize
	case "OriginalUpperLeftCoordinate":
		return rowColDoubleValue(gc.OriginalUpperLeftCoordinate)
	case "OriginalUpperRightCoordinate":
		return rowColDoubleValue(gc.OriginalUpperRightCoordinate)
	case "OriginalLowerLeftCoordinate":
		return rowColDoubleValue(gc.OriginalLowerLeftCoordinate)
	case "OriginalLowerRightCoordinate":
		return rowColDoubleValue(gc.OriginalLowerRightCoordinate)
	}
	panic(&record.SchemaError{Tag: geometricChipSchema.Tag, Name: name})
}

// SetField implements the record.Record interface
func (gc *GeometricChip) SetField(name string, value interface{}) error {
	switch name {
	case "ChipSize":
		if value == nil {
			gc.ChipSize = nil
			return nil
		}
		size, ok := value.(*RowColInt)
		if !ok {
			return &record.CoercionError{Field: name, Value: value, Reason: "RowColInt record required"}
		}
		gc.ChipSize = size
		return nil
	case "OriginalUpperLeftCoordinate":
		return setRowColDouble(&gc.OriginalUpperLeftCoordinate, name, value)
	case "OriginalUpperRightCoordinate":
		return setRowColDouble(&gc.OriginalUpperRightCoordinate, name, value)
	case "OriginalLowerLeftCoordinate":
		return setRowColDouble(&gc.OriginalLowerLeftCoordinate, name, value)
	case "OriginalLowerRightCoordinate":
		return setRowColDouble(&gc.OriginalLowerRightCoordinate, name, value)
	}
	panic(&record.SchemaError{Tag: geometricChipSchema.Tag, Name: name})
}

func rowColDoubleValue(pair *RowColDouble) interface{} {
	if pair == nil {
		return nil
	}
	return pair
}

func setRowColDouble(target **RowColDouble, name string, value interface{}) error {
	if value == nil {
		*target = nil
		return nil
	}
	pair, ok := value.(*RowColDouble)
	if !ok {
		return &record.CoercionError{Field: name, Value: value, Reason: "RowColDouble record required"}
	}
	*target = pair
	return nil
}

var processingEventSchema = &record.Schema{
	Tag: "ProcessingEvent",
	Fields: []record.Field{
		{Name: "ApplicationName", Kind: record.StringField, Required: true},
		{Name: "AppliedDateTime", Kind: record.DateTimeField, Required: true, DefaultNow: true},
		{Name: "InterpolationMethod", Kind: record.StringField},
		{Name: "Descriptors", Kind: record.ParametersField, ChildTag: "Descriptor"},
	},
}

// ProcessingEvent describes one step of downstream processing applied to a
// product: which application ran, when it was applied, and any free-form
// descriptors it recorded.
type ProcessingEvent struct {
	record.NS
	ApplicationName     string
	AppliedDateTime     time.Time
	InterpolationMethod string
	Descriptors         record.Parameters
}

// NewProcessingEvent creates a processing event. A zero applied time means
// the event is being recorded as it happens and gets the current UTC time.
func NewProcessingEvent(applicationName string, applied time.Time) *ProcessingEvent {
	if applied.IsZero() {
		applied = record.Now()
	}
	return &ProcessingEvent{
		ApplicationName: applicationName,
		AppliedDateTime: record.NormalizeTime(applied),
	}
}

// Schema implements the record.Record interface
func (pe *ProcessingEvent) Schema() *record.Schema {
	return processingEventSchema
}

// Field implements the record.Record interface
func (pe *ProcessingEvent) Field(name string) interface{} {
	switch name {
	case "ApplicationName":
		if pe.ApplicationName == "" {
			return nil
		}
		return pe.ApplicationName
	case "AppliedDateTime":
		if pe.AppliedDateTime.IsZero() {
			return nil
		}
		return pe.AppliedDateTime
	case "InterpolationMethod":
		if pe.InterpolationMethod == "" {
			return nil
		}
		return pe.InterpolationMethod
	case "Descriptors":
		if len(pe.Descriptors) == 0 {
			return nil
		}
		return pe.Descriptors
	}
	panic(&record.SchemaError{Tag: processingEventSchema.Tag, Name: name})
}

// SetField implements the record.Record interface
func (pe *ProcessingEvent) SetField(name string, value interface{}) error {
	switch name {
	case "ApplicationName":
		return setString(&pe.ApplicationName, name, value)
	case "AppliedDateTime":
		if value == nil {
			pe.AppliedDateTime = time.Time{}
			return nil
		}
		t, ok := value.(time.Time)
		if !ok {
			return &record.CoercionError{Field: name, Value: value, Reason: "canonical time.Time value required"}
		}
		pe.AppliedDateTime = t
		return nil
	case "InterpolationMethod":
		return setString(&pe.InterpolationMethod, name, value)
	case "Descriptors":
		if value == nil {
			pe.Descriptors = nil
			return nil
		}
		params, ok := value.(record.Parameters)
		if !ok {
			return &record.CoercionError{Field: name, Value: value, Reason: "Parameters value required"}
		}
		pe.Descriptors = params
		return nil
	}
	panic(&record.SchemaError{Tag: processingEventSchema.Tag, Name: name})
}

func setString(target *string, name string, value interface{}) error {
	if value == nil {
		*target = ""
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return &record.CoercionError{Field: name, Value: value, Reason: "canonical string value required"}
	}
	*target = s
	return nil
}

var downstreamReprocessingSchema = &record.Schema{
	Tag: "DownstreamReprocessing",
	Fields: []record.Field{
		{Name: "GeometricChip", Kind: record.RecordField, New: newGeometricChip},
		{Name: "ProcessingEvents", Kind: record.RecordListField, ChildTag: "ProcessingEvent", New: newProcessingEvent},
	},
}

func newGeometricChip() record.Record   { return &GeometricChip{} }
func newProcessingEvent() record.Record { return &ProcessingEvent{} }

// DownstreamReprocessing is the root record of a downstream-reprocessing
// metadata block: optional chip extraction geometry plus the ordered
// processing history. Events serialize as sibling ProcessingEvent elements,
// not under a wrapper.
type DownstreamReprocessing struct {
	record.NS
	GeometricChip    *GeometricChip
	ProcessingEvents []*ProcessingEvent
}

// Schema implements the record.Record interface
func (d *DownstreamReprocessing) Schema() *record.Schema {
	return downstreamReprocessingSchema
}

// Field implements the record.Record interface
func (d *DownstreamReprocessing) Field(name string) interface{} {
	switch name {
	case "GeometricChip":
		if d.GeometricChip == nil {
			return nil
		}
		return d.GeometricChip
	case "ProcessingEvents":
		if len(d.ProcessingEvents) == 0 {
			return nil
		}
		items := make([]record.Record, len(d.ProcessingEvents))
		for i, event := range d.ProcessingEvents {
			items[i] = event
		}
		return items
	}
	panic(&record.SchemaError{Tag: downstreamReprocessingSchema.Tag, Name: name})
}

// SetField implements the record.Record interface
func (d *DownstreamReprocessing) SetField(name string, value interface{}) error {
	switch name {
	case "GeometricChip":
		if value == nil {
			d.GeometricChip = nil
			return nil
		}
		chip, ok := value.(*GeometricChip)
		if !ok {
			return &record.CoercionError{Field: name, Value: value, Reason: "GeometricChip record required"}
		}
		d.GeometricChip = chip
		return nil
	case "ProcessingEvents":
		if value == nil {
			d.ProcessingEvents = nil
			return nil
		}
		items, ok := value.([]record.Record)
		if !ok {
			return &record.CoercionError{Field: name, Value: value, Reason: "ProcessingEvent record list required"}
		}
		events := make([]*ProcessingEvent, len(items))
		for i, item := range items {
			event, ok := item.(*ProcessingEvent)
			if !ok {
				return &record.CoercionError{Field: name, Value: item, Reason: "ProcessingEvent record required"}
			}
			events[i] = event
		}
		d.ProcessingEvents = events
		return nil
	}
	panic(&record.SchemaError{Tag: downstreamReprocessingSchema.Tag, Name: name})
}

// ParseDownstreamReprocessing reads a serialized downstream-reprocessing
// document under the default namespace.
func ParseDownstreamReprocessing(data []byte) (*DownstreamReprocessing, error) {
	node, err := xmldoc.Parse(data)
	if err != nil {
		return nil, err
	}
	downstream := &DownstreamReprocessing{}
	if err = record.Decode(downstream, node, &DefaultNamespace); err != nil {
		return nil, err
	}
	return downstream, nil
}
