package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/sidd-go/record"
	"github.com/venicegeo/sidd-go/sidd"
)

func sampleIndexedDownstream() *sidd.DownstreamReprocessing {
	chip := sidd.NewGeometricChip(
		sidd.NewRowColInt(512, 604),
		sidd.NewRowColDouble(100.5, 200.25),
		sidd.NewRowColDouble(100.5, 804.25),
		sidd.NewRowColDouble(612.5, 200.25),
		sidd.NewRowColDouble(612.5, 804.25),
	)

	first := sidd.NewProcessingEvent("ChipTool", time.Date(2019, 3, 1, 10, 15, 30, 123456000, time.UTC))
	first.InterpolationMethod = "bilinear"
	first.Descriptors = record.Parameters{
		{Name: "window", Value: "hamming"},
		{Name: "window", Value: "taylor"},
		{Name: "scale", Value: "0.5"},
	}
	second := sidd.NewProcessingEvent("Sharpener", time.Date(2019, 3, 2, 8, 0, 0, 0, time.UTC))

	return &sidd.DownstreamReprocessing{
		GeometricChip:    chip,
		ProcessingEvents: []*sidd.ProcessingEvent{first, second},
	}
}

func TestProductRecordFromDownstream_FlattensChip(t *testing.T) {
	// Mock
	downstream := sampleIndexedDownstream()
	ingested := time.Date(2019, 4, 1, 0, 0, 0, 0, time.UTC)

	// Tested code
	product := ProductRecordFromDownstream("product-1", "/data/product-1.xml", ingested, downstream)

	// Asserts
	assert.Equal(t, "product-1", product.ProductID)
	assert.Equal(t, "/data/product-1.xml", product.SourceFile)
	assert.Equal(t, ingested, product.IngestedAt)
	assert.Equal(t, sql.NullInt64{Int64: 512, Valid: true}, product.ChipRows)
	assert.Equal(t, sql.NullInt64{Int64: 604, Valid: true}, product.ChipCols)
	assert.Equal(t, sql.NullFloat64{Float64: 100.5, Valid: true}, product.ULRow)
	assert.Equal(t, sql.NullFloat64{Float64: 200.25, Valid: true}, product.ULCol)
	assert.Equal(t, sql.NullFloat64{Float64: 804.25, Valid: true}, product.URCol)
	assert.Equal(t, sql.NullFloat64{Float64: 612.5, Valid: true}, product.LLRow)
	assert.Equal(t, sql.NullFloat64{Float64: 612.5, Valid: true}, product.LRRow)
}

func TestProductRecordFromDownstream_NoChipMeansNullColumns(t *testing.T) {
	// Mock
	downstream := &sidd.DownstreamReprocessing{}

	// Tested code
	product := ProductRecordFromDownstream("product-2", "/data/product-2.xml", time.Now(), downstream)

	// Asserts
	assert.False(t, product.ChipRows.Valid)
	assert.False(t, product.ChipCols.Valid)
	assert.False(t, product.ULRow.Valid)
	assert.False(t, product.URRow.Valid)
	assert.False(t, product.LLRow.Valid)
	assert.False(t, product.LRRow.Valid)
}

func TestProductRecordFromDownstream_PartialChip(t *testing.T) {
	// Mock: only the upper-left corner is populated
	downstream := &sidd.DownstreamReprocessing{
		GeometricChip: &sidd.GeometricChip{
			OriginalUpperLeftCoordinate: sidd.NewRowColDouble(1.5, 2.5),
		},
	}

	// Tested code
	product := ProductRecordFromDownstream("product-3", "/data/product-3.xml", time.Now(), downstream)

	// Asserts
	assert.False(t, product.ChipRows.Valid)
	assert.Equal(t, sql.NullFloat64{Float64: 1.5, Valid: true}, product.ULRow)
	assert.Equal(t, sql.NullFloat64{Float64: 2.5, Valid: true}, product.ULCol)
	assert.False(t, product.URRow.Valid)
}

func TestEventRecordsFromDownstream_PreservesOrderAndDescriptors(t *testing.T) {
	// Mock
	downstream := sampleIndexedDownstream()

	// Tested code
	events, err := EventRecordsFromDownstream("product-1", downstream)

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, 0, events[0].Seq)
	assert.Equal(t, 1, events[1].Seq)
	assert.Equal(t, "ChipTool", events[0].ApplicationName.String)
	assert.True(t, events[0].AppliedDateTime.Valid)
	assert.Equal(t, "bilinear", events[0].InterpolationMethod.String)
	assert.JSONEq(t,
		`[{"name":"window","value":"hamming"},{"name":"window","value":"taylor"},{"name":"scale","value":"0.5"}]`,
		string(events[0].Descriptors))
	assert.False(t, events[1].InterpolationMethod.Valid)
	assert.Nil(t, events[1].Descriptors)
}

func TestEventRecordsFromDownstream_AbsentFieldsAreNull(t *testing.T) {
	// Mock: an event decoded from an incomplete document
	downstream := &sidd.DownstreamReprocessing{
		ProcessingEvents: []*sidd.ProcessingEvent{{InterpolationMethod: "nearest"}},
	}

	// Tested code
	events, err := EventRecordsFromDownstream("product-4", downstream)

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, events, 1)
	assert.False(t, events[0].ApplicationName.Valid)
	assert.False(t, events[0].AppliedDateTime.Valid)
	assert.Equal(t, "nearest", events[0].InterpolationMethod.String)
}

func TestProductRecord_Downstream_RoundTrip(t *testing.T) {
	// Mock
	original := sampleIndexedDownstream()
	product := ProductRecordFromDownstream("product-1", "/data/product-1.xml", time.Now(), original)
	events, err := EventRecordsFromDownstream("product-1", original)
	assert.Nil(t, err)

	// Tested code
	rebuilt, err := product.Downstream(events)

	// Asserts
	assert.Nil(t, err)
	if !record.Equal(original, rebuilt) {
		t.Errorf("rebuilt record differs from the ingested one: %+v", rebuilt)
	}
}

func TestProductRecord_Downstream_IncompletePairStaysAbsent(t *testing.T) {
	// Mock: a corner row without its column cannot form a coordinate
	product := &ProductRecord{
		ProductID: "product-5",
		ULRow:     sql.NullFloat64{Float64: 9.5, Valid: true},
	}

	// Tested code
	rebuilt, err := product.Downstream(nil)

	// Asserts
	assert.Nil(t, err)
	assert.Nil(t, rebuilt.GeometricChip)
	assert.Empty(t, rebuilt.ProcessingEvents)
}

func TestProductRecord_Downstream_NoConstructionDefaults(t *testing.T) {
	// Mock: a stored event with no applied time
	product := &ProductRecord{ProductID: "product-6"}
	events := []EventRecord{{
		ProductID:       "product-6",
		Seq:             0,
		ApplicationName: sql.NullString{String: "ChipTool", Valid: true},
	}}

	// Tested code
	rebuilt, err := product.Downstream(events)

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, rebuilt.ProcessingEvents, 1)
	assert.True(t, rebuilt.ProcessingEvents[0].AppliedDateTime.IsZero(),
		"an absent applied time must stay absent after a database round trip")
}

func TestProductRecord_Downstream_NormalizesStoredTime(t *testing.T) {
	// Mock: drivers return timestamps in arbitrary zones
	zone := time.FixedZone("EST", -5*60*60)
	product := &ProductRecord{ProductID: "product-7"}
	events := []EventRecord{{
		ProductID:       "product-7",
		Seq:             0,
		AppliedDateTime: pq.NullTime{Time: time.Date(2019, 3, 1, 5, 15, 30, 123456789, zone), Valid: true},
	}}

	// Tested code
	rebuilt, err := product.Downstream(events)

	// Asserts
	assert.Nil(t, err)
	applied := rebuilt.ProcessingEvents[0].AppliedDateTime
	assert.Equal(t, time.UTC, applied.Location())
	assert.Equal(t, 123456000, applied.Nanosecond())
}

func TestProductIDFromPath(t *testing.T) {
	assert.Equal(t, "product-1", productIDFromPath("/data/source/product-1.xml"))
	assert.Equal(t, "product-2", productIDFromPath("product-2.xml"))
}
