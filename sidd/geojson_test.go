package sidd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"
)

func mockHistory() ProcessingHistory {
	return ProcessingHistory{
		NewProcessingEvent("chip-tool", time.Date(2019, 3, 1, 10, 15, 30, 0, time.UTC)),
		NewProcessingEvent("ortho-tool", time.Date(2019, 3, 2, 8, 0, 0, 0, time.UTC)),
	}
}

func TestGeometricChip_GeoJSONFeature(t *testing.T) {
	// Mock
	chip := mockChip()

	// Tested code
	feature, err := chip.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assert.NotNil(t, feature)
	assert.Equal(t, int64(512), feature.Properties["chipRows"])
	assert.Equal(t, int64(604), feature.Properties["chipCols"])
	assert.Nil(t, feature.Bbox.Valid())

	polygon, ok := feature.Geometry.(*geojson.Polygon)
	assert.True(t, ok, "Expected a polygon footprint, got %T", feature.Geometry)
	ring := polygon.Coordinates[0]
	assert.Len(t, ring, 5, "Expected a closed four-corner ring")
	// x is column, y is row; the ring starts at the upper-left corner
	assert.Equal(t, []float64{200.25, 100.5}, ring[0])
	assert.Equal(t, []float64{804.25, 100.5}, ring[1])
	assert.Equal(t, []float64{804.25, 612.5}, ring[2])
	assert.Equal(t, []float64{200.25, 612.5}, ring[3])
	assert.Equal(t, ring[0], ring[4], "Expected the ring to close on its first corner")
}

func TestGeometricChip_GeoJSONFeature_IncompleteGeometry(t *testing.T) {
	// Mock
	chip := mockChip()
	chip.OriginalLowerRightCoordinate = nil

	// Tested code
	_, err := chip.GeoJSONFeature()

	// Asserts
	assert.NotNil(t, err, "Expected an incomplete chip to refuse a footprint; it did not")
}

func TestProcessingHistory_Apply(t *testing.T) {
	// Mock
	feature := geojson.NewFeature(nil, "test-id", map[string]interface{}{})

	// Tested code
	err := mockHistory().Apply(feature)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, 2, feature.Properties["eventCount"])
	assert.Equal(t, []string{"chip-tool", "ortho-tool"}, feature.PropertyStringSlice("applications"))
	assert.Equal(t, "2019-03-02T08:00:00.000000", feature.PropertyString("lastApplied"))
}

func TestProcessingHistory_Apply_Empty(t *testing.T) {
	feature := geojson.NewFeature(nil, "test-id", map[string]interface{}{})

	err := ProcessingHistory{}.Apply(feature)

	assert.Nil(t, err)
	assert.Equal(t, 0, feature.Properties["eventCount"])
	assert.Empty(t, feature.PropertyString("lastApplied"))
}

func TestDownstreamReprocessing_GeoJSONFeature(t *testing.T) {
	// Mock
	downstream := &DownstreamReprocessing{
		GeometricChip:    mockChip(),
		ProcessingEvents: mockHistory(),
	}

	// Tested code
	feature, err := downstream.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assert.NotNil(t, feature.Geometry)
	assert.Equal(t, int64(512), feature.Properties["chipRows"])
	assert.Equal(t, 2, feature.Properties["eventCount"])
}

func TestDownstreamReprocessing_GeoJSONFeature_NoChip(t *testing.T) {
	// Mock
	downstream := &DownstreamReprocessing{ProcessingEvents: mockHistory()}

	// Tested code
	feature, err := downstream.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assert.Nil(t, feature.Geometry, "Expected no geometry without chip data")
	assert.Equal(t, 2, feature.Properties["eventCount"])
}

func TestMultiRecordResult_GeoJSONFeatureCollection(t *testing.T) {
	// Mock
	downstream := &DownstreamReprocessing{GeometricChip: mockChip()}
	result := MultiRecordResult{
		FeatureCreators: []GeoJSONFeatureCreator{downstream, downstream, downstream},
	}

	// Tested code
	fc, err := result.GeoJSONFeatureCollection()

	// Asserts
	assert.Nil(t, err)
	assert.NotNil(t, fc)
	assert.Len(t, fc.Features, 3)
	for _, feature := range fc.Features {
		assert.Equal(t, int64(604), feature.Properties["chipCols"])
	}
}

func TestMultiRecordResult_PropagatesErrors(t *testing.T) {
	// Mock
	incomplete := &DownstreamReprocessing{GeometricChip: &GeometricChip{ChipSize: NewRowColInt(1, 1)}}
	result := MultiRecordResult{FeatureCreators: []GeoJSONFeatureCreator{incomplete}}

	// Tested code
	_, err := result.GeoJSONFeatureCollection()

	// Asserts
	assert.NotNil(t, err, "Expected an incomplete chip to fail the collection; it succeeded")
}
