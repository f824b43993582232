package sidd

import (
	"errors"

	"github.com/venicegeo/geojson-go/geojson"
	"github.com/venicegeo/sidd-go/record"
)

// GeoJSONFeatureCreator is an interface for data that can convert itself to a GeoJSON feature
type GeoJSONFeatureCreator interface {
	GeoJSONFeature() (*geojson.Feature, error)
}

// GeoJSONFeatureCollectionCreator is an interface for data that can convert itself to a GeoJSON feature collection
type GeoJSONFeatureCollectionCreator interface {
	GeoJSONFeatureCollection() (*geojson.FeatureCollection, error)
}

// GeoJSONFeatureMixin is an interface for data that can be used to augment an existing GeoJSON feature
type GeoJSONFeatureMixin interface {
	Apply(*geojson.Feature) error
}

// MultiRecordResult is a container type for bundling multiple results together,
// e.g. as results from a search endpoint
type MultiRecordResult struct {
	FeatureCreators []GeoJSONFeatureCreator
}

// GeoJSONFeatureCollection implements the GeoJSONFeatureCollectionCreator interface
func (result MultiRecordResult) GeoJSONFeatureCollection() (*geojson.FeatureCollection, error) {
	var err error
	features := make([]*geojson.Feature, len(result.FeatureCreators))
	for i, creator := range result.FeatureCreators {
		features[i], err = creator.GeoJSONFeature()
		if err != nil {
			return nil, err
		}
	}

	return geojson.NewFeatureCollection(features), nil
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface. The geometry
// is the chip footprint in parent-image pixel space: x is column, y is row.
func (gc *GeometricChip) GeoJSONFeature() (*geojson.Feature, error) {
	if gc.ChipSize == nil || gc.ChipSize.Row == nil || gc.ChipSize.Col == nil {
		return nil, errors.New("No chip size available for a chip footprint")
	}

	corners := []*RowColDouble{
		gc.OriginalUpperLeftCoordinate,
		gc.OriginalUpperRightCoordinate,
		gc.OriginalLowerRightCoordinate,
		gc.OriginalLowerLeftCoordinate,
	}
	ring := make([][]float64, 0, len(corners)+1)
	for _, corner := range corners {
		if corner == nil || corner.Row == nil || corner.Col == nil {
			return nil, errors.New("Chip corner coordinates are incomplete")
		}
		ring = append(ring, []float64{*corner.Col, *corner.Row})
	}
	ring = append(ring, ring[0])

	f := geojson.NewFeature(geojson.NewPolygon([][][]float64{ring}), "", map[string]interface{}{
		"chipRows": *gc.ChipSize.Row,
		"chipCols": *gc.ChipSize.Col,
	})
	f.Bbox = f.ForceBbox()
	return f, nil
}

// ProcessingHistory summarizes a sequence of processing events for feature properties
type ProcessingHistory []*ProcessingEvent

// Apply implements the GeoJSONFeatureMixin interface
func (history ProcessingHistory) Apply(feature *geojson.Feature) error {
	feature.Properties["eventCount"] = len(history)
	if len(history) == 0 {
		return nil
	}

	applications := make([]string, len(history))
	lastApplied := history[0].AppliedDateTime
	for i, event := range history {
		applications[i] = event.ApplicationName
		if event.AppliedDateTime.After(lastApplied) {
			lastApplied = event.AppliedDateTime
		}
	}
	feature.Properties["applications"] = applications
	feature.Properties["lastApplied"] = record.FormatMetadataTime(lastApplied)
	return nil
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface: the chip
// footprint when chip geometry is present, augmented with the processing
// history summary.
func (d *DownstreamReprocessing) GeoJSONFeature() (*geojson.Feature, error) {
	var feature *geojson.Feature
	if d.GeometricChip != nil {
		chipFeature, err := d.GeometricChip.GeoJSONFeature()
		if err != nil {
			return nil, err
		}
		feature = chipFeature
	} else {
		feature = geojson.NewFeature(nil, "", map[string]interface{}{})
	}

	if err := ProcessingHistory(d.ProcessingEvents).Apply(feature); err != nil {
		return nil, err
	}
	return feature, nil
}
