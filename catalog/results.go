package catalog

import (
	"time"

	"github.com/venicegeo/geojson-go/geojson"
	"github.com/venicegeo/sidd-go/catalog/db"
	"github.com/venicegeo/sidd-go/sidd"
)

// ProductResult is one indexed product together with its rebuilt metadata
// record
type ProductResult struct {
	ProductID  string
	SourceFile string
	IngestedAt time.Time
	Downstream *sidd.DownstreamReprocessing
}

// GeoJSONFeature implements the sidd.GeoJSONFeatureCreator interface
func (result ProductResult) GeoJSONFeature() (*geojson.Feature, error) {
	metadataFeature, err := result.Downstream.GeoJSONFeature()
	if err != nil {
		return nil, err
	}

	f := geojson.NewFeature(metadataFeature.Geometry, result.ProductID, metadataFeature.Properties)
	f.Properties["sourceFile"] = result.SourceFile
	f.Properties["ingestedDate"] = result.IngestedAt.Format(time.RFC3339)
	if f.Geometry != nil {
		f.Bbox = f.ForceBbox()
	}

	return f, nil
}

func productResultFromRecords(product *db.ProductRecord, events []db.EventRecord) (*ProductResult, error) {
	downstream, err := product.Downstream(events)
	if err != nil {
		return nil, err
	}

	return &ProductResult{
		ProductID:  product.ProductID,
		SourceFile: product.SourceFile,
		IngestedAt: product.IngestedAt,
		Downstream: downstream,
	}, nil
}
