package catalog

import (
	"database/sql"
	"time"

	"github.com/venicegeo/sidd-go/catalog/db"
	"github.com/venicegeo/sidd-go/sidd"
)

func discoverProducts(tx *sql.Tx, applicationName string,
	minApplied time.Time, maxApplied time.Time) (sidd.GeoJSONFeatureCollectionCreator, error) {
	products, err := db.SearchProducts(tx, applicationName, minApplied, maxApplied)
	if err != nil {
		return nil, err
	}

	multiResult := sidd.MultiRecordResult{
		FeatureCreators: make([]sidd.GeoJSONFeatureCreator, len(products)),
	}

	for i := range products {
		events, err := db.GetEventsByProductID(tx, products[i].ProductID)
		if err != nil {
			return nil, err
		}
		if multiResult.FeatureCreators[i], err = productResultFromRecords(&products[i], events); err != nil {
			return nil, err
		}
	}

	return multiResult, nil
}
