package catalog

import (
	"database/sql"

	"github.com/venicegeo/sidd-go/catalog/db"
	"github.com/venicegeo/sidd-go/record"
)

func getProduct(tx *sql.Tx, productID string) (*ProductResult, error) {
	product, err := db.GetProductByID(tx, productID)
	if err != nil {
		return nil, err
	}

	events, err := db.GetEventsByProductID(tx, productID)
	if err != nil {
		return nil, err
	}

	return productResultFromRecords(product, events)
}

// getProductDocument rebuilds the serialized metadata document for an indexed
// product under the configured namespace.
func getProductDocument(tx *sql.Tx, ctx Context, productID string) ([]byte, error) {
	result, err := getProduct(tx, productID)
	if err != nil {
		return nil, err
	}

	ns := record.Namespace{URI: ctx.NamespaceURI}
	node, err := record.Encode(result.Downstream, "", &ns)
	if err != nil {
		return nil, err
	}

	return []byte(node.Document()), nil
}
