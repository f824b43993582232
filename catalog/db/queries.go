package db

import (
	"database/sql"
	"time"
)

const productColumns = `
	product_id, source_file, ingested_at,
	chip_rows, chip_cols,
	ul_row, ul_col, ur_row, ur_col,
	ll_row, ll_col, lr_row, lr_col`

//GetProductByID returns the indexed row for a single product.
func GetProductByID(tx *sql.Tx, productID string) (*ProductRecord, error) {
	product := ProductRecord{}

	rows, err := tx.Query(`
		SELECT`+productColumns+`
		FROM public.products
		WHERE product_id=$1
		LIMIT 1`,
		productID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, sql.ErrNoRows
	}

	err = scanProduct(rows, &product)
	if err != nil {
		return nil, err
	}

	return &product, nil
}

//SearchProducts returns the products whose processing history includes an
//event matching the filters: an empty applicationName matches any
//application, and the applied time of the event must fall inside the given
//range. Events with no applied time never match.
func SearchProducts(tx *sql.Tx, applicationName string, minApplied, maxApplied time.Time) ([]ProductRecord, error) {
	rows, err := tx.Query(`
		SELECT`+productColumns+`
		FROM public.products p
		WHERE EXISTS (
			SELECT 1 FROM public.processing_events e
			WHERE e.product_id = p.product_id
			AND ($1 = '' OR e.application_name = $1)
			AND e.applied_date_time BETWEEN $2 AND $3)
		ORDER BY product_id`,
		applicationName,
		minApplied,
		maxApplied,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []ProductRecord{}
	for rows.Next() {
		product := ProductRecord{}
		if err = scanProduct(rows, &product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

//GetEventsByProductID returns the processing history rows for a product in
//stored order.
func GetEventsByProductID(tx *sql.Tx, productID string) ([]EventRecord, error) {
	rows, err := tx.Query(`
		SELECT product_id, seq, application_name, applied_date_time, interpolation_method, descriptors
		FROM public.processing_events
		WHERE product_id=$1
		ORDER BY seq`,
		productID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []EventRecord{}
	for rows.Next() {
		event := EventRecord{}
		err = rows.Scan(
			&event.ProductID, &event.Seq,
			&event.ApplicationName, &event.AppliedDateTime,
			&event.InterpolationMethod, &event.Descriptors)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func scanProduct(rows *sql.Rows, product *ProductRecord) error {
	return rows.Scan(
		&product.ProductID, &product.SourceFile, &product.IngestedAt,
		&product.ChipRows, &product.ChipCols,
		&product.ULRow, &product.ULCol, &product.URRow, &product.URCol,
		&product.LLRow, &product.LLCol, &product.LRRow, &product.LRCol)
}
