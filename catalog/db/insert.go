package db

import (
	"database/sql"
)

//UpsertProduct inserts or updates the indexed row for one product.
func UpsertProduct(tx *sql.Tx, product *ProductRecord) error {
	_, err := tx.Exec(upsertProductStatement,
		product.ProductID,
		product.SourceFile,
		product.IngestedAt,
		product.ChipRows,
		product.ChipCols,
		product.ULRow, product.ULCol,
		product.URRow, product.URCol,
		product.LLRow, product.LLCol,
		product.LRRow, product.LRCol,
	)
	return err
}

//ReplaceEvents replaces the stored processing history for a product. History
//rows have no identity beyond (product_id, seq), so an update is a delete
//and re-insert.
func ReplaceEvents(tx *sql.Tx, productID string, events []EventRecord) error {
	if _, err := tx.Exec(deleteEventsStatement, productID); err != nil {
		return err
	}

	for _, event := range events {
		_, err := tx.Exec(insertEventStatement,
			event.ProductID,
			event.Seq,
			event.ApplicationName,
			event.AppliedDateTime,
			event.InterpolationMethod,
			event.Descriptors,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
