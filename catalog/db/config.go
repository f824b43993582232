package db

const upsertProductStatement = `
INSERT INTO products (
	product_id,
	source_file,
	ingested_at,
	chip_rows,
	chip_cols,
	ul_row, ul_col,
	ur_row, ur_col,
	ll_row, ll_col,
	lr_row, lr_col)
VALUES
($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (product_id) DO UPDATE
	SET source_file = EXCLUDED.source_file,
		ingested_at = EXCLUDED.ingested_at,
		chip_rows = EXCLUDED.chip_rows,
		chip_cols = EXCLUDED.chip_cols,
		ul_row = EXCLUDED.ul_row, ul_col = EXCLUDED.ul_col,
		ur_row = EXCLUDED.ur_row, ur_col = EXCLUDED.ur_col,
		ll_row = EXCLUDED.ll_row, ll_col = EXCLUDED.ll_col,
		lr_row = EXCLUDED.lr_row, lr_col = EXCLUDED.lr_col
	`

const deleteEventsStatement = `
	DELETE FROM processing_events WHERE product_id = $1
`

const insertEventStatement = `
INSERT INTO processing_events (
	product_id,
	seq,
	application_name,
	applied_date_time,
	interpolation_method,
	descriptors)
VALUES
($1, $2, $3, $4, $5, $6)
	`

const databaseMaintenanceStatement = `
	VACUUM ANALYZE products, processing_events
`
