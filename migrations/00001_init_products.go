package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00001, Down00001)
}

//Up00001 adds the product index tables
func Up00001(tx *sql.Tx) error {
	// This code is executed when the migration is applied.

	err := addTables(tx)

	if err == nil {
		err = addIndexes(tx)
	}

	return err
}

//Down00001 undoes the db changes.
func Down00001(tx *sql.Tx) error {
	// This code is executed when the migration is rolled back.
	err := dropTables(tx)
	return err
}

func addTables(tx *sql.Tx) error {

	_, err := tx.Exec(`
		CREATE TABLE public.products
		(
			product_id text COLLATE pg_catalog."default" NOT NULL,
			source_file text COLLATE pg_catalog."default" NOT NULL,
			ingested_at timestamp with time zone NOT NULL,
			chip_rows bigint,
			chip_cols bigint,
			CONSTRAINT "products_pk_productId" PRIMARY KEY (product_id)
		)
		WITH (
			OIDS = FALSE
		);

		CREATE TABLE public.processing_events
		(
			product_id text COLLATE pg_catalog."default" NOT NULL,
			seq integer NOT NULL,
			application_name text COLLATE pg_catalog."default",
			applied_date_time timestamp with time zone,
			interpolation_method text COLLATE pg_catalog."default",
			CONSTRAINT "processing_events_pk_productId_seq" PRIMARY KEY (product_id, seq),
			CONSTRAINT "processing_events_fk_productId" FOREIGN KEY (product_id)
				REFERENCES public.products (product_id)
				ON DELETE CASCADE
		)
		WITH (
			OIDS = FALSE
		);
		`)

	return err
}

func addIndexes(tx *sql.Tx) error {

	_, err := tx.Exec(`
		CREATE INDEX idx_processing_events_application
		ON public.processing_events USING btree
		(application_name);

		CREATE INDEX idx_processing_events_applied
		ON public.processing_events USING btree
		(applied_date_time);
		`)

	return err
}

func dropTables(tx *sql.Tx) error {
	_, err := tx.Exec(`
		DROP TABLE IF EXISTS public.processing_events;
		DROP TABLE IF EXISTS public.products;
		`)
	return err
}
