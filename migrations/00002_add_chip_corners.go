package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00002, Down00002)
}

//Up00002 adds the columns for the original chip corner coordinates.
func Up00002(tx *sql.Tx) error {
	// This code is executed when the migration is applied.
	_, err := tx.Exec(`
		ALTER TABLE public.products ADD COLUMN IF NOT EXISTS ul_row double precision;
		ALTER TABLE public.products ADD COLUMN IF NOT EXISTS ul_col double precision;
		ALTER TABLE public.products ADD COLUMN IF NOT EXISTS ur_row double precision;
		ALTER TABLE public.products ADD COLUMN IF NOT EXISTS ur_col double precision;
		ALTER TABLE public.products ADD COLUMN IF NOT EXISTS ll_row double precision;
		ALTER TABLE public.products ADD COLUMN IF NOT EXISTS ll_col double precision;
		ALTER TABLE public.products ADD COLUMN IF NOT EXISTS lr_row double precision;
		ALTER TABLE public.products ADD COLUMN IF NOT EXISTS lr_col double precision;
		`)
	return err
}

//Down00002 removes the columns.
func Down00002(tx *sql.Tx) error {
	// This code is executed when the migration is rolled back.
	_, err := tx.Exec(`
		ALTER TABLE public.products DROP COLUMN IF EXISTS ul_row;
		ALTER TABLE public.products DROP COLUMN IF EXISTS ul_col;
		ALTER TABLE public.products DROP COLUMN IF EXISTS ur_row;
		ALTER TABLE public.products DROP COLUMN IF EXISTS ur_col;
		ALTER TABLE public.products DROP COLUMN IF EXISTS ll_row;
		ALTER TABLE public.products DROP COLUMN IF EXISTS ll_col;
		ALTER TABLE public.products DROP COLUMN IF EXISTS lr_row;
		ALTER TABLE public.products DROP COLUMN IF EXISTS lr_col;
		`)
	return err
}
