package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00003, Down00003)
}

// Up00003 adds a column to the processing events to keep their free-form
// descriptors, stored as a JSON array so document order and duplicate names
// survive
func Up00003(tx *sql.Tx) error {
	_, err := tx.Exec(`ALTER TABLE public.processing_events ADD COLUMN descriptors jsonb;`)
	return err
}

// Down00003 undoes the effects of Up00003
func Down00003(tx *sql.Tx) error {
	_, err := tx.Exec(`ALTER TABLE public.processing_events DROP COLUMN descriptors;`)
	return err
}
