package db

import (
	"fmt"

	"gorm.io/gorm"
)

func EnsureSchema(d *gorm.DB, schema string) error {
	return d.Exec(`CREATE SCHEMA IF NOT EXISTS "` + schema + `"`).Error
}

// ForeignKey describes a constraint installed by EnsureForeignKey. Table and
// RefTable are schema-qualified ("medical.allergies").
type ForeignKey struct {
	Name      string
	Table     string
	Column    string
	RefTable  string
	RefColumn string
	OnDelete  string
}

// EnsureForeignKey adds the constraint unless one with the same name exists.
// Postgres has no ADD CONSTRAINT IF NOT EXISTS, hence the catalog check.
func EnsureForeignKey(d *gorm.DB, fk ForeignKey) error {
	onDelete := fk.OnDelete
	if onDelete == "" {
		onDelete = "CASCADE"
	}
	stmt := fmt.Sprintf(`
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
		ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s;
	END IF;
END
$$;`, fk.Name, fk.Table, fk.Name, fk.Column, fk.RefTable, fk.RefColumn, onDelete)

	if err := d.Exec(stmt).Error; err != nil {
		return fmt.Errorf("ensure foreign key %s: %w", fk.Name, err)
	}
	return nil
}
