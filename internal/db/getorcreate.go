package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetOrCreate returns the row matching the natural key in where, inserting
// row when none exists. Existing rows are never overwritten. On return row
// holds the stored values and created reports whether an insert happened.
//
// The lookup and insert share a transaction; a concurrent insert of the same
// key surfaces as a unique violation if the table declares one.
func GetOrCreate[T any](ctx context.Context, d *gorm.DB, row *T, where map[string]any) (created bool, err error) {
	err = d.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing T
		lookup := tx.Where(where).Limit(1).Find(&existing)
		if lookup.Error != nil {
			return lookup.Error
		}
		if lookup.RowsAffected > 0 {
			*row = existing
			return nil
		}
		if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("get or create: %w", Translate(err))
	}
	return created, nil
}

// IsNotFound reports whether err is GORM's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
