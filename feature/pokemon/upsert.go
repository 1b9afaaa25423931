package pokemon

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// getOrCreate looks row up by its natural key and inserts it when absent.
// On return row holds the stored values, ID included. created reports
// whether this call inserted it.
func getOrCreate[T any](tx *gorm.DB, row *T, query any, args ...any) (created bool, err error) {
	err = tx.Where(query, args...).Order("id").Take(row).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up %T: %w", row, err)
	}
	if err := tx.Create(row).Error; err != nil {
		return false, fmt.Errorf("failed to create %T: %w", row, err)
	}
	return true, nil
}
