package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"inventory-app/internal/models"
)

// Number of times a conflicted allocation/fulfillment/release is
// re-run from a fresh read before giving up.
const maxConflictRetries = 3

// updateStockGuarded writes new quantity/reserved values to a stock row
// via compare-and-swap on its version token. The caller must have read
// stock within the current transaction; a concurrent writer bumps the
// version, the update then matches zero rows and the whole transaction
// is aborted with ErrConcurrencyConflict.
func updateStockGuarded(tx *gorm.DB, stock *models.ProductStock, quantity, reserved int) error {
	if quantity < 0 || reserved < 0 || reserved > quantity {
		return fmt.Errorf("%w: stock %d would have quantity=%d reserved=%d",
			ErrInvariantViolation, stock.ID, quantity, reserved)
	}

	res := tx.Model(&models.ProductStock{}).
		Where("id = ? AND version = ?", stock.ID, stock.Version).
		Updates(map[string]interface{}{
			"quantity":          quantity,
			"reserved_quantity": reserved,
			"version":           stock.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: stock %d", ErrConcurrencyConflict, stock.ID)
	}

	stock.Quantity = quantity
	stock.ReservedQuantity = reserved
	stock.Version++
	return nil
}

// withConflictRetry runs fn in its own transaction, re-running it from
// scratch on version conflicts. Each attempt re-reads all state, so a
// retry can never merge stale values into the store.
func withConflictRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = db.Transaction(fn)
		if !errors.Is(err, ErrConcurrencyConflict) {
			return err
		}
	}
	return err
}
