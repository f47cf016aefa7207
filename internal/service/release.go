package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"inventory-app/internal/models"
)

// ReleaseService returns active reservations to available stock. No
// physical quantity changes and no movement entries: nothing was ever
// picked.
type ReleaseService struct {
	db *gorm.DB
}

func NewReleaseService(db *gorm.DB) *ReleaseService {
	return &ReleaseService{db: db}
}

// ReleaseReservationsForOrder releases every active reservation on the
// order. When part of the order has already been fulfilled the release
// is partial (some goods shipped, the rest unwound) and the operator
// must pass confirm=true to acknowledge that; until then nothing is
// changed and ErrConfirmationRequired is returned.
func (s *ReleaseService) ReleaseReservationsForOrder(orderID uint, confirm bool) error {
	return withConflictRetry(s.db, func(tx *gorm.DB) error {
		reservationsByStatus := func(status string) *gorm.DB {
			return tx.
				Joins("JOIN order_items ON order_items.id = stock_reservations.order_item_id").
				Where("order_items.order_id = ? AND stock_reservations.status = ?", orderID, status)
		}

		var active []models.StockReservation
		if err := reservationsByStatus(models.ReservationStatusActive).Find(&active).Error; err != nil {
			return err
		}
		if len(active) == 0 {
			return fmt.Errorf("%w: order %d", ErrReservationNotFound, orderID)
		}

		var fulfilled int64
		err := reservationsByStatus(models.ReservationStatusFulfilled).
			Model(&models.StockReservation{}).
			Count(&fulfilled).Error
		if err != nil {
			return err
		}
		if fulfilled > 0 && !confirm {
			return fmt.Errorf("%w: order %d has %d fulfilled reservation(s)",
				ErrConfirmationRequired, orderID, fulfilled)
		}

		now := time.Now()
		for _, reservation := range active {
			var stock models.ProductStock
			if err := tx.First(&stock, reservation.ProductStockID).Error; err != nil {
				return err
			}

			err := updateStockGuarded(tx, &stock,
				stock.Quantity,
				stock.ReservedQuantity-reservation.Quantity)
			if err != nil {
				return err
			}

			res := tx.Model(&models.StockReservation{}).
				Where("id = ? AND status = ?", reservation.ID, models.ReservationStatusActive).
				Updates(map[string]interface{}{
					"status":      models.ReservationStatusReleased,
					"released_at": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: reservation %d is no longer active", ErrInvalidState, reservation.ID)
			}
		}
		return nil
	})
}
