package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"inventory-app/internal/models"
)

// FulfillmentService turns active reservations into physical stock
// decrements: the pick and the hold release happen in one step, with an
// outbound movement written for the audit trail.
type FulfillmentService struct {
	db *gorm.DB
}

func NewFulfillmentService(db *gorm.DB) *FulfillmentService {
	return &FulfillmentService{db: db}
}

// FulfillReservationsForOrder fulfills every active reservation on the
// order.
func (s *FulfillmentService) FulfillReservationsForOrder(orderID uint) error {
	return s.fulfill(orderID, func(q *gorm.DB) *gorm.DB { return q })
}

// FulfillReservation fulfills a single reservation of the order.
func (s *FulfillmentService) FulfillReservation(orderID, reservationID uint) error {
	return s.fulfill(orderID, func(q *gorm.DB) *gorm.DB {
		return q.Where("stock_reservations.id = ?", reservationID)
	})
}

// FulfillForBranch fulfills the order's active reservations held at one
// branch.
func (s *FulfillmentService) FulfillForBranch(orderID, branchID uint) error {
	return s.fulfill(orderID, func(q *gorm.DB) *gorm.DB {
		return q.Where("product_stocks.branch_id = ?", branchID)
	})
}

func (s *FulfillmentService) fulfill(orderID uint, scope func(*gorm.DB) *gorm.DB) error {
	return withConflictRetry(s.db, func(tx *gorm.DB) error {
		query := tx.
			Joins("JOIN order_items ON order_items.id = stock_reservations.order_item_id").
			Joins("JOIN product_stocks ON product_stocks.id = stock_reservations.product_stock_id").
			Where("order_items.order_id = ? AND stock_reservations.status = ?", orderID, models.ReservationStatusActive)

		var reservations []models.StockReservation
		if err := scope(query).Find(&reservations).Error; err != nil {
			return err
		}
		if len(reservations) == 0 {
			return fmt.Errorf("%w: order %d", ErrReservationNotFound, orderID)
		}

		now := time.Now()
		for _, reservation := range reservations {
			var stock models.ProductStock
			if err := tx.First(&stock, reservation.ProductStockID).Error; err != nil {
				return err
			}

			err := updateStockGuarded(tx, &stock,
				stock.Quantity-reservation.Quantity,
				stock.ReservedQuantity-reservation.Quantity)
			if err != nil {
				return err
			}

			orderItemID := reservation.OrderItemID
			movement := models.StockMovement{
				ProductStockID: stock.ID,
				QuantityDelta:  -reservation.Quantity,
				Type:           models.MovementTypeOutbound,
				OrderItemID:    &orderItemID,
				Reference:      fmt.Sprintf("ORDER#%d", orderID),
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}

			res := tx.Model(&models.StockReservation{}).
				Where("id = ? AND status = ?", reservation.ID, models.ReservationStatusActive).
				Updates(map[string]interface{}{
					"status":       models.ReservationStatusFulfilled,
					"fulfilled_at": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: reservation %d is no longer active", ErrInvalidState, reservation.ID)
			}
		}

		return completeOrderIfDone(tx, orderID)
	})
}

// completeOrderIfDone marks the order COMPLETED once no active holds
// remain on any of its lines.
func completeOrderIfDone(tx *gorm.DB, orderID uint) error {
	var remaining int64
	err := tx.Model(&models.StockReservation{}).
		Joins("JOIN order_items ON order_items.id = stock_reservations.order_item_id").
		Where("order_items.order_id = ? AND stock_reservations.status = ?", orderID, models.ReservationStatusActive).
		Count(&remaining).Error
	if err != nil {
		return err
	}
	if remaining > 0 {
		return nil
	}
	return tx.Model(&models.CustomerOrder{}).
		Where("id = ? AND status IN ?", orderID,
			[]string{models.OrderStatusAllocated, models.OrderStatusPartial}).
		Update("status", models.OrderStatusCompleted).Error
}
