package service

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"inventory-app/internal/models"
)

// LineAllocation reports the outcome of allocating one order line.
// Missing > 0 means the line could not be fully covered; that is a
// normal result, not an error. The order is simply held short.
type LineAllocation struct {
	OrderItemID uint `json:"order_item_id"`
	Reserved    int  `json:"reserved"`
	Missing     int  `json:"missing"`
}

type AllocationReport struct {
	OrderID   uint             `json:"order_id"`
	Lines     []LineAllocation `json:"lines"`
	IsPartial bool             `json:"is_partial"`
}

// AllocationService reserves stock for an order's lines across
// branches, preferring the caller's branch and then the largest
// available pool.
type AllocationService struct {
	db *gorm.DB
}

func NewAllocationService(db *gorm.DB) *AllocationService {
	return &AllocationService{db: db}
}

// Reserve allocates stock for every line of the order in a single
// transaction. Re-invoking it after a full allocation is a no-op per
// line (need is recomputed against existing active holds). On a stock
// version conflict the whole allocation is retried from a fresh read.
func (s *AllocationService) Reserve(orderID uint, preferredBranchID *uint) (*AllocationReport, error) {
	var report *AllocationReport

	err := withConflictRetry(s.db, func(tx *gorm.DB) error {
		var order models.CustomerOrder
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrOrderNotFound, orderID)
			}
			return err
		}

		report = &AllocationReport{OrderID: order.ID}
		for _, item := range order.Items {
			line, err := s.allocateLine(tx, item, preferredBranchID)
			if err != nil {
				return err
			}
			report.Lines = append(report.Lines, line)
			if line.Missing > 0 {
				report.IsPartial = true
			}
		}

		status := models.OrderStatusAllocated
		if report.IsPartial {
			status = models.OrderStatusPartial
		}
		return tx.Model(&models.CustomerOrder{}).
			Where("id = ?", order.ID).
			Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *AllocationService) allocateLine(tx *gorm.DB, item models.OrderItem, preferredBranchID *uint) (LineAllocation, error) {
	line := LineAllocation{OrderItemID: item.ID}

	var alreadyHeld int64
	err := tx.Model(&models.StockReservation{}).
		Where("order_item_id = ? AND status = ?", item.ID, models.ReservationStatusActive).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&alreadyHeld).Error
	if err != nil {
		return line, err
	}

	need := item.Quantity - int(alreadyHeld)
	if need <= 0 {
		return line, nil
	}

	var candidates []models.ProductStock
	err = tx.Where("product_id = ? AND quantity - reserved_quantity > 0", item.ProductID).
		Find(&candidates).Error
	if err != nil {
		return line, err
	}

	// Preferred branch first, then the deepest available pool, so a
	// line lands on as few branches as possible.
	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := branchRank(candidates[i], preferredBranchID), branchRank(candidates[j], preferredBranchID)
		if pi != pj {
			return pi < pj
		}
		return candidates[i].Available() > candidates[j].Available()
	})

	for i := range candidates {
		if need <= 0 {
			break
		}
		stock := &candidates[i]
		take := need
		if avail := stock.Available(); take > avail {
			take = avail
		}
		if take <= 0 {
			continue
		}

		if err := updateStockGuarded(tx, stock, stock.Quantity, stock.ReservedQuantity+take); err != nil {
			return line, err
		}

		reservation := models.StockReservation{
			OrderItemID:    item.ID,
			ProductStockID: stock.ID,
			Quantity:       take,
			Status:         models.ReservationStatusActive,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return line, err
		}

		line.Reserved += take
		need -= take
	}

	line.Missing = need
	return line, nil
}

func branchRank(stock models.ProductStock, preferredBranchID *uint) int {
	if preferredBranchID != nil && stock.BranchID == *preferredBranchID {
		return 0
	}
	return 1
}
