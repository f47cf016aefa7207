package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inventory-app/internal/models"
)

// SupplyService is the receiving side of the ledger: the only writer of
// physical quantity outside fulfillment. A receipt creates the stock
// row on first delivery and appends an inbound movement.
type SupplyService struct {
	db *gorm.DB
}

func NewSupplyService(db *gorm.DB) *SupplyService {
	return &SupplyService{db: db}
}

// Receive adds qty units of a product to a branch's stock. The
// reference ties the movement back to the supply order; when empty a
// generated receipt id is used so the trail never goes blank.
func (s *SupplyService) Receive(productID, branchID uint, qty int, reference string) (*models.ProductStock, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: receipt quantity must be positive", ErrInvalidState)
	}
	if reference == "" {
		reference = "SUPPLY#" + uuid.NewString()[:8]
	}

	var stock models.ProductStock
	err := withConflictRetry(s.db, func(tx *gorm.DB) error {
		err := tx.Where("product_id = ? AND branch_id = ?", productID, branchID).
			First(&stock).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			stock = models.ProductStock{
				ProductID: productID,
				BranchID:  branchID,
				Quantity:  qty,
			}
			if err := tx.Create(&stock).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := updateStockGuarded(tx, &stock, stock.Quantity+qty, stock.ReservedQuantity); err != nil {
				return err
			}
		}

		movement := models.StockMovement{
			ProductStockID: stock.ID,
			QuantityDelta:  qty,
			Type:           models.MovementTypeInbound,
			Reference:      reference,
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// ListStock returns the ledger rows, optionally for one branch.
func (s *SupplyService) ListStock(branchID *uint) ([]models.ProductStock, error) {
	query := s.db.Preload("Product").Preload("Branch")
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}

	var stocks []models.ProductStock
	if err := query.Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// LowStockAlerts lists rows whose unreserved stock has fallen to the
// critical threshold, the reorder signal for purchasing.
func (s *SupplyService) LowStockAlerts() ([]models.ProductStock, error) {
	var stocks []models.ProductStock
	err := s.db.Preload("Product").Preload("Branch").
		Where("quantity - reserved_quantity <= critical_threshold").
		Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}
