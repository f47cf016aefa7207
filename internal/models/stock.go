package models

import (
	"time"
)

// ProductStock is the per-(product, branch) ledger row and the single
// source of truth for availability. Version is the optimistic
// concurrency token: every write bumps it, and writers must match the
// version they read or the update affects zero rows.
type ProductStock struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProductID         uint      `gorm:"uniqueIndex:idx_product_branch;not null" json:"product_id"`
	Product           Product   `gorm:"foreignKey:ProductID" json:"product"`
	BranchID          uint      `gorm:"uniqueIndex:idx_product_branch;not null" json:"branch_id"`
	Branch            Branch    `gorm:"foreignKey:BranchID" json:"branch"`
	Quantity          int       `gorm:"default:0" json:"quantity"`
	ReservedQuantity  int       `gorm:"default:0" json:"reserved_quantity"`
	CriticalThreshold int       `gorm:"default:10" json:"critical_threshold"`
	Version           int       `gorm:"default:0" json:"version"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Available is the portion of on-hand stock not held by a reservation.
func (ps *ProductStock) Available() int {
	return ps.Quantity - ps.ReservedQuantity
}

const (
	ReservationStatusActive    = "ACTIVE"
	ReservationStatusFulfilled = "FULFILLED"
	ReservationStatusReleased  = "RELEASED"
)

// StockReservation is a soft hold of stock for one order line. ACTIVE
// reservations count against ProductStock.ReservedQuantity; FULFILLED
// and RELEASED are terminal and never re-enter ACTIVE.
type StockReservation struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	OrderItemID    uint         `gorm:"index;not null" json:"order_item_id"`
	OrderItem      OrderItem    `gorm:"foreignKey:OrderItemID" json:"order_item"`
	ProductStockID uint         `gorm:"index;not null" json:"product_stock_id"`
	ProductStock   ProductStock `gorm:"foreignKey:ProductStockID" json:"product_stock"`
	Quantity       int          `gorm:"not null" json:"quantity"`
	Status         string       `gorm:"size:20;default:'ACTIVE';index" json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	FulfilledAt    *time.Time   `json:"fulfilled_at"`
	ReleasedAt     *time.Time   `json:"released_at"`
}

const (
	MovementTypeInbound  = "IN"
	MovementTypeOutbound = "OUT"
)

// StockMovement is the append-only audit trail of physical quantity
// changes. QuantityDelta is signed: positive inbound, negative outbound.
type StockMovement struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	ProductStockID uint         `gorm:"index;not null" json:"product_stock_id"`
	ProductStock   ProductStock `gorm:"foreignKey:ProductStockID" json:"product_stock"`
	QuantityDelta  int          `gorm:"not null" json:"quantity_delta"`
	Type           string       `gorm:"size:10;not null" json:"type"`
	OrderItemID    *uint        `json:"order_item_id"`
	Reference      string       `gorm:"size:100" json:"reference"`
	CreatedAt      time.Time    `json:"created_at"`
}
