package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Mobile          string    `gorm:"size:15;unique;not null" json:"mobile"`
	Email           string    `gorm:"size:100" json:"email"`
	ShippingAddress string    `gorm:"type:text" json:"shipping_address"`
	CreatedAt       time.Time `json:"created_at"`
}

type CustomerOrder struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	OrderNo        string          `gorm:"size:50;unique;not null" json:"order_no"`
	CustomerID     uint            `json:"customer_id"`
	Customer       Customer        `gorm:"foreignKey:CustomerID" json:"customer"`
	OrderDate      time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"order_date"`
	Status         string          `gorm:"size:20;default:'PENDING'" json:"status"`
	TotalEstimated decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_estimated"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `json:"order_id"`
	Order     CustomerOrder   `gorm:"foreignKey:OrderID" json:"-"`
	ProductID uint            `json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}

// Order statuses. Allocation outcomes move PENDING to ALLOCATED or
// PARTIAL; fulfillment of the last active hold moves it to COMPLETED.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusAllocated = "ALLOCATED"
	OrderStatusPartial   = "PARTIAL"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)
