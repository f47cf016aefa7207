package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"inventory-app/internal/models"
	"inventory-app/internal/priority"
)

type OrderLineInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

type CreateOrderInput struct {
	CustomerName    string           `json:"customer_name" binding:"required"`
	CustomerMobile  string           `json:"customer_mobile" binding:"required"`
	CustomerEmail   string           `json:"customer_email"`
	ShippingAddress string           `json:"shipping_address"`
	Items           []OrderLineInput `json:"items" binding:"required"`
}

// OrderPriority is the read-time priority view of an order. It is
// recomputed on every request, never stored.
type OrderPriority struct {
	OrderID    uint                `json:"order_id"`
	Score      int                 `json:"score"`
	Membership priority.Membership `json:"membership"`
	Importance string              `json:"importance"`
}

// OrderService handles order intake and status reads. Allocation,
// fulfillment and release act on the orders it creates.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// Order number format: ORD-YYYYMMDD-SEQ.
func (s *OrderService) generateOrderNo(tx *gorm.DB) string {
	dateStr := time.Now().Format("20060102")
	var lastOrder models.CustomerOrder
	tx.Order("id desc").First(&lastOrder)
	return fmt.Sprintf("ORD-%s-%04d", dateStr, lastOrder.ID+1)
}

// Create registers a customer order, finding or creating the customer
// by mobile and snapshotting current unit prices onto the lines.
func (s *OrderService) Create(input CreateOrderInput) (*models.CustomerOrder, error) {
	var order models.CustomerOrder

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		err := tx.Where("mobile = ?", input.CustomerMobile).First(&customer).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			customer = models.Customer{
				Name:            input.CustomerName,
				Mobile:          input.CustomerMobile,
				Email:           input.CustomerEmail,
				ShippingAddress: input.ShippingAddress,
			}
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		order = models.CustomerOrder{
			OrderNo:    s.generateOrderNo(tx),
			CustomerID: customer.ID,
			Status:     models.OrderStatusPending,
			OrderDate:  time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		totalEstimated := decimal.Zero
		for _, line := range input.Items {
			if line.Quantity <= 0 {
				return fmt.Errorf("%w: line quantity must be positive", ErrInvalidState)
			}

			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrProductNotFound, line.ProductID)
				}
				return err
			}

			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.UnitPrice,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, item)
			totalEstimated = totalEstimated.Add(product.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		order.TotalEstimated = totalEstimated
		return tx.Model(&models.CustomerOrder{}).
			Where("id = ?", order.ID).
			Update("total_estimated", totalEstimated).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders newest first, optionally filtered by status.
func (s *OrderService) List(status string) ([]models.CustomerOrder, error) {
	query := s.db.Preload("Customer").Preload("Items.Product").Order("order_date desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.CustomerOrder
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

var validOrderStatuses = map[string]bool{
	models.OrderStatusPending:   true,
	models.OrderStatusAllocated: true,
	models.OrderStatusPartial:   true,
	models.OrderStatusCompleted: true,
	models.OrderStatusCancelled: true,
}

// UpdateStatus sets an order's status directly, for operator actions
// like cancelling a pending order.
func (s *OrderService) UpdateStatus(orderID uint, status string) error {
	if !validOrderStatuses[status] {
		return fmt.Errorf("%w: unknown order status %q", ErrInvalidState, status)
	}

	res := s.db.Model(&models.CustomerOrder{}).Where("id = ?", orderID).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: order %d", ErrOrderNotFound, orderID)
	}
	return nil
}

// Priority scores one order and classifies it.
func (s *OrderService) Priority(orderID uint) (*OrderPriority, error) {
	var order models.CustomerOrder
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrOrderNotFound, orderID)
		}
		return nil, err
	}

	score := priority.Score(&order, time.Now())
	membership := priority.Evaluate(score)
	return &OrderPriority{
		OrderID:    order.ID,
		Score:      score,
		Membership: membership,
		Importance: membership.Label(),
	}, nil
}
