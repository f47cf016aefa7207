package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-app/internal/models"
	"inventory-app/internal/priority"
)

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	db := newTestDB(t)
	bottle := createProduct(t, db, "Bottle", 349)
	lamp := createProduct(t, db, "Lamp", 1299)

	svc := NewOrderService(db)
	order, err := svc.Create(CreateOrderInput{
		CustomerName:    "Asha",
		CustomerMobile:  "9000000001",
		CustomerEmail:   "asha@example.com",
		ShippingAddress: "4 Hill Street",
		Items: []OrderLineInput{
			{ProductID: bottle.ID, Quantity: 2},
			{ProductID: lamp.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Contains(t, order.OrderNo, "ORD-")
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(349)))
	assert.True(t, order.TotalEstimated.Equal(decimal.NewFromInt(1997)))

	var customer models.Customer
	require.NoError(t, db.Where("mobile = ?", "9000000001").First(&customer).Error)
	assert.Equal(t, "Asha", customer.Name)
}

func TestCreateOrderReusesCustomerByMobile(t *testing.T) {
	db := newTestDB(t)
	product := createProduct(t, db, "Bottle", 100)
	existing := createCustomer(t, db, "Asha", "9000000001")

	svc := NewOrderService(db)
	order, err := svc.Create(CreateOrderInput{
		CustomerName:   "Asha K",
		CustomerMobile: "9000000001",
		Items:          []OrderLineInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, order.CustomerID)

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateOrderRejectsUnknownProduct(t *testing.T) {
	db := newTestDB(t)

	svc := NewOrderService(db)
	_, err := svc.Create(CreateOrderInput{
		CustomerName:   "Asha",
		CustomerMobile: "9000000001",
		Items:          []OrderLineInput{{ProductID: 999, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrProductNotFound)

	// The whole intake rolls back, order included.
	var orders int64
	require.NoError(t, db.Model(&models.CustomerOrder{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	product := createProduct(t, db, "Bottle", 100)

	svc := NewOrderService(db)
	_, err := svc.Create(CreateOrderInput{
		CustomerName:   "Asha",
		CustomerMobile: "9000000001",
		Items:          []OrderLineInput{{ProductID: product.ID, Quantity: 0}},
	})
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db, "Asha", "9000000001")
	product := createProduct(t, db, "Bottle", 100)
	order := createOrder(t, db, customer, 0,
		models.OrderItem{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(100)})

	svc := NewOrderService(db)
	require.NoError(t, svc.UpdateStatus(order.ID, models.OrderStatusCancelled))

	var fresh models.CustomerOrder
	require.NoError(t, db.First(&fresh, order.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, fresh.Status)

	require.ErrorIs(t, svc.UpdateStatus(order.ID, "BOGUS"), ErrInvalidState)
	require.ErrorIs(t, svc.UpdateStatus(9999, models.OrderStatusPending), ErrOrderNotFound)
}

func TestOrderPriorityView(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db, "Asha", "9000000001")
	product := createProduct(t, db, "Lamp", 1500)
	order := createOrder(t, db, customer, 0,
		models.OrderItem{ProductID: product.ID, Quantity: 4, UnitPrice: decimal.NewFromInt(1500)})

	svc := NewOrderService(db)
	view, err := svc.Priority(order.ID)
	require.NoError(t, err)
	// age 0 + floor(6000/100)=60 + 1 line
	assert.Equal(t, 61, view.Score)
	assert.Equal(t, priority.ImportanceMedium, view.Importance)
	assert.InDelta(t, 1.0, view.Membership.Medium, 1e-9)

	_, err = svc.Priority(9999)
	require.ErrorIs(t, err, ErrOrderNotFound)
}
