package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventory-app/internal/models"
)

// newTestDB opens a per-test in-memory sqlite database with the full
// schema migrated. A single connection keeps gorm transactions
// serialized the way the sqlite shared-cache expects.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Branch{},
		&models.Product{},
		&models.Customer{},
		&models.CustomerOrder{},
		&models.OrderItem{},
		&models.ProductStock{},
		&models.StockReservation{},
		&models.StockMovement{},
	))

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func createBranch(t *testing.T, db *gorm.DB, name string) models.Branch {
	t.Helper()
	branch := models.Branch{Name: name, IsActive: true}
	require.NoError(t, db.Create(&branch).Error)
	return branch
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	product := models.Product{Name: name, UnitPrice: decimal.NewFromFloat(price), IsActive: true}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func createStock(t *testing.T, db *gorm.DB, product models.Product, branch models.Branch, quantity, reserved int) models.ProductStock {
	t.Helper()
	stock := models.ProductStock{
		ProductID:         product.ID,
		BranchID:          branch.ID,
		Quantity:          quantity,
		ReservedQuantity:  reserved,
		CriticalThreshold: 5,
	}
	require.NoError(t, db.Create(&stock).Error)
	return stock
}

func createOrder(t *testing.T, db *gorm.DB, customer models.Customer, age time.Duration, lines ...models.OrderItem) models.CustomerOrder {
	t.Helper()
	order := models.CustomerOrder{
		OrderNo:    fmt.Sprintf("ORD-TEST-%d", time.Now().UnixNano()),
		CustomerID: customer.ID,
		OrderDate:  time.Now().Add(-age),
		Status:     models.OrderStatusPending,
	}
	require.NoError(t, db.Create(&order).Error)

	for i := range lines {
		lines[i].OrderID = order.ID
		require.NoError(t, db.Create(&lines[i]).Error)
	}
	order.Items = lines
	return order
}

func createCustomer(t *testing.T, db *gorm.DB, name, mobile string) models.Customer {
	t.Helper()
	customer := models.Customer{Name: name, Mobile: mobile}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

// reloadStock fetches the current ledger row and asserts the core
// invariant every test relies on.
func reloadStock(t *testing.T, db *gorm.DB, id uint) models.ProductStock {
	t.Helper()
	var stock models.ProductStock
	require.NoError(t, db.First(&stock, id).Error)
	require.GreaterOrEqual(t, stock.ReservedQuantity, 0)
	require.LessOrEqual(t, stock.ReservedQuantity, stock.Quantity)
	return stock
}
