package main

import (
	"log"
	"time"

	"inventory-app/config"
	"inventory-app/internal/handler"
	"inventory-app/internal/models"
	"inventory-app/internal/service"
	"inventory-app/pkg/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()

	// 2. Connect to Database
	database.Connect()

	// 3. Auto-Migrate Models
	log.Println("Running migrations...")

	err := database.DB.AutoMigrate(
		&models.Branch{},
		&models.Product{},
		&models.Customer{},
		&models.CustomerOrder{},
		&models.OrderItem{},
		&models.ProductStock{},
		&models.StockReservation{},
		&models.StockMovement{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully.")

	// 3a. Seed Data
	database.SeedBranchesAndStock()

	// 4. Initialize Router
	r := gin.Default()

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 5. Services
	orderSvc := service.NewOrderService(database.DB)
	allocationSvc := service.NewAllocationService(database.DB)
	fulfillmentSvc := service.NewFulfillmentService(database.DB)
	releaseSvc := service.NewReleaseService(database.DB)
	querySvc := service.NewQueryService(database.DB)
	supplySvc := service.NewSupplyService(database.DB)

	// 6. Setup Routes
	orderHandler := handler.NewOrderHandler(orderSvc)
	reservationHandler := handler.NewReservationHandler(allocationSvc, fulfillmentSvc, releaseSvc, querySvc)
	stockHandler := handler.NewStockHandler(supplySvc)

	orderRoutes := r.Group("/api/v1/orders")
	{
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("", orderHandler.ListOrders)
		orderRoutes.PUT("/:id/status", orderHandler.UpdateOrderStatus)
		orderRoutes.GET("/:id/priority", orderHandler.GetOrderPriority)
		orderRoutes.POST("/:id/reservations", reservationHandler.Reserve)
		orderRoutes.POST("/:id/fulfillments", reservationHandler.Fulfill)
		orderRoutes.POST("/:id/release", reservationHandler.ReleaseOrder)
	}

	reservationRoutes := r.Group("/api/v1/reservations")
	{
		reservationRoutes.GET("", reservationHandler.ListReservations)
		reservationRoutes.GET("/page", reservationHandler.PageReservations)
	}

	stockRoutes := r.Group("/api/v1/stock")
	{
		stockRoutes.POST("/receipts", stockHandler.ReceiveStock)
		stockRoutes.GET("", stockHandler.ListStock)
		stockRoutes.GET("/alerts", stockHandler.GetLowStockAlerts)
	}

	r.GET("/api/v1/priority/classify", orderHandler.ClassifyScore)

	// 7. Start Server
	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
