package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-app/internal/service"
)

type StockHandler struct {
	Supply *service.SupplyService
}

func NewStockHandler(supply *service.SupplyService) *StockHandler {
	return &StockHandler{Supply: supply}
}

type ReceiveStockRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	BranchID  uint   `json:"branch_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Reference string `json:"reference"`
}

// ReceiveStock books a supply delivery into the branch ledger.
func (h *StockHandler) ReceiveStock(c *gin.Context) {
	var req ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stock, err := h.Supply.Receive(req.ProductID, req.BranchID, req.Quantity, req.Reference)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stock)
}

func (h *StockHandler) ListStock(c *gin.Context) {
	branchID, ok := queryID(c, "branch_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid branch_id"})
		return
	}

	stocks, err := h.Supply.ListStock(branchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stocks)
}

func (h *StockHandler) GetLowStockAlerts(c *gin.Context) {
	stocks, err := h.Supply.LowStockAlerts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stocks)
}
