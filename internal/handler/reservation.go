package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inventory-app/internal/service"
)

type ReservationHandler struct {
	Allocator   *service.AllocationService
	Fulfillment *service.FulfillmentService
	Release     *service.ReleaseService
	Query       *service.QueryService
}

func NewReservationHandler(
	allocator *service.AllocationService,
	fulfillment *service.FulfillmentService,
	release *service.ReleaseService,
	query *service.QueryService,
) *ReservationHandler {
	return &ReservationHandler{
		Allocator:   allocator,
		Fulfillment: fulfillment,
		Release:     release,
		Query:       query,
	}
}

type ReserveRequest struct {
	PreferredBranchID *uint `json:"preferred_branch_id"`
}

func (h *ReservationHandler) Reserve(c *gin.Context) {
	orderID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req ReserveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	report, err := h.Allocator.Reserve(orderID, req.PreferredBranchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

type FulfillRequest struct {
	ReservationID *uint `json:"reservation_id"`
	BranchID      *uint `json:"branch_id"`
}

func (h *ReservationHandler) Fulfill(c *gin.Context) {
	orderID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req FulfillRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	switch {
	case req.ReservationID != nil:
		err = h.Fulfillment.FulfillReservation(orderID, *req.ReservationID)
	case req.BranchID != nil:
		err = h.Fulfillment.FulfillForBranch(orderID, *req.BranchID)
	default:
		err = h.Fulfillment.FulfillReservationsForOrder(orderID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservations fulfilled"})
}

type ReleaseRequest struct {
	Confirm bool `json:"confirm"`
}

func (h *ReservationHandler) ReleaseOrder(c *gin.Context) {
	orderID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req ReleaseRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := h.Release.ReleaseReservationsForOrder(orderID, req.Confirm); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservations released"})
}

func (h *ReservationHandler) ListReservations(c *gin.Context) {
	branchID, ok := queryID(c, "branch_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid branch_id"})
		return
	}

	views, err := h.Query.List(branchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ReservationHandler) PageReservations(c *gin.Context) {
	branchID, ok := queryID(c, "branch_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid branch_id"})
		return
	}

	params := service.PageParams{
		Page:       0,
		Size:       10,
		Sort:       c.Query("sort"),
		Search:     c.Query("search"),
		BranchID:   branchID,
		Importance: c.Query("importance"),
	}
	if v := c.Query("page"); v != "" {
		params.Page, _ = strconv.Atoi(v)
	}
	if v := c.Query("size"); v != "" {
		params.Size, _ = strconv.Atoi(v)
	}

	result, err := h.Query.Page(params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// queryID parses an optional uint query parameter; nil means absent.
func queryID(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, false
	}
	v := uint(id)
	return &v, true
}
