package service

import (
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"inventory-app/internal/models"
	"inventory-app/internal/priority"
)

// ReservationView is a reservation annotated with its order's
// live-computed priority. Score and memberships are derived on every
// read and never persisted.
type ReservationView struct {
	models.StockReservation
	OrderID       uint                `json:"order_id"`
	OrderNo       string              `json:"order_no"`
	CustomerName  string              `json:"customer_name"`
	PriorityScore int                 `json:"priority_score"`
	Membership    priority.Membership `json:"membership"`
	Importance    string              `json:"importance"`
}

type PageParams struct {
	Page       int
	Size       int
	Sort       string
	Search     string
	BranchID   *uint
	Importance string
}

type PagedResult struct {
	Data  []ReservationView `json:"data"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
}

// QueryService is the read side of the reservation engine: it joins
// reservations to their order and stock context and ranks them for the
// warehouse work queue. No persistence side effects.
type QueryService struct {
	db *gorm.DB
}

func NewQueryService(db *gorm.DB) *QueryService {
	return &QueryService{db: db}
}

// List returns all reservations, newest first, optionally narrowed to
// one branch.
func (s *QueryService) List(branchID *uint) ([]ReservationView, error) {
	query := s.db.
		Preload("OrderItem").
		Preload("OrderItem.Order").
		Preload("OrderItem.Order.Customer").
		Preload("OrderItem.Order.Items").
		Preload("ProductStock").
		Preload("ProductStock.Product").
		Preload("ProductStock.Branch").
		Order("created_at desc")

	if branchID != nil {
		query = query.
			Joins("JOIN product_stocks ON product_stocks.id = stock_reservations.product_stock_id").
			Where("product_stocks.branch_id = ?", *branchID)
	}

	var reservations []models.StockReservation
	if err := query.Find(&reservations).Error; err != nil {
		return nil, err
	}

	return annotate(reservations, time.Now()), nil
}

// Page applies search, sort, importance filter and pagination, in that
// order, over the annotated reservation set.
func (s *QueryService) Page(params PageParams) (*PagedResult, error) {
	views, err := s.List(params.BranchID)
	if err != nil {
		return nil, err
	}

	if params.Search != "" {
		views = filterSearch(views, params.Search)
	}

	sortViews(views, params.Sort)

	if params.Importance != "" {
		views = filterImportance(views, params.Importance)
	}

	total := len(views)
	if params.Size <= 0 {
		params.Size = 10
	}
	if params.Page < 0 {
		params.Page = 0
	}
	start := params.Page * params.Size
	if start > total {
		start = total
	}
	end := start + params.Size
	if end > total {
		end = total
	}

	return &PagedResult{
		Data:  views[start:end],
		Total: total,
		Page:  params.Page,
		Size:  params.Size,
	}, nil
}

// annotate computes score and memberships once per distinct order and
// attaches them to every reservation row of that order.
func annotate(reservations []models.StockReservation, now time.Time) []ReservationView {
	scores := make(map[uint]int)
	views := make([]ReservationView, 0, len(reservations))

	for _, r := range reservations {
		order := r.OrderItem.Order
		score, ok := scores[order.ID]
		if !ok {
			score = priority.Score(&order, now)
			scores[order.ID] = score
		}
		membership := priority.Evaluate(score)
		views = append(views, ReservationView{
			StockReservation: r,
			OrderID:          order.ID,
			OrderNo:          order.OrderNo,
			CustomerName:     order.Customer.Name,
			PriorityScore:    score,
			Membership:       membership,
			Importance:       membership.Label(),
		})
	}
	return views
}

func filterSearch(views []ReservationView, search string) []ReservationView {
	needle := strings.ToLower(search)
	matched := views[:0]
	for _, v := range views {
		haystack := strings.ToLower(strings.Join([]string{
			v.OrderItem.Order.Customer.Name,
			v.OrderItem.Order.Customer.Email,
			v.OrderItem.Order.Customer.ShippingAddress,
			v.ProductStock.Product.Name,
			v.ProductStock.Branch.Name,
		}, "\n"))
		if strings.Contains(haystack, needle) {
			matched = append(matched, v)
		}
	}
	return matched
}

func filterImportance(views []ReservationView, importance string) []ReservationView {
	matched := views[:0]
	for _, v := range views {
		var degree float64
		switch strings.ToLower(importance) {
		case "low":
			degree = v.Membership.Low
		case "medium":
			degree = v.Membership.Medium
		case "high":
			degree = v.Membership.High
		}
		if degree > 0.5 {
			matched = append(matched, v)
		}
	}
	return matched
}

func sortViews(views []ReservationView, key string) {
	less := func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	}

	switch key {
	case "order":
		less = func(i, j int) bool {
			return views[i].OrderItem.OrderID < views[j].OrderItem.OrderID
		}
	case "customer":
		less = textualLess(views, func(v ReservationView) string {
			return v.OrderItem.Order.Customer.Name
		})
	case "product":
		less = textualLess(views, func(v ReservationView) string {
			return v.ProductStock.Product.Name
		})
	case "branch":
		less = textualLess(views, func(v ReservationView) string {
			return v.ProductStock.Branch.Name
		})
	case "quantity":
		less = func(i, j int) bool {
			return views[i].Quantity > views[j].Quantity
		}
	}

	sort.SliceStable(views, less)
}

func textualLess(views []ReservationView, field func(ReservationView) string) func(i, j int) bool {
	return func(i, j int) bool {
		return strings.ToLower(field(views[i])) < strings.ToLower(field(views[j]))
	}
}
