package priority

import (
	"time"

	"github.com/shopspring/decimal"

	"inventory-app/internal/models"
)

// Score computes the urgency score for an order:
// age in whole days + total line value divided by 100 (floored) + line count.
// Both the age and value factors deliberately truncate fractional parts;
// the classification boundaries depend on that.
func Score(order *models.CustomerOrder, now time.Time) int {
	ageDays := int(now.Sub(order.OrderDate).Hours() / 24)
	if ageDays < 0 {
		ageDays = 0
	}

	totalValue := decimal.Zero
	for _, item := range order.Items {
		totalValue = totalValue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	valueFactor := int(totalValue.Div(decimal.NewFromInt(100)).IntPart())

	return ageDays + valueFactor + len(order.Items)
}
