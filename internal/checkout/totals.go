package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/xyzlearns/ShopEase1/internal/models"
)

// TaxRate is applied to the subtotal.
var TaxRate = decimal.RequireFromString("0.10")

// Totals is the money breakdown of a cart.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// ComputeTotals sums price times quantity and adds tax rounded to cents.
// ItemCount is the number of units, not lines.
func ComputeTotals(items []models.CartItem) Totals {
	subtotal := decimal.Zero
	count := 0
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
		count += it.Quantity
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	return Totals{
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal.Add(tax),
		ItemCount: count,
	}
}
