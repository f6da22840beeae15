package models

import "github.com/shopspring/decimal"

// CartLine defines the struct for the 'cart_items' table.
// There is at most one line per (SessionID, ProductID).
type CartLine struct {
	ID        int64  `json:"id" db:"id"`
	ProductID int64  `json:"productId" db:"product_id"`
	Quantity  int    `json:"quantity" db:"quantity"`
	SessionID string `json:"sessionId" db:"session_id"`
}

// CartItem is a cart line joined with its product.
type CartItem struct {
	CartLine
	Product Product `json:"product"`
}

// LineTotal is the unit price times the quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
