package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The storefront client reads prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Rating bounds for catalog products.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Product is the model for the 'products' table.
// Products are seeded once and not mutated by the API.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    string          `json:"category" db:"category"`
	Rating      float64         `json:"rating" db:"rating"`
	Image       string          `json:"image" db:"image"`
	Description string          `json:"description" db:"description"`
}

// Valid reports whether the product satisfies the catalog invariants.
func (p Product) Valid() bool {
	if p.Name == "" || p.Price.IsNegative() {
		return false
	}
	return p.Rating >= MinRating && p.Rating <= MaxRating
}
