// Package store defines the repositories behind the storefront and the
// helpers shared by their implementations.
//
// Reads of a single record return (nil, nil) when the record does not exist.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/xyzlearns/ShopEase1/internal/models"
)

// ErrEmailTaken is returned by CreateUser when the email is already registered.
var ErrEmailTaken = errors.New("store: email already registered")

// ErrInvalidRecord is returned when a write would break a model invariant.
var ErrInvalidRecord = errors.New("store: invalid record")

// CheckProducts rejects a catalog holding a product with an empty name, a
// negative price or an out-of-range rating.
func CheckProducts(products []models.Product) error {
	for i, p := range products {
		if !p.Valid() {
			return fmt.Errorf("%w: product %d (%q)", ErrInvalidRecord, i, p.Name)
		}
	}
	return nil
}

// CheckOrder rejects an order with an unknown status or negative money.
func CheckOrder(order *models.Order) error {
	if !order.Status.Valid() {
		return fmt.Errorf("%w: order status %q", ErrInvalidRecord, order.Status)
	}
	if order.Subtotal.IsNegative() || order.Tax.IsNegative() || order.Total.IsNegative() {
		return fmt.Errorf("%w: negative order amount", ErrInvalidRecord)
	}
	return nil
}

// Catalog holds product records.
type Catalog interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	SeedProducts(ctx context.Context, products []models.Product) error
}

// Carts holds per-session cart lines.
type Carts interface {
	ListForSession(ctx context.Context, sessionID string) ([]models.CartItem, error)
	AddLine(ctx context.Context, sessionID string, productID int64, quantity int) (*models.CartLine, error)
	// UpdateQuantity and RemoveLine only touch a line owned by sessionID;
	// a line of another session is reported as missing.
	UpdateQuantity(ctx context.Context, sessionID string, lineID int64, quantity int) (*models.CartLine, error)
	RemoveLine(ctx context.Context, sessionID string, lineID int64) (bool, error)
	Clear(ctx context.Context, sessionID string) error
}

// Users holds registered accounts.
type Users interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Orders is the append-only order ledger.
type Orders interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error)
}

// Store bundles every repository of one backend.
type Store interface {
	Catalog
	Carts
	Users
	Orders
	Close() error
}

// MergeCarts moves every line of the from session into the to session,
// summing quantities for products present in both, then clears from.
func MergeCarts(ctx context.Context, carts Carts, from, to string) error {
	if from == "" || from == to {
		return nil
	}
	items, err := carts.ListForSession(ctx, from)
	if err != nil {
		return fmt.Errorf("list session %q: %w", from, err)
	}
	if len(items) == 0 {
		return nil
	}
	for _, it := range items {
		if _, err := carts.AddLine(ctx, to, it.ProductID, it.Quantity); err != nil {
			return fmt.Errorf("move product %d: %w", it.ProductID, err)
		}
	}
	return carts.Clear(ctx, from)
}
