// Package memory is a keyed-map implementation of store.Store for
// development and tests. Data is lost when the process exits.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xyzlearns/ShopEase1/internal/models"
	"github.com/xyzlearns/ShopEase1/internal/store"
)

// Store keeps every table in a map keyed by id.
// The mutex only protects the maps; it does not serialize cart workflows.
type Store struct {
	mu sync.RWMutex

	products map[int64]models.Product
	lines    map[int64]*models.CartLine
	users    map[int64]models.User
	orders   map[int64]*models.Order

	nextProductID int64
	nextLineID    int64
	nextUserID    int64
	nextOrderID   int64

	now func() time.Time
}

var _ store.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		products:      make(map[int64]models.Product),
		lines:         make(map[int64]*models.CartLine),
		users:         make(map[int64]models.User),
		orders:        make(map[int64]*models.Order),
		nextProductID: 1,
		nextLineID:    1,
		nextUserID:    1,
		nextOrderID:   1,
		now:           time.Now,
	}
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

//
// --- Catalog ---
//

func (s *Store) SeedProducts(_ context.Context, products []models.Product) error {
	if err := store.CheckProducts(products); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.products) > 0 {
		return nil
	}
	for _, p := range products {
		p.ID = s.nextProductID
		s.nextProductID++
		s.products[p.ID] = p
	}
	return nil
}

func (s *Store) ListProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterProducts(func(models.Product) bool { return true }), nil
}

func (s *Store) ListProductsByCategory(_ context.Context, category string) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterProducts(func(p models.Product) bool { return p.Category == category }), nil
}

func (s *Store) filterProducts(keep func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

//
// --- Cart ---
//

func (s *Store) ListForSession(_ context.Context, sessionID string) ([]models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []models.CartItem{}
	for _, line := range s.lines {
		if line.SessionID != sessionID {
			continue
		}
		p, ok := s.products[line.ProductID]
		if !ok {
			continue
		}
		items = append(items, models.CartItem{CartLine: *line, Product: p})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) AddLine(_ context.Context, sessionID string, productID int64, quantity int) (*models.CartLine, error) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.lines {
		if line.SessionID == sessionID && line.ProductID == productID {
			line.Quantity += quantity
			cp := *line
			return &cp, nil
		}
	}

	line := &models.CartLine{
		ID:        s.nextLineID,
		ProductID: productID,
		Quantity:  quantity,
		SessionID: sessionID,
	}
	s.nextLineID++
	s.lines[line.ID] = line
	cp := *line
	return &cp, nil
}

func (s *Store) UpdateQuantity(_ context.Context, sessionID string, lineID int64, quantity int) (*models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.lines[lineID]
	if !ok || line.SessionID != sessionID {
		return nil, nil
	}
	line.Quantity = quantity
	cp := *line
	return &cp, nil
}

func (s *Store) RemoveLine(_ context.Context, sessionID string, lineID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line, ok := s.lines[lineID]; !ok || line.SessionID != sessionID {
		return false, nil
	}
	delete(s.lines, lineID)
	return true, nil
}

func (s *Store) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, line := range s.lines {
		if line.SessionID == sessionID {
			delete(s.lines, id)
		}
	}
	return nil
}

//
// --- Users ---
//

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return store.ErrEmailTaken
		}
	}
	user.ID = s.nextUserID
	s.nextUserID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

//
// --- Orders ---
//

func (s *Store) CreateOrder(_ context.Context, order *models.Order) error {
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if err := store.CheckOrder(order); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = s.nextOrderID
	s.nextOrderID++
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.now()
	}
	s.orders[order.ID] = order.Clone()
	return nil
}

func (s *Store) GetOrder(_ context.Context, id int64) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return o.Clone(), nil
}

func (s *Store) ListOrders(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterOrders(func(*models.Order) bool { return true }), nil
}

func (s *Store) ListOrdersByUser(_ context.Context, userID int64) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterOrders(func(o *models.Order) bool {
		return o.UserID != nil && *o.UserID == userID
	}), nil
}

func (s *Store) filterOrders(keep func(*models.Order) bool) []models.Order {
	out := []models.Order{}
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, *o.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
