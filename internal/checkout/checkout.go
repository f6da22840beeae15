// Package checkout turns a session cart plus a payment screenshot into an order.
//
// PlaceOrder runs in three phases. Evidence (saving and mirroring the proof)
// and notifications (spreadsheet, events) are best-effort: their failures are
// logged and never abort the order. The core phase (order insert, cart clear)
// is the only one whose failure is returned.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xyzlearns/ShopEase1/internal/models"
	"github.com/xyzlearns/ShopEase1/internal/store"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrProofRequired   = errors.New("payment screenshot is required")
	ErrInvalidFileType = errors.New("payment screenshot must be JPEG or PNG")
	ErrFileTooLarge    = errors.New("payment screenshot exceeds 5MB")
)

// notifyTimeout bounds each notifier; they run detached from request cancellation.
const notifyTimeout = 15 * time.Second

// Notifier is told about every order after it is committed.
type Notifier interface {
	Name() string
	OrderPlaced(ctx context.Context, order *models.Order) error
}

// Request is the input of PlaceOrder.
type Request struct {
	SessionID string
	UserID    int64
	Billing   models.Billing
	Proof     *ProofFile
}

type Service struct {
	carts     store.Carts
	orders    store.Orders
	proofs    ProofStore
	mirror    ProofMirror
	notifiers []Notifier
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires the workflow. proofs may be nil, in which case orders are
// created without a proof URL.
func NewService(carts store.Carts, orders store.Orders, proofs ProofStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{carts: carts, orders: orders, proofs: proofs, logger: logger, now: time.Now}
}

// SetMirror installs the secondary proof copy. nil disables mirroring.
func (s *Service) SetMirror(m ProofMirror) {
	s.mirror = m
}

// AddNotifier appends n to the notification phase. Notifiers run in the
// order they were added.
func (s *Service) AddNotifier(n Notifier) {
	s.notifiers = append(s.notifiers, n)
}

// Summary returns the cart lines of a session with their totals.
func (s *Service) Summary(ctx context.Context, sessionID string) ([]models.CartItem, Totals, error) {
	items, err := s.carts.ListForSession(ctx, sessionID)
	if err != nil {
		return nil, Totals{}, fmt.Errorf("list cart: %w", err)
	}
	return items, ComputeTotals(items), nil
}

// PlaceOrder validates the request, records the order and empties the cart.
func (s *Service) PlaceOrder(ctx context.Context, req Request) (*models.Order, error) {
	items, totals, err := s.Summary(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := ValidateProof(req.Proof); err != nil {
		return nil, err
	}

	log := s.logger.With(zap.String("session_id", req.SessionID), zap.Int64("user_id", req.UserID))

	// Evidence
	name := ProofName(req.Proof, s.now())
	log = log.With(zap.String("proof", name))
	var proofURL, backupURL *string
	if s.proofs != nil {
		s.bestEffort(log, "save proof", func() error {
			p, err := s.proofs.Save(ctx, name, req.Proof)
			if err != nil {
				return err
			}
			proofURL = &p.URL
			return nil
		})
	}
	if s.mirror != nil {
		s.bestEffort(log, "mirror proof to "+s.mirror.Name(), func() error {
			u, err := s.mirror.Mirror(ctx, name, req.Proof)
			if err != nil {
				return err
			}
			backupURL = &u
			return nil
		})
	}

	// Core
	userID := req.UserID
	order := &models.Order{
		UserID:               &userID,
		CustomerName:         req.Billing.FullName(),
		CustomerEmail:        req.Billing.Email,
		CustomerAddress:      req.Billing.Address,
		CustomerCity:         req.Billing.City,
		CustomerState:        req.Billing.State,
		CustomerZip:          req.Billing.Zip,
		Items:                items,
		Subtotal:             totals.Subtotal,
		Tax:                  totals.Tax,
		Total:                totals.Total,
		PaymentScreenshotURL: proofURL,
		PaymentBackupURL:     backupURL,
		Status:               models.OrderStatusPaymentUploaded,
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if err := s.carts.Clear(ctx, req.SessionID); err != nil {
		return nil, fmt.Errorf("clear cart after order %d: %w", order.ID, err)
	}

	log.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.String("total", order.Total.StringFixed(2)),
		zap.Bool("has_proof", proofURL != nil))

	// Notifications
	for _, n := range s.notifiers {
		s.bestEffort(log, "notify "+n.Name(), func() error {
			nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
			defer cancel()
			return n.OrderPlaced(nctx, order)
		})
	}

	return order, nil
}

// bestEffort runs fn and logs a failure without propagating it.
func (s *Service) bestEffort(log *zap.Logger, step string, fn func() error) {
	if err := fn(); err != nil {
		log.Warn("Best-effort step failed", zap.String("step", step), zap.Error(err))
	}
}
