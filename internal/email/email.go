// Package email sends order receipts to customers.
package email

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/xyzlearns/ShopEase1/internal/checkout"
	"github.com/xyzlearns/ShopEase1/internal/models"
)

// Sender delivers a single plain-text message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender writes messages to the log instead of delivering them.
// It stands in until a mail provider is configured.
type LogSender struct {
	Logger *zap.Logger
}

func (s LogSender) Send(_ context.Context, to, subject, body string) error {
	s.Logger.Info("Email (not delivered)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}

// Receipts emails the customer a summary of each placed order.
type Receipts struct {
	sender Sender
	shop   string
}

var _ checkout.Notifier = (*Receipts)(nil)

func NewReceipts(sender Sender, shop string) *Receipts {
	if shop == "" {
		shop = "ShopEase"
	}
	return &Receipts{sender: sender, shop: shop}
}

func (r *Receipts) Name() string { return "email" }

func (r *Receipts) OrderPlaced(ctx context.Context, order *models.Order) error {
	if order.CustomerEmail == "" {
		return fmt.Errorf("order %d has no customer email", order.ID)
	}
	subject, body := r.Receipt(order)
	return r.sender.Send(ctx, order.CustomerEmail, subject, body)
}

// Receipt renders the subject and body for order.
func (r *Receipts) Receipt(order *models.Order) (string, string) {
	subject := fmt.Sprintf("Your %s order #%d", r.shop, order.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", order.CustomerName)
	fmt.Fprintf(&b, "Thanks for your order. We received your payment screenshot and will confirm once it is verified.\n\n")
	for _, it := range order.Items {
		fmt.Fprintf(&b, "  %s x%d  %s\n", it.Product.Name, it.Quantity, it.LineTotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n", order.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Tax: %s\n", order.Tax.StringFixed(2))
	fmt.Fprintf(&b, "Total: %s\n\n", order.Total.StringFixed(2))
	fmt.Fprintf(&b, "Shipping to: %s, %s, %s %s\n", order.CustomerAddress, order.CustomerCity, order.CustomerState, order.CustomerZip)
	return subject, b.String()
}
