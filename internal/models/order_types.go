package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the closed set of states an order can be in.
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusPaymentUploaded OrderStatus = "payment_uploaded" // evidence submitted, awaiting manual verification
	OrderStatusPaymentVerified OrderStatus = "payment_verified"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaymentUploaded, OrderStatusPaymentVerified, OrderStatusCancelled:
		return true
	}
	return false
}

// Billing holds the customer details captured at checkout.
type Billing struct {
	FirstName string `form:"firstName" json:"firstName" binding:"required,notblank"`
	LastName  string `form:"lastName" json:"lastName" binding:"required,notblank"`
	Email     string `form:"email" json:"email" binding:"required,email"`
	Address   string `form:"address" json:"address" binding:"required,notblank"`
	City      string `form:"city" json:"city" binding:"required,notblank"`
	State     string `form:"state" json:"state" binding:"required,notblank"`
	Zip       string `form:"zip" json:"zip" binding:"required,notblank"`
}

// Trimmed returns b with surrounding whitespace removed from every field.
func (b Billing) Trimmed() Billing {
	return Billing{
		FirstName: strings.TrimSpace(b.FirstName),
		LastName:  strings.TrimSpace(b.LastName),
		Email:     strings.TrimSpace(b.Email),
		Address:   strings.TrimSpace(b.Address),
		City:      strings.TrimSpace(b.City),
		State:     strings.TrimSpace(b.State),
		Zip:       strings.TrimSpace(b.Zip),
	}
}

// FullName is "First Last".
func (b Billing) FullName() string {
	return strings.TrimSpace(b.FirstName + " " + b.LastName)
}

// Order is the model for the 'orders' table.
// Items is a point-in-time snapshot of the cart and never changes after creation.
type Order struct {
	ID                   int64           `json:"id" db:"id"`
	UserID               *int64          `json:"userId" db:"user_id"`
	CustomerName         string          `json:"customerName" db:"customer_name"`
	CustomerEmail        string          `json:"customerEmail" db:"customer_email"`
	CustomerAddress      string          `json:"customerAddress" db:"customer_address"`
	CustomerCity         string          `json:"customerCity" db:"customer_city"`
	CustomerState        string          `json:"customerState" db:"customer_state"`
	CustomerZip          string          `json:"customerZip" db:"customer_zip"`
	Items                []CartItem      `json:"items" db:"items"`
	Subtotal             decimal.Decimal `json:"subtotal" db:"subtotal"`
	Tax                  decimal.Decimal `json:"tax" db:"tax"`
	Total                decimal.Decimal `json:"total" db:"total"`
	PaymentScreenshotURL *string         `json:"paymentScreenshotUrl" db:"payment_screenshot_url"`
	PaymentBackupURL     *string         `json:"paymentBackupUrl,omitempty" db:"payment_backup_url"`
	Status               OrderStatus     `json:"status" db:"status"`
	CreatedAt            time.Time       `json:"createdAt" db:"created_at"`
}

// ItemSummary renders the items as "Name (xN); Name (xM)".
func (o *Order) ItemSummary() string {
	parts := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		parts = append(parts, fmt.Sprintf("%s (x%d)", it.Product.Name, it.Quantity))
	}
	return strings.Join(parts, "; ")
}

// LedgerRow is the flat 14-column row used by the spreadsheet mirror and the xlsx export.
func (o *Order) LedgerRow() []string {
	proof := ""
	if o.PaymentScreenshotURL != nil {
		proof = *o.PaymentScreenshotURL
	}
	return []string{
		fmt.Sprintf("%d", o.ID),
		o.CustomerName,
		o.CustomerEmail,
		o.CustomerAddress,
		o.CustomerCity,
		o.CustomerState,
		o.CustomerZip,
		o.Subtotal.StringFixed(2),
		o.Tax.StringFixed(2),
		o.Total.StringFixed(2),
		string(o.Status),
		proof,
		o.CreatedAt.UTC().Format(time.RFC3339),
		o.ItemSummary(),
	}
}

// LedgerHeader names the LedgerRow columns.
var LedgerHeader = []string{
	"Order ID", "Customer Name", "Email", "Address", "City", "State", "ZIP",
	"Subtotal", "Tax", "Total", "Status", "Payment Screenshot", "Created At", "Items",
}

// Clone returns a deep copy so callers cannot mutate a stored snapshot.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	cp.Items = append([]CartItem(nil), o.Items...)
	if o.UserID != nil {
		id := *o.UserID
		cp.UserID = &id
	}
	if o.PaymentScreenshotURL != nil {
		u := *o.PaymentScreenshotURL
		cp.PaymentScreenshotURL = &u
	}
	if o.PaymentBackupURL != nil {
		u := *o.PaymentBackupURL
		cp.PaymentBackupURL = &u
	}
	return &cp
}
