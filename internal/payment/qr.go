// Package payment renders UPI payment QR codes for manual checkout.
package payment

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
)

// ErrNotConfigured is returned when no receiving VPA is set.
var ErrNotConfigured = errors.New("upi payments not configured")

const qrSize = 256

// UPI describes the payee encoded into each QR code.
type UPI struct {
	VPA   string
	Payee string
}

// Link builds a upi://pay deep link for amount in INR.
func (u UPI) Link(amount decimal.Decimal) (string, error) {
	if u.VPA == "" {
		return "", ErrNotConfigured
	}
	q := url.Values{}
	q.Set("pa", u.VPA)
	q.Set("pn", u.Payee)
	q.Set("am", amount.StringFixed(2))
	q.Set("cu", "INR")
	return "upi://pay?" + q.Encode(), nil
}

// QR returns a PNG QR code of Link(amount).
func (u UPI) QR(amount decimal.Decimal) ([]byte, error) {
	link, err := u.Link(amount)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
