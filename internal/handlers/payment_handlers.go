package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/xyzlearns/ShopEase1/internal/middleware"
	"github.com/xyzlearns/ShopEase1/internal/payment"
)

// PaymentQR is the handler for GET /api/payment/qr
// Without ?amount= the QR encodes the session cart total.
func (h *Handlers) PaymentQR(c *gin.Context) {
	if h.UPI.VPA == "" {
		c.JSON(http.StatusNotFound, gin.H{"message": "UPI payments are not configured"})
		return
	}

	var amount decimal.Decimal
	if raw := c.Query("amount"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || parsed.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid amount"})
			return
		}
		amount = parsed
	} else {
		_, totals, err := h.Checkout.Summary(c.Request.Context(), middleware.SessionID(c))
		if err != nil {
			h.internalError(c, "Failed to fetch cart summary", err)
			return
		}
		amount = totals.Total
	}

	png, err := h.UPI.QR(amount)
	if errors.Is(err, payment.ErrNotConfigured) {
		c.JSON(http.StatusNotFound, gin.H{"message": "UPI payments are not configured"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to generate QR code", err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
