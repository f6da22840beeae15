package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xyzlearns/ShopEase1/internal/checkout"
	"github.com/xyzlearns/ShopEase1/internal/middleware"
	"github.com/xyzlearns/ShopEase1/internal/models"
)

//
// --- Order Handlers (Login Required) ---
//

var checkoutMessages = map[error]string{
	checkout.ErrEmptyCart:       "Cart is empty",
	checkout.ErrProofRequired:   "Payment screenshot is required to complete the order",
	checkout.ErrInvalidFileType: "Invalid file type. Only JPEG, JPG, and PNG files are allowed",
	checkout.ErrFileTooLarge:    "File too large. Maximum size is 5MB",
}

func (h *Handlers) checkoutRejected(c *gin.Context, err error) bool {
	for sentinel, msg := range checkoutMessages {
		if errors.Is(err, sentinel) {
			c.JSON(http.StatusBadRequest, gin.H{"message": msg})
			return true
		}
	}
	return false
}

// PlaceOrder is the handler for POST /api/orders
// It expects multipart/form-data with the billing fields and a payment screenshot.
func (h *Handlers) PlaceOrder(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	limitBody(c)

	// 1. --- Bind & Validate Billing ---
	var billing models.Billing
	if err := c.ShouldBind(&billing); err != nil {
		if isBodyTooLarge(err) {
			h.checkoutRejected(c, checkout.ErrFileTooLarge)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}
	billing = billing.Trimmed()

	// 2. --- Read the Screenshot ---
	proof, err := readProof(c)
	if err != nil {
		if isBodyTooLarge(err) {
			h.checkoutRejected(c, checkout.ErrFileTooLarge)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid upload", "errors": err.Error()})
		return
	}

	// 3. --- Run Checkout ---
	order, err := h.Checkout.PlaceOrder(c.Request.Context(), checkout.Request{
		SessionID: middleware.SessionID(c),
		UserID:    user.ID,
		Billing:   billing,
		Proof:     proof,
	})
	if err != nil {
		if h.checkoutRejected(c, err) {
			return
		}
		h.internalError(c, "Failed to create order", err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetMyOrders is the handler for GET /api/orders
func (h *Handlers) GetMyOrders(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	orders, err := h.Store.ListOrdersByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.internalError(c, "Failed to fetch orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrderDetails is the handler for GET /api/orders/:id
// Orders of other accounts are reported as not found.
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
		return
	}

	order, err := h.Store.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.internalError(c, "Failed to fetch order", err)
		return
	}
	if order == nil || order.UserID == nil || *order.UserID != user.ID {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}
