package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xyzlearns/ShopEase1/internal/middleware"
)

//
// --- Cart Handlers (Session-Scoped) ---
//

// AddToCartInput defines the JSON for adding an item to the cart.
// A missing or non-positive quantity adds one unit.
type AddToCartInput struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
	Quantity  int   `json:"quantity"`
}

// UpdateCartInput defines the JSON for changing a line's quantity.
type UpdateCartInput struct {
	Quantity int `json:"quantity"`
}

// GetCart is the handler for GET /api/cart
func (h *Handlers) GetCart(c *gin.Context) {
	items, err := h.Store.ListForSession(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.internalError(c, "Failed to fetch cart items", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetCartSummary is the handler for GET /api/cart/summary
// Totals come from the same computation checkout uses.
func (h *Handlers) GetCartSummary(c *gin.Context) {
	items, totals, err := h.Checkout.Summary(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.internalError(c, "Failed to fetch cart summary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":     items,
		"subtotal":  totals.Subtotal,
		"tax":       totals.Tax,
		"total":     totals.Total,
		"itemCount": totals.ItemCount,
	})
}

// AddToCart is the handler for POST /api/cart
func (h *Handlers) AddToCart(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid cart item data", "errors": err.Error()})
		return
	}

	// 2. --- Check the Product Exists ---
	ctx := c.Request.Context()
	product, err := h.Store.GetProduct(ctx, input.ProductID)
	if err != nil {
		h.internalError(c, "Failed to add item to cart", err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	// 3. --- Add or Merge ---
	line, err := h.Store.AddLine(ctx, middleware.SessionID(c), input.ProductID, input.Quantity)
	if err != nil {
		h.internalError(c, "Failed to add item to cart", err)
		return
	}
	c.JSON(http.StatusOK, line)
}

// UpdateCartItem is the handler for PUT /api/cart/:id
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid cart item ID"})
		return
	}

	var input UpdateCartInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid quantity"})
		return
	}

	line, err := h.Store.UpdateQuantity(c.Request.Context(), middleware.SessionID(c), id, input.Quantity)
	if err != nil {
		h.internalError(c, "Failed to update cart item", err)
		return
	}
	if line == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
		return
	}
	c.JSON(http.StatusOK, line)
}

// RemoveCartItem is the handler for DELETE /api/cart/:id
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid cart item ID"})
		return
	}

	removed, err := h.Store.RemoveLine(c.Request.Context(), middleware.SessionID(c), id)
	if err != nil {
		h.internalError(c, "Failed to remove cart item", err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClearCart is the handler for DELETE /api/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	if err := h.Store.Clear(c.Request.Context(), middleware.SessionID(c)); err != nil {
		h.internalError(c, "Failed to clear cart", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
