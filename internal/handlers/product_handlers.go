package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xyzlearns/ShopEase1/internal/models"
)

//
// --- Catalog Handlers (Public) ---
//

// ListProducts is the handler for GET /api/products
// An optional ?category= narrows the list to an exact category match.
func (h *Handlers) ListProducts(c *gin.Context) {
	var (
		products []models.Product
		err      error
	)
	if category := c.Query("category"); category != "" {
		products, err = h.Store.ListProductsByCategory(c.Request.Context(), category)
	} else {
		products, err = h.Store.ListProducts(c.Request.Context())
	}
	if err != nil {
		h.internalError(c, "Failed to fetch products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct is the handler for GET /api/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
		return
	}

	product, err := h.Store.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.internalError(c, "Failed to fetch product", err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}
