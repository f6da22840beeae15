package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xyzlearns/ShopEase1/internal/export"
)

//
// --- Back-Office Handlers (API Key) ---
//

// ListAllOrders is the handler for GET /admin/orders
func (h *Handlers) ListAllOrders(c *gin.Context) {
	orders, err := h.Store.ListOrders(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to fetch orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetAnyOrder is the handler for GET /admin/orders/:id
func (h *Handlers) GetAnyOrder(c *gin.Context) {
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
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// ExportOrders is the handler for GET /admin/orders/export.xlsx
func (h *Handlers) ExportOrders(c *gin.Context) {
	orders, err := h.Store.ListOrders(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to fetch orders", err)
		return
	}

	// Render fully before writing headers so a failure can still be a JSON 500.
	var buf bytes.Buffer
	if err := export.WriteOrders(&buf, orders); err != nil {
		h.internalError(c, "Failed to write Excel file", err)
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
