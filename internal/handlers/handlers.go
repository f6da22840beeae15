package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xyzlearns/ShopEase1/internal/auth"
	"github.com/xyzlearns/ShopEase1/internal/checkout"
	"github.com/xyzlearns/ShopEase1/internal/payment"
	"github.com/xyzlearns/ShopEase1/internal/store"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store       store.Store
	StoreDriver string // reported by /health
	Auth        *auth.Service
	Checkout    *checkout.Service
	UPI         payment.UPI
	Logger      *zap.Logger
}

// Health is the handler for GET /health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "store": h.StoreDriver})
}

// internalError logs err and replies 500 with a generic message.
func (h *Handlers) internalError(c *gin.Context, message string, err error) {
	h.Logger.Error(message,
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}
