package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/xyzlearns/ShopEase1/internal/handlers"
	"github.com/xyzlearns/ShopEase1/internal/middleware"
)

// Options carries the router settings that do not belong to a handler.
type Options struct {
	CORSOrigins       []string
	UploadDir         string
	AdminAPIKey       string
	AuthRatePerMinute int
	AuthRateBurst     int
}

// CORSMiddleware allows the storefront origins and lets the browser read
// the minted cart session header.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.SessionHeader, "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length", middleware.SessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(h.Logger))

	// --- APPLY THE CORS GUARD ---
	if len(opts.CORSOrigins) > 0 {
		router.Use(CORSMiddleware(opts.CORSOrigins))
	}

	router.GET("/health", h.Health)
	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}

	requireAuth := middleware.RequireAuth(h.Auth, h.Logger)
	session := middleware.CartSession(h.Auth, h.Store, h.Logger)
	limiter := middleware.NewRateLimiter(opts.AuthRatePerMinute, opts.AuthRateBurst)

	api := router.Group("/api")
	{
		// --- Public Product Routes ---
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)

		// --- Auth Routes ---
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", limiter.Limit(), h.Register)
			authGroup.POST("/login", limiter.Limit(), h.Login)
			authGroup.GET("/me", requireAuth, h.Me)
		}

		// --- Cart Routes (Session) ---
		cart := api.Group("/cart", session)
		{
			cart.GET("", h.GetCart)
			cart.GET("/summary", h.GetCartSummary)
			cart.POST("", h.AddToCart)
			cart.DELETE("", h.ClearCart)
			cart.PUT("/:id", h.UpdateCartItem)
			cart.DELETE("/:id", h.RemoveCartItem)
		}

		api.GET("/payment/qr", session, h.PaymentQR)

		// --- Order Routes (Login Required) ---
		orders := api.Group("/orders", requireAuth)
		{
			orders.POST("", session, h.PlaceOrder)
			orders.GET("", h.GetMyOrders)
			orders.GET("/:id", h.GetOrderDetails)
		}
	}

	// --- Back-Office Routes ---
	admin := router.Group("/admin", middleware.ValidateAPIKey(opts.AdminAPIKey))
	{
		admin.GET("/orders", h.ListAllOrders)
		admin.GET("/orders/export.xlsx", h.ExportOrders)
		admin.GET("/orders/:id", h.GetAnyOrder)
	}

	return router
}
