package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boostbay/boostbay-golang/internal/handlers"
	"github.com/boostbay/boostbay-golang/internal/middleware"
)

// CORSMiddleware tells the browser the storefront frontend may call us. The
// allowed origin comes from configuration so staging and production differ
// only in env.
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight OPTIONS requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, corsOrigin string) *gin.Engine {
	router := gin.Default()

	// CORS must be the very first thing the router uses.
	router.Use(CORSMiddleware(corsOrigin))

	v1 := router.Group("/v1")
	{
		// --- Health Check (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// --- Storefront Routes (Public) ---
		v1.GET("/packages", h.GetPackages)
		v1.GET("/packages/:id", h.GetPackage)
		v1.GET("/products", h.GetProducts)
		v1.GET("/products/:slug", h.GetProductBySlug)
		v1.GET("/blog", h.GetBlogPosts)
		v1.GET("/blog/:slug", h.GetBlogPostBySlug)
		v1.GET("/policies/:slug", h.GetPolicy)
		v1.GET("/contact", h.GetContactInfo)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware(h.Tokens))
		{
			auth.GET("/profile/me", h.Profile)

			// --- Cart Routes ---
			auth.GET("/cart", h.GetCart)
			auth.POST("/cart/items", h.AddToCart)
			auth.PUT("/cart/items/:id", h.UpdateCartItem)
			auth.DELETE("/cart/items/:id", h.DeleteCartItem)
			auth.DELETE("/cart", h.ClearCart)

			// --- Checkout & Orders ---
			auth.POST("/checkout", h.Checkout)
			auth.GET("/orders", h.GetMyOrders)
			auth.GET("/orders/:id", h.GetOrderDetails)
		}

		// --- Admin-Only Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(h.Tokens))
		admin.Use(middleware.AdminMiddleware(h.DB))
		{
			// --- Order Management ---
			admin.GET("/orders", h.AdminGetOrders)
			admin.GET("/orders/:id", h.AdminGetOrderDetails)
			admin.PATCH("/orders/:id/status", h.AdminUpdateOrderStatus)

			// --- Catalog Management ---
			admin.POST("/packages", h.AdminCreatePackage)
			admin.PUT("/packages/:id", h.AdminUpdatePackage)
			admin.DELETE("/packages/:id", h.AdminDeletePackage)

			admin.POST("/products", h.AdminCreateProduct)
			admin.PUT("/products/:id", h.AdminUpdateProduct)
			admin.DELETE("/products/:id", h.AdminDeleteProduct)

			// --- Content Management ---
			admin.GET("/blog", h.AdminGetBlogPosts)
			admin.POST("/blog", h.AdminCreateBlogPost)
			admin.PUT("/blog/:id", h.AdminUpdateBlogPost)
			admin.DELETE("/blog/:id", h.AdminDeleteBlogPost)

			admin.PUT("/policies/:slug", h.AdminUpsertPolicy)
			admin.PUT("/contact", h.AdminUpdateContactInfo)

			// --- Payments (Read-Only) ---
			admin.GET("/payments", h.AdminGetPayments)

			// --- Debug / Recovery ---
			admin.POST("/debug/reseed-packages", h.AdminReseedPackages)
			admin.POST("/debug/recreate-order-tables", h.AdminRecreateOrderTables)
		}
	}

	return router
}
