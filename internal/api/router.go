package api

import (
	"ecommerce_api/internal/auth"       // Credential and session component
	"ecommerce_api/internal/domain"     // Role constants
	"ecommerce_api/internal/middleware" // JWT and role middleware

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// NewRouter wires every route under the versioned prefix. Protected groups get
// the JWT middleware; write operations additionally get a role allow-list.
func NewRouter(db *gorm.DB, tokens *auth.TokenService, jwtSecret string) *gin.Engine {
	r := gin.Default() // Gin router instance

	authRequired := middleware.JWTAuthMiddleware(jwtSecret, tokens) // Shared auth gate
	staff := middleware.RequireRoles(domain.RoleAdmin, domain.RoleSales) // Admin and sales only
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)               // Admin only

	v1 := r.Group("/api/v1") // Versioned prefix

	// Public status and health routes
	v1.GET("", StatusHandler())
	v1.GET("/health", HealthHandler(db))
	v1.GET("/health/database", DatabaseInfoHandler(db))

	// Auth routes
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", RegisterHandler(db)) // Registration endpoint
	authGroup.POST("/login", LoginHandler(tokens))   // Login endpoint
	authGroup.POST("/logout", authRequired, LogoutHandler(tokens))        // Revoke the presented token
	authGroup.POST("/logout-all", authRequired, LogoutAllHandler(tokens)) // Revoke every session
	authGroup.POST("/refresh", authRequired, RefreshHandler(tokens))      // Slide the cache window
	authGroup.GET("/profile", authRequired, ProfileHandler(db))           // Current user

	// Category routes (reads for every role, writes for staff)
	categories := v1.Group("/categories", authRequired)
	categories.GET("", ListCategoriesHandler(db))
	categories.GET("/with-count", staff, ListCategoriesWithCountHandler(db))
	categories.GET("/:id", GetCategoryHandler(db))
	categories.POST("", staff, CreateCategoryHandler(db))
	categories.PATCH("/:id", staff, UpdateCategoryHandler(db))
	categories.DELETE("/:id", adminOnly, DeleteCategoryHandler(db))

	// Product routes (reads for every role, writes for staff)
	products := v1.Group("/products", authRequired)
	products.GET("", ListProductsHandler(db))
	products.GET("/search", SearchProductsHandler(db))
	products.GET("/low-stock", LowStockProductsHandler(db))
	products.GET("/:id", GetProductHandler(db))
	products.POST("", staff, CreateProductHandler(db))
	products.PATCH("/:id", staff, UpdateProductHandler(db))
	products.PATCH("/:id/stock", staff, UpdateStockHandler(db))
	products.DELETE("/:id", adminOnly, DeleteProductHandler(db))

	// Customer routes (staff manage everyone, customers read profiles)
	customers := v1.Group("/customers", authRequired)
	customers.GET("", staff, ListCustomersHandler(db))
	customers.GET("/search", staff, SearchCustomersHandler(db))
	customers.GET("/stats", staff, CustomerStatsHandler(db))
	customers.GET("/email/:email", staff, GetCustomerByEmailHandler(db))
	customers.GET("/:id", GetCustomerHandler(db))
	customers.POST("", staff, CreateCustomerHandler(db))
	customers.PATCH("/:id", staff, UpdateCustomerHandler(db))
	customers.DELETE("/:id", adminOnly, DeleteCustomerHandler(db))

	// Order routes (customers place and read orders, staff manage them)
	orders := v1.Group("/orders", authRequired)
	orders.POST("", CreateOrderHandler(db))
	orders.GET("", staff, ListOrdersHandler(db))
	orders.GET("/summary", staff, OrderSummaryHandler(db))
	orders.GET("/recent", staff, RecentOrdersHandler(db))
	orders.GET("/top-products", staff, TopProductsHandler(db))
	orders.GET("/status/:status", staff, OrdersByStatusHandler(db))
	orders.GET("/customer/:customerId", OrdersByCustomerHandler(db))
	orders.GET("/:id", GetOrderHandler(db))
	orders.PATCH("/:id/status", staff, UpdateOrderStatusHandler(db))

	// Reporting routes (staff only)
	analysis := v1.Group("/analysis", authRequired, staff)
	analysis.GET("/overview", OverviewHandler(db))
	analysis.GET("/inventory", InventoryHandler(db))
	analysis.GET("/sales", SalesHandler(db))
	analysis.GET("/data-quality", DataQualityHandler(db))
	analysis.GET("/health-check", HealthCheckHandler(db))
	analysis.GET("/system", SystemAnalysisHandler(db))

	return r
}
