package api

import (
	"errors"   // Sentinel errors for the order transaction
	"math"     // Rounding money to cents
	"net/http" // HTTP status codes
	"strconv"  // Query and path parameter conversion

	"ecommerce_api/internal/domain"     // Importing domain models
	"ecommerce_api/internal/middleware" // Context keys set by the auth middleware

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Sentinel errors surfaced from the order creation transaction
var (
	errProductMissing    = errors.New("product not found")
	errInsufficientStock = errors.New("insufficient stock")
)

// OrderItemRequest is one requested line of a new order
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`    // Ordered product
	Quantity  int  `json:"quantity" binding:"required,gt=0"` // Units ordered
}

// OrderRequest is the create payload for an order
type OrderRequest struct {
	CustomerID      uint               `json:"customer_id"`                    // Target customer; ignored for the customer role
	Items           []OrderItemRequest `json:"items" binding:"required,min=1"` // At least one line item
	ShippingAddress string             `json:"shipping_address"`               // Shipping address snapshot
	BillingAddress  string             `json:"billing_address"`                // Billing address snapshot
	PaymentMethod   string             `json:"payment_method"`                 // Payment method label
}

// roundCents rounds a money amount to two decimals
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateOrderHandler creates an order with its items in one transaction. The
// total is computed from the items, unit prices are snapshotted from the
// catalog and stock is decremented per line.
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OrderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		customerID := req.CustomerID // Target customer
		// Customers always order for themselves, whatever the body says
		if c.GetString(middleware.ContextRole) == domain.RoleCustomer {
			var own domain.Customer
			if err := db.Where("user_id = ?", c.GetUint(middleware.ContextUserID)).First(&own).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Customer profile not found"})
				return
			}
			customerID = own.ID
		}
		// The customer must exist
		var customer domain.Customer
		if err := db.First(&customer, customerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		order := domain.Order{
			CustomerID:      customerID,                // Owning customer
			Status:          domain.OrderStatusPending, // New orders start pending
			ShippingAddress: req.ShippingAddress,       // Shipping address snapshot
			BillingAddress:  req.BillingAddress,        // Billing address snapshot
			PaymentMethod:   req.PaymentMethod,         // Payment method label
		}
		// Atomic creation: order, items and stock move together or not at all
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err // Return error to rollback
			}
			total := 0.0 // Running order total
			for _, line := range req.Items {
				var product domain.Product // Snapshot the unit price from the catalog
				if err := tx.First(&product, line.ProductID).Error; err != nil {
					return errProductMissing
				}
				// Reject lines the stock cannot cover
				if product.StockQuantity < line.Quantity {
					return errInsufficientStock
				}
				item := domain.OrderItem{
					OrderID:   order.ID,      // Owning order
					ProductID: product.ID,    // Ordered product
					Quantity:  line.Quantity, // Units ordered
					Price:     product.Price, // Unit price snapshot
				}
				if err := tx.Create(&item).Error; err != nil {
					return err // Return error to rollback
				}
				// Decrement stock for the ordered units
				if err := tx.Model(&product).Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity)).Error; err != nil {
					return err // Return error to rollback
				}
				total += product.Price * float64(line.Quantity)
				order.Items = append(order.Items, item)
			}
			// The stored total always equals the sum of its items
			order.TotalAmount = roundCents(total)
			return tx.Model(&domain.Order{}).Where("id = ?", order.ID).Update("total_amount", order.TotalAmount).Error
		})
		if err != nil {
			switch err {
			case errProductMissing:
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			case errInsufficientStock:
				c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
			default:
				logrus.WithFields(logrus.Fields{
					"customer_id": customerID,  // Target customer
					"error":       err.Error(), // Error message
				}).Error("Order creation failed") // Log order failure
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			}
			return
		}
		logrus.WithFields(logrus.Fields{
			"order_id":     order.ID,          // New order ID
			"customer_id":  customerID,        // Owning customer
			"total_amount": order.TotalAmount, // Computed total
			"items":        len(order.Items),  // Line count
		}).Info("Order created") // Log order creation
		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}

// ListOrdersHandler returns orders with pagination and optional status and
// customer filters
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		offset := (page - 1) * pageSize    // Calculate offset for pagination
		query := db.Model(&domain.Order{}) // Start building the query
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status) // Filter by status
		}
		if customerID := c.Query("customer_id"); customerID != "" {
			query = query.Where("customer_id = ?", customerID) // Filter by customer
		}
		var total int64 // Total order count
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}
		var orders []domain.Order // Slice to hold orders
		err := query.Preload("Customer").Preload("Items.Product").
			Order("order_date desc").Offset(offset).Limit(pageSize).
			Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		c.JSON(http.StatusOK, gin.H{
			"orders":      orders,     // List of orders
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of orders
			"total_pages": totalPages, // Total pages
		})
	}
}

// OrderStatusBreakdown is the per-status slice of the order summary
type OrderStatusBreakdown struct {
	Status      string  `json:"status"`       // Order status
	Count       int64   `json:"count"`        // Orders in this status
	TotalAmount float64 `json:"total_amount"` // Revenue in this status
}

// OrderSummaryHandler returns order counts and revenue grouped by status
func OrderSummaryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var breakdown []OrderStatusBreakdown // Aggregated rows
		err := db.Model(&domain.Order{}).
			Select("status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total_amount").
			Group("status").
			Scan(&breakdown).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize orders"})
			return
		}
		var totalOrders int64 // Overall order count
		if err := db.Model(&domain.Order{}).Count(&totalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}
		var totalRevenue float64 // Overall revenue
		if err := db.Model(&domain.Order{}).Select("COALESCE(SUM(total_amount), 0)").Scan(&totalRevenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum revenue"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"total_orders":     totalOrders,  // Overall order count
			"total_revenue":    totalRevenue, // Overall revenue
			"status_breakdown": breakdown,    // Per-status slice
		})
	}
}

// RecentOrdersHandler returns the most recent orders
func RecentOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 10 // Default limit
		if l := c.Query("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
				limit = v // Set limit if valid
			}
		}
		var orders []domain.Order // Slice to hold orders
		err := db.Preload("Customer").Preload("Items.Product").
			Order("order_date desc").Limit(limit).
			Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// TopProduct is one row of the best-sellers report
type TopProduct struct {
	ProductID     uint    `json:"product_id"`     // Product ID
	ProductName   string  `json:"product_name"`   // Product name
	CategoryName  string  `json:"category_name"`  // Owning category name
	TotalQuantity int64   `json:"total_quantity"` // Units sold
	TotalRevenue  float64 `json:"total_revenue"`  // Revenue from this product
}

// TopProductsHandler returns the best-selling products by units sold
func TopProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 10 // Default limit
		if l := c.Query("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
				limit = v // Set limit if valid
			}
		}
		var rows []TopProduct // Aggregated rows
		err := db.Model(&domain.OrderItem{}).
			Select("products.id AS product_id, products.name AS product_name, categories.name AS category_name, SUM(order_items.quantity) AS total_quantity, SUM(order_items.quantity * order_items.price) AS total_revenue").
			Joins("JOIN products ON products.id = order_items.product_id").
			Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Group("products.id, products.name, categories.name").
			Order("total_quantity DESC").
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch top products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": rows})
	}
}

// OrdersByStatusHandler returns orders in a given status
func OrdersByStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Param("status") // Status path parameter
		if !domain.ValidOrderStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			return
		}
		var orders []domain.Order // Slice to hold orders
		err := db.Preload("Customer").Preload("Items.Product").
			Where("status = ?", status).Order("order_date desc").
			Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// OrdersByCustomerHandler returns all orders of one customer
func OrdersByCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, err := strconv.Atoi(c.Param("customerId")) // Parse the path parameter
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
			return
		}
		var orders []domain.Order // Slice to hold orders
		err = db.Preload("Items.Product").
			Where("customer_id = ?", customerID).Order("order_date desc").
			Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// GetOrderHandler returns one order with customer, items and product categories
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}
		var order domain.Order // Fetch order from database
		err = db.Preload("Customer").Preload("Items.Product.Category").
			First(&order, id).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// UpdateOrderStatusHandler moves an order to a new status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}
		var req struct {
			Status string `json:"status" binding:"required"` // Target status
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if !domain.ValidOrderStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			return
		}
		var order domain.Order // Fetch order from database
		if err := db.First(&order, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		order.Status = req.Status // Apply the new status
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,     // Order ID
			"status":   order.Status, // New status
		}).Info("Order status updated") // Log status change
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}
