package api

import (
	"fmt"      // Recommendation strings
	"net/http" // HTTP status codes
	"time"     // Report timestamps

	"ecommerce_api/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Data-quality scoring: each detected issue costs a fixed penalty off 100
const (
	qualityMaxScore     = 100 // Perfect score
	qualityIssuePenalty = 5   // Deducted per detected issue
	qualityHealthyFloor = 70  // Scores above this read as healthy
)

// Overview holds the entity counts of the whole database
type Overview struct {
	TotalCategories int64 `json:"total_categories"`  // Category count
	TotalProducts   int64 `json:"total_products"`    // Product count
	TotalCustomers  int64 `json:"total_customers"`   // Customer count
	TotalOrders     int64 `json:"total_orders"`      // Order count
	TotalOrderItems int64 `json:"total_order_items"` // Order item count
}

// collectOverview counts every entity
func collectOverview(db *gorm.DB) (Overview, error) {
	var o Overview // Aggregated counts
	if err := db.Model(&domain.Category{}).Count(&o.TotalCategories).Error; err != nil {
		return o, err
	}
	if err := db.Model(&domain.Product{}).Count(&o.TotalProducts).Error; err != nil {
		return o, err
	}
	if err := db.Model(&domain.Customer{}).Count(&o.TotalCustomers).Error; err != nil {
		return o, err
	}
	if err := db.Model(&domain.Order{}).Count(&o.TotalOrders).Error; err != nil {
		return o, err
	}
	if err := db.Model(&domain.OrderItem{}).Count(&o.TotalOrderItems).Error; err != nil {
		return o, err
	}
	return o, nil
}

// OverviewHandler returns entity counts across the database
func OverviewHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		overview, err := collectOverview(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build overview"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"overview":  overview,                        // Entity counts
			"timestamp": time.Now().Format(time.RFC3339), // Report time
		})
	}
}

// StockSummary aggregates the whole catalog's stock position
type StockSummary struct {
	TotalProducts   int     `json:"total_products"`     // Products in the catalog
	AverageStock    float64 `json:"average_stock"`      // Mean stock per product
	TotalStockValue float64 `json:"total_stock_value"`  // Sum of price x stock
	LowStockCount   int     `json:"low_stock_count"`    // Products under 10 units
	OutOfStockCount int     `json:"out_of_stock_count"` // Products at zero
	HighValueCount  int     `json:"high_value_count"`   // Products priced over 100
}

// CategoryStock is the per-category slice of the inventory report
type CategoryStock struct {
	CategoryName string  `json:"category_name"` // Category name
	ProductCount int64   `json:"product_count"` // Products in the category
	TotalStock   int64   `json:"total_stock"`   // Units on hand
	AveragePrice float64 `json:"average_price"` // Mean product price
}

// StockAlert is one product flagged by the inventory report
type StockAlert struct {
	ID       uint   `json:"id"`                 // Product ID
	Name     string `json:"name"`               // Product name
	Stock    int    `json:"stock,omitempty"`    // Units on hand, omitted for out-of-stock rows
	Category string `json:"category,omitempty"` // Owning category name
}

// inventoryReport builds the inventory analysis from a single catalog pass
// plus one category group-by
func inventoryReport(db *gorm.DB) (gin.H, error) {
	var products []domain.Product // Full catalog with categories
	if err := db.Preload("Category").Find(&products).Error; err != nil {
		return nil, err
	}
	summary := StockSummary{TotalProducts: len(products)} // Aggregate in one pass
	totalStock := 0                                       // Running stock sum
	lowAlerts := []StockAlert{}                           // Products under 10 units
	outAlerts := []StockAlert{}                           // Products at zero
	for _, p := range products {
		totalStock += p.StockQuantity
		summary.TotalStockValue += p.Price * float64(p.StockQuantity)
		categoryName := ""
		if p.Category != nil {
			categoryName = p.Category.Name
		}
		if p.StockQuantity < 10 {
			summary.LowStockCount++
			lowAlerts = append(lowAlerts, StockAlert{ID: p.ID, Name: p.Name, Stock: p.StockQuantity, Category: categoryName})
		}
		if p.StockQuantity == 0 {
			summary.OutOfStockCount++
			outAlerts = append(outAlerts, StockAlert{ID: p.ID, Name: p.Name, Category: categoryName})
		}
		if p.Price > 100 {
			summary.HighValueCount++
		}
	}
	if len(products) > 0 {
		summary.AverageStock = float64(totalStock) / float64(len(products))
	}
	var byCategory []CategoryStock // Per-category aggregates
	err := db.Model(&domain.Category{}).
		Select("categories.name AS category_name, COUNT(products.id) AS product_count, COALESCE(SUM(products.stock_quantity), 0) AS total_stock, COALESCE(AVG(products.price), 0) AS average_price").
		Joins("LEFT JOIN products ON products.category_id = categories.id").
		Group("categories.id, categories.name").
		Scan(&byCategory).Error
	if err != nil {
		return nil, err
	}
	return gin.H{
		"stock_summary":     summary,    // Catalog-wide aggregates
		"category_analysis": byCategory, // Per-category slice
		"alerts": gin.H{
			"low_stock_products":    lowAlerts, // Products under 10 units
			"out_of_stock_products": outAlerts, // Products at zero
		},
	}, nil
}

// InventoryHandler returns the inventory analysis
func InventoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := inventoryReport(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build inventory report"})
			return
		}
		report["timestamp"] = time.Now().Format(time.RFC3339) // Report time
		c.JSON(http.StatusOK, report)
	}
}

// SalesSummary is the headline slice of the sales report
type SalesSummary struct {
	TotalOrders       int64   `json:"total_orders"`        // Orders placed
	TotalRevenue      float64 `json:"total_revenue"`       // Sum of order totals
	AverageOrderValue float64 `json:"average_order_value"` // Revenue per order, rounded to cents
}

// TopCustomer is one row of the top-customers report
type TopCustomer struct {
	CustomerID        uint    `json:"customer_id"`         // Customer ID
	Name              string  `json:"name"`                // Display name from the user account
	Email             string  `json:"email"`               // Login email from the user account
	TotalOrders       int64   `json:"total_orders"`        // Orders placed
	TotalSpent        float64 `json:"total_spent"`         // Sum of order totals
	AverageOrderValue float64 `json:"average_order_value"` // Mean order total
}

// BestSeller is one row of the best-selling-products report
type BestSeller struct {
	ProductID    uint    `json:"product_id"`    // Product ID
	ProductName  string  `json:"product_name"`  // Product name
	TotalSold    int64   `json:"total_sold"`    // Units sold
	AveragePrice float64 `json:"average_price"` // Mean unit price across lines
	TotalRevenue float64 `json:"total_revenue"` // Revenue from this product
}

// salesReport builds the sales analysis
func salesReport(db *gorm.DB) (gin.H, error) {
	var summary SalesSummary // Headline numbers
	if err := db.Model(&domain.Order{}).Count(&summary.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Order{}).Select("COALESCE(SUM(total_amount), 0)").Scan(&summary.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = roundCents(summary.TotalRevenue / float64(summary.TotalOrders))
	}
	var byStatus []OrderStatusBreakdown // Sales by status
	err := db.Model(&domain.Order{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total_amount").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, err
	}
	var topCustomers []TopCustomer // Top customers by spend
	err = db.Model(&domain.Order{}).
		Select("customers.id AS customer_id, users.name AS name, users.email AS email, COUNT(orders.id) AS total_orders, COALESCE(SUM(orders.total_amount), 0) AS total_spent, COALESCE(AVG(orders.total_amount), 0) AS average_order_value").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Joins("JOIN users ON users.id = customers.user_id").
		Group("customers.id, users.name, users.email").
		Order("total_spent DESC").
		Limit(10).
		Scan(&topCustomers).Error
	if err != nil {
		return nil, err
	}
	var bestSellers []BestSeller // Best-selling products by units
	err = db.Model(&domain.OrderItem{}).
		Select("products.id AS product_id, products.name AS product_name, SUM(order_items.quantity) AS total_sold, AVG(order_items.price) AS average_price, SUM(order_items.quantity * order_items.price) AS total_revenue").
		Joins("JOIN products ON products.id = order_items.product_id").
		Group("products.id, products.name").
		Order("total_sold DESC").
		Limit(10).
		Scan(&bestSellers).Error
	if err != nil {
		return nil, err
	}
	// Round money columns to cents
	for i := range bestSellers {
		bestSellers[i].AveragePrice = roundCents(bestSellers[i].AveragePrice)
		bestSellers[i].TotalRevenue = roundCents(bestSellers[i].TotalRevenue)
	}
	return gin.H{
		"summary":               summary,      // Headline numbers
		"sales_by_status":       byStatus,     // Per-status slice
		"top_customers":         topCustomers, // Top spenders
		"best_selling_products": bestSellers,  // Top movers
	}, nil
}

// SalesHandler returns the sales analysis
func SalesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := salesReport(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sales report"})
			return
		}
		report["timestamp"] = time.Now().Format(time.RFC3339) // Report time
		c.JSON(http.StatusOK, report)
	}
}

// QualityMetrics counts the data issues the quality report looks for
type QualityMetrics struct {
	ProductsWithoutCategory     int64 `json:"products_without_category"`      // Orphaned products
	ProductsWithZeroPrice       int64 `json:"products_with_zero_price"`       // Unpriced products
	ProductsWithNegativeStock   int64 `json:"products_with_negative_stock"`   // Impossible stock levels
	CustomersWithIncompleteData int64 `json:"customers_with_incomplete_data"` // Profiles missing address or city
	OrdersWithoutItems          int64 `json:"orders_without_items"`           // Orders with no lines
}

// issues sums every detected problem
func (m QualityMetrics) issues() int64 {
	return m.ProductsWithoutCategory + m.ProductsWithZeroPrice + m.ProductsWithNegativeStock +
		m.CustomersWithIncompleteData + m.OrdersWithoutItems
}

// qualityScore converts an issue count into a 0-100 score
func qualityScore(issues int64) int64 {
	score := int64(qualityMaxScore) - issues*qualityIssuePenalty
	if score < 0 {
		score = 0 // Floor at zero
	}
	return score
}

// qualityRecommendations renders one actionable line per non-zero metric
func qualityRecommendations(m QualityMetrics) []string {
	var recs []string
	if m.ProductsWithoutCategory > 0 {
		recs = append(recs, fmt.Sprintf("Assign categories to %d products", m.ProductsWithoutCategory))
	}
	if m.ProductsWithZeroPrice > 0 {
		recs = append(recs, fmt.Sprintf("Update pricing for %d products", m.ProductsWithZeroPrice))
	}
	if m.ProductsWithNegativeStock > 0 {
		recs = append(recs, fmt.Sprintf("Fix negative stock for %d products", m.ProductsWithNegativeStock))
	}
	if m.CustomersWithIncompleteData > 0 {
		recs = append(recs, fmt.Sprintf("Complete customer data for %d customers", m.CustomersWithIncompleteData))
	}
	if m.OrdersWithoutItems > 0 {
		recs = append(recs, fmt.Sprintf("Review %d orders without items", m.OrdersWithoutItems))
	}
	if len(recs) == 0 {
		recs = append(recs, "Data quality looks good! Continue monitoring regularly.")
	}
	return recs
}

// collectQualityMetrics runs the five issue counts
func collectQualityMetrics(db *gorm.DB) (QualityMetrics, error) {
	var m QualityMetrics // Aggregated counts
	if err := db.Model(&domain.Product{}).Where("category_id IS NULL OR category_id = 0").Count(&m.ProductsWithoutCategory).Error; err != nil {
		return m, err
	}
	if err := db.Model(&domain.Product{}).Where("price <= 0").Count(&m.ProductsWithZeroPrice).Error; err != nil {
		return m, err
	}
	if err := db.Model(&domain.Product{}).Where("stock_quantity < 0").Count(&m.ProductsWithNegativeStock).Error; err != nil {
		return m, err
	}
	if err := db.Model(&domain.Customer{}).Where("address IS NULL OR address = '' OR city IS NULL OR city = ''").Count(&m.CustomersWithIncompleteData).Error; err != nil {
		return m, err
	}
	err := db.Model(&domain.Order{}).
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Where("order_items.id IS NULL").
		Count(&m.OrdersWithoutItems).Error
	if err != nil {
		return m, err
	}
	return m, nil
}

// DataQualityHandler returns the data-quality report with its score
func DataQualityHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics, err := collectQualityMetrics(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build data quality report"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"quality_metrics":    metrics,                          // Issue counts
			"data_quality_score": qualityScore(metrics.issues()),   // 0-100 score
			"recommendations":    qualityRecommendations(metrics),  // Actionable lines
			"timestamp":          time.Now().Format(time.RFC3339),  // Report time
		})
	}
}

// HealthCheckHandler returns a lightweight monitoring verdict: record counts
// plus the data-quality score, read as healthy while the score stays above the
// floor
func HealthCheckHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		overview, err := collectOverview(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build health check"})
			return
		}
		metrics, err := collectQualityMetrics(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build health check"})
			return
		}
		score := qualityScore(metrics.issues())
		status := "healthy"
		if score <= qualityHealthyFloor {
			status = "needs-attention"
		}
		c.JSON(http.StatusOK, gin.H{
			"status": status, // Monitoring verdict
			"data_integrity": gin.H{
				"score":        score,            // 0-100 score
				"issues_found": metrics.issues(), // Detected issue count
			},
			"total_records": overview.TotalCategories + overview.TotalProducts +
				overview.TotalCustomers + overview.TotalOrders, // Row count across entities
			"timestamp": time.Now().Format(time.RFC3339), // Report time
		})
	}
}

// SystemAnalysisHandler composes overview, inventory, sales and data quality
// into one report with headline health verdicts
func SystemAnalysisHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		overview, err := collectOverview(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build system report"})
			return
		}
		inventory, err := inventoryReport(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build system report"})
			return
		}
		sales, err := salesReport(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build system report"})
			return
		}
		metrics, err := collectQualityMetrics(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build system report"})
			return
		}
		// Headline verdicts
		inventoryHealth := "Good"
		if inventory["stock_summary"].(StockSummary).OutOfStockCount > 0 {
			inventoryHealth = "Needs attention"
		}
		salesPerformance := "No sales data"
		if sales["summary"].(SalesSummary).TotalRevenue > 0 {
			salesPerformance = "Active"
		}
		c.JSON(http.StatusOK, gin.H{
			"system_health": gin.H{
				"data_quality_score": qualityScore(metrics.issues()), // 0-100 score
				"total_records": overview.TotalCategories + overview.TotalProducts +
					overview.TotalCustomers + overview.TotalOrders, // Row count across entities
				"inventory_health":  inventoryHealth,  // Stock verdict
				"sales_performance": salesPerformance, // Revenue verdict
			},
			"overview":     overview,                        // Entity counts
			"inventory":    inventory,                       // Inventory slice
			"sales":        sales["summary"],                // Sales headline
			"data_quality": gin.H{
				"quality_metrics":    metrics,                         // Issue counts
				"data_quality_score": qualityScore(metrics.issues()),  // 0-100 score
				"recommendations":    qualityRecommendations(metrics), // Actionable lines
			},
			"timestamp": time.Now().Format(time.RFC3339), // Report time
		})
	}
}
