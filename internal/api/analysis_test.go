package api

import (
	"fmt"
	"net/http"
	"testing"

	"ecommerce_api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverviewCounts(t *testing.T) {
	r, db := setupTestRouter(t)
	staff := registerAndLogin(t, r, "Sam", "sam@example.com", domain.RoleSales)
	category := createCategory(t, db, "Electronics")
	createProduct(t, db, "Smartphone", category.ID, 599.99, 50)
	createProduct(t, db, "Laptop", category.ID, 999.99, 25)

	w := doJSON(t, r, http.MethodGet, "/api/v1/analysis/overview", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	overview := decodeBody(t, w)["overview"].(map[string]any)
	assert.EqualValues(t, 1, overview["total_categories"].(float64))
	assert.EqualValues(t, 2, overview["total_products"].(float64))
	assert.EqualValues(t, 0, overview["total_orders"].(float64))
}

func TestInventoryReport(t *testing.T) {
	r, db := setupTestRouter(t)
	staff := registerAndLogin(t, r, "Sam", "sam@example.com", domain.RoleSales)
	category := createCategory(t, db, "Electronics")
	createProduct(t, db, "Smartphone", category.ID, 599.99, 0) // Out of stock, high value
	createProduct(t, db, "Cable", category.ID, 2.50, 4)        // Low stock
	createProduct(t, db, "Laptop", category.ID, 999.99, 40)    // Healthy, high value

	w := doJSON(t, r, http.MethodGet, "/api/v1/analysis/inventory", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	summary := body["stock_summary"].(map[string]any)
	assert.EqualValues(t, 3, summary["total_products"].(float64))
	assert.EqualValues(t, 2, summary["low_stock_count"].(float64))
	assert.EqualValues(t, 1, summary["out_of_stock_count"].(float64))
	assert.EqualValues(t, 2, summary["high_value_count"].(float64))
	assert.InDelta(t, (0+4+40)/3.0, summary["average_stock"].(float64), 0.001)
	assert.InDelta(t, 2.50*4+999.99*40, summary["total_stock_value"].(float64), 0.01)

	alerts := body["alerts"].(map[string]any)
	assert.Len(t, alerts["low_stock_products"].([]any), 2)
	assert.Len(t, alerts["out_of_stock_products"].([]any), 1)
}

func TestDataQualityScoreWithThreeIssues(t *testing.T) {
	r, db := setupTestRouter(t)
	staff := registerAndLogin(t, r, "Sam", "sam@example.com", domain.RoleSales)
	registerAndLogin(t, r, "Jane", "jane@example.com", domain.RoleCustomer)
	janeID := customerIDFor(t, db, "jane@example.com")
	category := createCategory(t, db, "Electronics")

	// Jane's registration omitted address and city, which would count as an
	// extra issue, so complete her profile first
	require.NoError(t, db.Model(&domain.Customer{}).Where("id = ?", janeID).
		Updates(map[string]any{"address": "123 Main St", "city": "Springfield"}).Error)
	createProduct(t, db, "Free Sample", category.ID, 0, 10)
	broken := createProduct(t, db, "Ghost Stock", category.ID, 9.99, 10)
	require.NoError(t, db.Model(&domain.Product{}).Where("id = ?", broken.ID).Update("stock_quantity", -3).Error)
	require.NoError(t, db.Create(&domain.Order{CustomerID: janeID, TotalAmount: 0, Status: domain.OrderStatusPending}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/v1/analysis/data-quality", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	// 3 issues at penalty 5 each: 100 - 15 = 85
	assert.EqualValues(t, 85, body["data_quality_score"].(float64))
	metrics := body["quality_metrics"].(map[string]any)
	assert.EqualValues(t, 1, metrics["products_with_zero_price"].(float64))
	assert.EqualValues(t, 1, metrics["products_with_negative_stock"].(float64))
	assert.EqualValues(t, 1, metrics["orders_without_items"].(float64))
	assert.Len(t, body["recommendations"].([]any), 3)
}

func TestDataQualityPerfectScore(t *testing.T) {
	r, db := setupTestRouter(t)
	staff := registerAndLogin(t, r, "Sam", "sam@example.com", domain.RoleSales)
	category := createCategory(t, db, "Electronics")
	createProduct(t, db, "Smartphone", category.ID, 599.99, 50)

	w := doJSON(t, r, http.MethodGet, "/api/v1/analysis/data-quality", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 100, body["data_quality_score"].(float64))
	recs := body["recommendations"].([]any)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].(string), "looks good")
}

func TestSalesReport(t *testing.T) {
	r, db := setupTestRouter(t)
	staff := registerAndLogin(t, r, "Sam", "sam@example.com", domain.RoleSales)
	registerAndLogin(t, r, "Jane", "jane@example.com", domain.RoleCustomer)
	janeID := customerIDFor(t, db, "jane@example.com")
	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, "Smartphone", category.ID, 100.00, 50)
	cable := createProduct(t, db, "Cable", category.ID, 5.00, 200)

	// Two orders with items
	order1 := domain.Order{CustomerID: janeID, TotalAmount: 210, Status: domain.OrderStatusDelivered}
	require.NoError(t, db.Create(&order1).Error)
	require.NoError(t, db.Create(&domain.OrderItem{OrderID: order1.ID, ProductID: phone.ID, Quantity: 2, Price: 100}).Error)
	require.NoError(t, db.Create(&domain.OrderItem{OrderID: order1.ID, ProductID: cable.ID, Quantity: 2, Price: 5}).Error)
	order2 := domain.Order{CustomerID: janeID, TotalAmount: 15, Status: domain.OrderStatusPending}
	require.NoError(t, db.Create(&order2).Error)
	require.NoError(t, db.Create(&domain.OrderItem{OrderID: order2.ID, ProductID: cable.ID, Quantity: 3, Price: 5}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/v1/analysis/sales", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	summary := body["summary"].(map[string]any)
	assert.EqualValues(t, 2, summary["total_orders"].(float64))
	assert.InDelta(t, 225.0, summary["total_revenue"].(float64), 0.001)
	assert.InDelta(t, 112.5, summary["average_order_value"].(float64), 0.001)

	// Cables moved the most units, phones earned the most revenue
	sellers := body["best_selling_products"].([]any)
	require.NotEmpty(t, sellers)
	top := sellers[0].(map[string]any)
	assert.Equal(t, "Cable", top["product_name"])
	assert.EqualValues(t, 5, top["total_sold"].(float64))

	customers := body["top_customers"].([]any)
	require.Len(t, customers, 1)
	assert.InDelta(t, 225.0, customers[0].(map[string]any)["total_spent"].(float64), 0.001)
}

func TestAnalysisHealthCheck(t *testing.T) {
	r, db := setupTestRouter(t)
	staff := registerAndLogin(t, r, "Sam", "sam@example.com", domain.RoleSales)
	category := createCategory(t, db, "Electronics")
	createProduct(t, db, "Smartphone", category.ID, 599.99, 50)

	// Clean data reads as healthy
	w := doJSON(t, r, http.MethodGet, "/api/v1/analysis/health-check", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	integrity := body["data_integrity"].(map[string]any)
	assert.EqualValues(t, 100, integrity["score"].(float64))
	assert.EqualValues(t, 0, integrity["issues_found"].(float64))
	assert.EqualValues(t, 2, body["total_records"].(float64)) // One category, one product

	// Six unpriced products drop the score to exactly the floor, which is no
	// longer healthy
	for i := 0; i < 6; i++ {
		createProduct(t, db, fmt.Sprintf("Freebie %d", i), category.ID, 0, 1)
	}
	w = doJSON(t, r, http.MethodGet, "/api/v1/analysis/health-check", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, "needs-attention", body["status"])
	assert.EqualValues(t, 70, body["data_integrity"].(map[string]any)["score"].(float64))
}

func TestSystemReport(t *testing.T) {
	r, db := setupTestRouter(t)
	staff := registerAndLogin(t, r, "Sam", "sam@example.com", domain.RoleSales)
	category := createCategory(t, db, "Electronics")
	createProduct(t, db, "Smartphone", category.ID, 599.99, 50)

	w := doJSON(t, r, http.MethodGet, "/api/v1/analysis/system", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	health := body["system_health"].(map[string]any)
	assert.Equal(t, "Good", health["inventory_health"])
	assert.Equal(t, "No sales data", health["sales_performance"])
	assert.EqualValues(t, 100, health["data_quality_score"].(float64))
}
