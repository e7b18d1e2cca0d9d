package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecommerce_api/internal/auth"
	"ecommerce_api/internal/cache"
	"ecommerce_api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

// setupTestRouter builds the full router over an in-memory database and a
// map-backed token store
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Customer{},
		&domain.Category{},
		&domain.Product{},
		&domain.Order{},
		&domain.OrderItem{},
	)
	require.NoError(t, err)
	tokens := auth.NewTokenService(db, cache.NewMemoryStore(), testJWTSecret)
	return NewRouter(db, tokens, testJWTSecret), db
}

// doJSON performs a request with an optional JSON body and bearer token
func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a recorded response body into a map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerAndLogin creates a user through the API and returns a live token
func registerAndLogin(t *testing.T, r *gin.Engine, name, email, role string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
		"role":     role,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, ok := decodeBody(t, w)["access_token"].(string)
	require.True(t, ok, "login response must carry a token")
	return token
}

// createCategory inserts a category fixture directly
func createCategory(t *testing.T, db *gorm.DB, name string) *domain.Category {
	t.Helper()
	category := &domain.Category{Name: name, Description: fmt.Sprintf("%s items", name)}
	require.NoError(t, db.Create(category).Error)
	return category
}

// createProduct inserts a product fixture directly
func createProduct(t *testing.T, db *gorm.DB, name string, categoryID uint, price float64, stock int) *domain.Product {
	t.Helper()
	product := &domain.Product{
		Name:          name,
		CategoryID:    categoryID,
		Price:         price,
		StockQuantity: stock,
		SKU:           "SKU-" + uuid.NewString()[:8],
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// customerIDFor resolves the customer profile created at registration
func customerIDFor(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	var customer domain.Customer
	err := db.Joins("JOIN users ON users.id = customers.user_id").
		Where("users.email = ?", email).
		First(&customer).Error
	require.NoError(t, err)
	return customer.ID
}
