package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Path parameter conversion
	"strings"  // Email normalization

	"ecommerce_api/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// CustomerRequest is the create payload for a standalone customer profile
type CustomerRequest struct {
	UserID  uint   `json:"user_id" binding:"required"` // Owning user account
	Address string `json:"address"`                    // Shipping address
	City    string `json:"city"`                       // City
	State   string `json:"state"`                      // State
	ZipCode string `json:"zip_code"`                   // Postal code
	Country string `json:"country"`                    // Country, defaults to USA
}

// CreateCustomerHandler creates a customer profile for an existing user
func CreateCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CustomerRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// The owning user must exist
		var user domain.User
		if err := db.First(&user, req.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		country := req.Country
		if country == "" {
			country = "USA" // Default country
		}
		customer := domain.Customer{
			UserID:  req.UserID,  // One-to-one with the user
			Address: req.Address, // Shipping address
			City:    req.City,    // City
			State:   req.State,   // State
			ZipCode: req.ZipCode, // Postal code
			Country: country,     // Country
		}
		if err := db.Create(&customer).Error; err != nil {
			// The unique index on user_id keeps profiles one-to-one
			c.JSON(http.StatusConflict, gin.H{"error": "Customer profile already exists for this user"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"customer": customer})
	}
}

// ListCustomersHandler returns all customers with their user and orders
func ListCustomersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customers []domain.Customer // Slice to hold customers
		if err := db.Preload("User").Preload("Orders").Find(&customers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customers": customers})
	}
}

// SearchCustomersHandler returns customers whose user name contains the term
func SearchCustomersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Query("name") // Search term
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing name parameter"})
			return
		}
		var customers []domain.Customer // Slice to hold customers
		err := db.Preload("User").
			Joins("JOIN users ON users.id = customers.user_id").
			Where("users.name LIKE ?", "%"+name+"%").
			Find(&customers).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search customers"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customers": customers})
	}
}

// CustomerStats is a customer row with order aggregates
type CustomerStats struct {
	CustomerID uint    `json:"customer_id"` // Customer ID
	Name       string  `json:"name"`        // Display name from the user account
	Email      string  `json:"email"`       // Login email from the user account
	OrderCount int64   `json:"order_count"` // Number of orders placed
	TotalSpent float64 `json:"total_spent"` // Sum of order totals
}

// CustomerStatsHandler returns per-customer order counts and spend
func CustomerStatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []CustomerStats // Aggregated rows
		err := db.Model(&domain.Customer{}).
			Select("customers.id AS customer_id, users.name AS name, users.email AS email, COUNT(orders.id) AS order_count, COALESCE(SUM(orders.total_amount), 0) AS total_spent").
			Joins("JOIN users ON users.id = customers.user_id").
			Joins("LEFT JOIN orders ON orders.customer_id = customers.id").
			Group("customers.id, users.name, users.email").
			Scan(&rows).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customers": rows})
	}
}

// GetCustomerByEmailHandler resolves a customer through its user's email
func GetCustomerByEmailHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.ToLower(c.Param("email")) // Emails compare case-insensitively
		var customer domain.Customer               // Fetch customer from database
		err := db.Preload("User").Preload("Orders").
			Joins("JOIN users ON users.id = customers.user_id").
			Where("users.email = ?", email).
			First(&customer).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": customer})
	}
}

// GetCustomerHandler returns one customer with user, orders and items
func GetCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
			return
		}
		var customer domain.Customer // Fetch customer from database
		if err := db.Preload("User").Preload("Orders.Items").First(&customer, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": customer})
	}
}

// UpdateCustomerHandler applies a partial update to a customer profile
func UpdateCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
			return
		}
		var customer domain.Customer // Fetch customer from database
		if err := db.First(&customer, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		// Partial update: only the provided fields change
		var req struct {
			Address *string `json:"address"`  // Optional new address
			City    *string `json:"city"`     // Optional new city
			State   *string `json:"state"`    // Optional new state
			ZipCode *string `json:"zip_code"` // Optional new postal code
			Country *string `json:"country"`  // Optional new country
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.Address != nil {
			customer.Address = *req.Address
		}
		if req.City != nil {
			customer.City = *req.City
		}
		if req.State != nil {
			customer.State = *req.State
		}
		if req.ZipCode != nil {
			customer.ZipCode = *req.ZipCode
		}
		if req.Country != nil {
			customer.Country = *req.Country
		}
		if err := db.Save(&customer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": customer})
	}
}

// DeleteCustomerHandler removes a customer profile
func DeleteCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
			return
		}
		var customer domain.Customer // Fetch customer from database
		if err := db.First(&customer, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		if err := db.Delete(&customer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
	}
}
