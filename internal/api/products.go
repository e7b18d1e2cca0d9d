package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Query and path parameter conversion
	"strings"  // SKU normalization

	"ecommerce_api/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // SKU generation
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// ProductRequest is the create payload for a product
type ProductRequest struct {
	Name          string  `json:"name" binding:"required"`        // Product name
	CategoryID    uint    `json:"category_id" binding:"required"` // Owning category
	Price         float64 `json:"price" binding:"required,gt=0"`  // Unit price
	StockQuantity int     `json:"stock_quantity"`                 // Initial stock
	Description   string  `json:"description"`                    // Free-form description
	SKU           string  `json:"sku"`                            // Optional, generated when absent
}

// CreateProductHandler creates a product; the SKU is generated when not supplied
func CreateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// The category must exist before a product can reference it
		var category domain.Category
		if err := db.First(&category, req.CategoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		sku := strings.ToUpper(strings.TrimSpace(req.SKU)) // Normalize supplied SKUs
		if sku == "" {
			sku = "SKU-" + strings.ToUpper(uuid.NewString()[:8]) // Generate one when absent
		}
		product := domain.Product{
			Name:          req.Name,          // Product name
			CategoryID:    req.CategoryID,    // Owning category
			Price:         req.Price,         // Unit price
			StockQuantity: req.StockQuantity, // Initial stock
			Description:   req.Description,   // Free-form description
			SKU:           sku,               // Unique SKU
		}
		if err := db.Create(&product).Error; err != nil {
			// The unique index on sku makes duplicates fail here
			c.JSON(http.StatusConflict, gin.H{"error": "SKU already exists"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"product_id": product.ID,  // New product ID
			"sku":        product.SKU, // Assigned SKU
		}).Info("Product created") // Log product creation
		c.JSON(http.StatusCreated, gin.H{"product": product})
	}
}

// ListProductsHandler returns all products, optionally filtered by category
func ListProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Category") // Products always carry their category
		if categoryID := c.Query("category_id"); categoryID != "" {
			query = query.Where("category_id = ?", categoryID) // Filter by category
		}
		var products []domain.Product // Slice to hold products
		if err := query.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// SearchProductsHandler returns products whose name contains the search term
func SearchProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Query("name") // Search term
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing name parameter"})
			return
		}
		var products []domain.Product // Slice to hold products
		if err := db.Preload("Category").Where("name LIKE ?", "%"+name+"%").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// LowStockProductsHandler returns products with stock at or below the threshold
func LowStockProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		threshold := 10 // Default threshold
		if t := c.Query("threshold"); t != "" {
			if v, err := strconv.Atoi(t); err == nil && v >= 0 {
				threshold = v // Set threshold if valid
			}
		}
		var products []domain.Product // Slice to hold products
		if err := db.Preload("Category").Where("stock_quantity <= ?", threshold).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "threshold": threshold})
	}
}

// GetProductHandler returns one product with its category
func GetProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		var product domain.Product // Fetch product from database
		if err := db.Preload("Category").First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

// UpdateProductHandler applies a partial update to a product
func UpdateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		var product domain.Product // Fetch product from database
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		// Partial update: only the provided fields change
		var req struct {
			Name          *string  `json:"name"`           // Optional new name
			CategoryID    *uint    `json:"category_id"`    // Optional new category
			Price         *float64 `json:"price"`          // Optional new price
			StockQuantity *int     `json:"stock_quantity"` // Optional new stock
			Description   *string  `json:"description"`    // Optional new description
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.CategoryID != nil {
			// The new category must exist
			var category domain.Category
			if err := db.First(&category, *req.CategoryID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			product.CategoryID = *req.CategoryID
		}
		if req.Price != nil {
			product.Price = *req.Price
		}
		if req.StockQuantity != nil {
			product.StockQuantity = *req.StockQuantity
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

// UpdateStockHandler sets a product's stock quantity
func UpdateStockHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		var req struct {
			Quantity *int `json:"quantity" binding:"required"` // New stock level
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}
		var product domain.Product // Fetch product from database
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		product.StockQuantity = *req.Quantity // Overwrite the stock level
		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

// DeleteProductHandler removes a product
func DeleteProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		var product domain.Product // Fetch product from database
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
