package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Path parameter conversion

	"ecommerce_api/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// CategoryRequest is the create/update payload for a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"` // Unique category name
	Description string `json:"description"`             // Free-form description
}

// CreateCategoryHandler creates a category; duplicate names are a conflict
func CreateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		category := domain.Category{Name: req.Name, Description: req.Description}
		if err := db.Create(&category).Error; err != nil {
			// The unique index on name makes duplicates fail here
			c.JSON(http.StatusConflict, gin.H{"error": "Category name already exists"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"category": category})
	}
}

// ListCategoriesHandler returns all categories with their products
func ListCategoriesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []domain.Category // Slice to hold categories
		if err := db.Preload("Products").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// CategoryWithCount is a category row with its product count
type CategoryWithCount struct {
	ID           uint   `json:"id"`            // Category ID
	Name         string `json:"name"`          // Category name
	Description  string `json:"description"`   // Free-form description
	ProductCount int64  `json:"product_count"` // Number of products in the category
}

// ListCategoriesWithCountHandler returns categories with their product counts
func ListCategoriesWithCountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []CategoryWithCount // Aggregated rows
		err := db.Model(&domain.Category{}).
			Select("categories.id, categories.name, categories.description, COUNT(products.id) AS product_count").
			Joins("LEFT JOIN products ON products.category_id = categories.id").
			Group("categories.id, categories.name, categories.description").
			Scan(&rows).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": rows})
	}
}

// GetCategoryHandler returns one category with its products
func GetCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		var category domain.Category // Fetch category from database
		if err := db.Preload("Products").First(&category, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": category})
	}
}

// UpdateCategoryHandler applies a partial update to a category
func UpdateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		var category domain.Category // Fetch category from database
		if err := db.First(&category, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		// Partial update: only the provided fields change
		var req struct {
			Name        *string `json:"name"`        // Optional new name
			Description *string `json:"description"` // Optional new description
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.Name != nil {
			category.Name = *req.Name
		}
		if req.Description != nil {
			category.Description = *req.Description
		}
		if err := db.Save(&category).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Category name already exists"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": category})
	}
}

// DeleteCategoryHandler removes a category
func DeleteCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		var category domain.Category // Fetch category from database
		if err := db.First(&category, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		if err := db.Delete(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}
