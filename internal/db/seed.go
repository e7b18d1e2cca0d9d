package db

import (
	"ecommerce_api/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"gorm.io/gorm" // GORM ORM library
)

// Seed inserts a small sample catalog. It is idempotent: when any category
// already exists the seed is skipped entirely.
func Seed(db *gorm.DB) error {
	var count int64 // Existing category count
	if err := db.Model(&domain.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.Info("Data already exists, skipping seed") // Nothing to do
		return nil
	}
	// Sample categories
	categories := []domain.Category{
		{Name: "Electronics", Description: "Electronic devices and accessories"},
		{Name: "Clothing", Description: "Apparel and fashion items"},
		{Name: "Books", Description: "Books and publications"},
		{Name: "Home & Garden", Description: "Home improvement and gardening items"},
		{Name: "Sports", Description: "Sports equipment and accessories"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}
	// Sample products referencing the categories above
	products := []domain.Product{
		{Name: "Smartphone", CategoryID: categories[0].ID, Price: 599.99, StockQuantity: 50, Description: "Latest smartphone with advanced features", SKU: "PHONE001"},
		{Name: "Laptop", CategoryID: categories[0].ID, Price: 999.99, StockQuantity: 25, Description: "High-performance laptop for work and gaming", SKU: "LAPTOP001"},
		{Name: "T-Shirt", CategoryID: categories[1].ID, Price: 19.99, StockQuantity: 100, Description: "Comfortable cotton t-shirt", SKU: "TSHIRT001"},
		{Name: "Jeans", CategoryID: categories[1].ID, Price: 49.99, StockQuantity: 75, Description: "Classic denim jeans", SKU: "JEANS001"},
		{Name: "Programming Book", CategoryID: categories[2].ID, Price: 29.99, StockQuantity: 40, Description: "Learn programming fundamentals", SKU: "BOOK001"},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"categories": len(categories), // Seeded category count
		"products":   len(products),   // Seeded product count
	}).Info("Initial data seeded") // Log successful seed
	return nil
}
