package domain

import "time"

// Product Model
type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`                   // Primary key
	Name          string    `gorm:"size:200;not null" json:"name"`          // Product name
	CategoryID    uint      `gorm:"index" json:"category_id"`               // Foreign key to Category
	Price         float64   `gorm:"not null" json:"price"`                  // Unit price
	StockQuantity int       `gorm:"default:0" json:"stock_quantity"`        // Units on hand
	Description   string    `gorm:"type:text" json:"description,omitempty"` // Free-form description
	SKU           string    `gorm:"size:50;unique;not null" json:"sku"`     // Unique stock keeping unit
	CreatedAt     time.Time `json:"created_at"`                             // Timestamp of creation
	UpdatedAt     time.Time `json:"updated_at"`                             // Timestamp of last update
	Category      *Category `json:"category,omitempty"`                     // Owning category
}
