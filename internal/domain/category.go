package domain

import "time"

// Category Model
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                 // Primary key
	Name        string    `gorm:"size:100;unique;not null" json:"name"` // Unique category name
	Description string    `gorm:"type:text" json:"description,omitempty"` // Free-form description
	CreatedAt   time.Time `json:"created_at"`                           // Timestamp of creation
	Products    []Product `json:"products,omitempty"`                   // Products in this category
}
