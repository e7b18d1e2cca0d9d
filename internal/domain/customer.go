package domain

import "time"

// Customer Model, a one-to-one extension of a User holding shipping data
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                 // Primary key
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`  // Foreign key to User, one profile per user
	Address   string    `gorm:"type:text" json:"address,omitempty"`   // Shipping address
	City      string    `gorm:"size:50" json:"city,omitempty"`        // City
	State     string    `gorm:"size:50" json:"state,omitempty"`       // State or region
	ZipCode   string    `gorm:"size:10" json:"zip_code,omitempty"`    // Postal code
	Country   string    `gorm:"size:50;default:USA" json:"country"`   // Country, defaults to USA
	CreatedAt time.Time `json:"created_at"`                           // Timestamp of creation
	User      *User     `json:"user,omitempty"`                       // Owning user account
	Orders    []Order   `json:"orders,omitempty"`                     // Orders placed by this customer
}
