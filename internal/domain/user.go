package domain

import "time"

// Roles assignable to a user
const (
	RoleAdmin    = "admin"    // Full access to all resources
	RoleSales    = "sales"    // Manages catalog, orders and reporting
	RoleCustomer = "customer" // Owns a customer profile and own orders
)

// ValidRole reports whether r is one of the known roles
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleSales || r == RoleCustomer
}

// User Model
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`                  // Primary key
	Email       string     `gorm:"size:100;unique;not null" json:"email"` // Unique login email
	Password    string     `gorm:"size:255;not null" json:"-"`            // Hashed password, never serialized
	Name        string     `gorm:"size:100;not null" json:"name"`         // Display name
	Role        string     `gorm:"size:20;default:customer" json:"role"`  // Role: admin, sales or customer
	Phone       string     `gorm:"size:50" json:"phone,omitempty"`        // Contact phone
	IsActive    bool       `gorm:"default:true" json:"is_active"`         // Inactive accounts cannot log in
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`               // Updated on every successful login
	CreatedAt   time.Time  `json:"created_at"`                            // Timestamp of creation
	UpdatedAt   time.Time  `json:"updated_at"`                            // Timestamp of last update
	Customer    *Customer  `json:"customer,omitempty"`                    // One-to-one customer profile
}
