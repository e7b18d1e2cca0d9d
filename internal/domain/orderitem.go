package domain

// OrderItem Model, one line of an order with a unit price snapshot
type OrderItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`               // Primary key
	OrderID   uint     `gorm:"index;not null" json:"order_id"`     // Foreign key to Order
	ProductID uint     `gorm:"index;not null" json:"product_id"`   // Foreign key to Product
	Quantity  int      `gorm:"not null" json:"quantity"`           // Units ordered
	Price     float64  `gorm:"not null" json:"price"`              // Unit price at the time of the order
	Product   *Product `json:"product,omitempty"`                  // Ordered product
}
