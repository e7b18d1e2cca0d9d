package domain

import "time"

// Order statuses
const (
	OrderStatusPending    = "pending"    // Placed, not yet processed
	OrderStatusProcessing = "processing" // Being prepared
	OrderStatusShipped    = "shipped"    // Handed to the carrier
	OrderStatusDelivered  = "delivered"  // Received by the customer
	OrderStatusCancelled  = "cancelled"  // Cancelled before delivery
)

// ValidOrderStatus reports whether s is one of the known order statuses
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order Model
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`                    // Primary key
	CustomerID      uint        `gorm:"index;not null" json:"customer_id"`       // Foreign key to Customer
	OrderDate       time.Time   `gorm:"autoCreateTime" json:"order_date"`        // When the order was placed
	TotalAmount     float64     `gorm:"not null" json:"total_amount"`            // Sum of item quantity x unit price
	Status          string      `gorm:"size:20;default:pending;index" json:"status"` // Order status
	ShippingAddress string      `gorm:"type:text" json:"shipping_address,omitempty"` // Shipping address snapshot
	BillingAddress  string      `gorm:"type:text" json:"billing_address,omitempty"`  // Billing address snapshot
	PaymentMethod   string      `gorm:"size:50" json:"payment_method,omitempty"` // Payment method label
	CreatedAt       time.Time   `json:"created_at"`                              // Timestamp of creation
	Customer        *Customer   `json:"customer,omitempty"`                      // Owning customer
	Items           []OrderItem `json:"items,omitempty"`                         // Line items
}
