package models

import "time"

// Order is the model for the 'orders' table. It is the aggregate root of a
// checkout: one row per submitted cart, owned by exactly one user.
type Order struct {
	ID            int64     `json:"id" db:"id"`
	Reference     string    `json:"reference" db:"reference"` // Customer-facing UUID
	UserID        int64     `json:"userId" db:"user_id"`
	TotalAmount   float64   `json:"totalAmount" db:"total_amount"` // Fixed at creation from the cart snapshot
	Status        string    `json:"status" db:"status"`            // pending | processing | completed | cancelled
	PaymentStatus string    `json:"paymentStatus" db:"payment_status"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	// Joins (not columns on 'orders'; populated manually)
	CustomerEmail *string     `json:"customerEmail,omitempty" db:"customer_email"`
	Items         []OrderItem `json:"items" db:"-"`
}

// OrderItem is the model for the 'order_items' table.
// Price is a point-in-time copy taken from the cart at checkout; it is
// immune to later catalog price changes and is never updated.
type OrderItem struct {
	ID          int64     `json:"id" db:"id"`
	OrderID     int64     `json:"orderId" db:"order_id"`
	PackageID   string    `json:"packageId" db:"package_id"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Price       float64   `json:"price" db:"price"`
	ServiceType string    `json:"serviceType" db:"service_type"`
	ServiceID   string    `json:"serviceId" db:"service_id"`
	ServiceURL  *string   `json:"serviceUrl,omitempty" db:"service_url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// OrderStatusEntry is the model for the 'order_status_history' table.
// Rows are insert-only: one at order creation and one per transition.
type OrderStatusEntry struct {
	ID        int64     `json:"id" db:"id"`
	OrderID   int64     `json:"orderId" db:"order_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
