package models

import "time"

// Payment is the model for the 'payments' table. Rows are written by the
// external payment gateway integration, never by this service; the admin
// panel reads them for reconciliation.
type Payment struct {
	ID        int64     `json:"id" db:"id"`
	OrderID   *int64    `json:"orderId,omitempty" db:"order_id"`
	Reference string    `json:"reference" db:"reference"`
	Provider  string    `json:"provider" db:"provider"`
	Amount    float64   `json:"amount" db:"amount"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
