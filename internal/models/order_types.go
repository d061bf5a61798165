package models

import "time"

// Order is the model for the 'orders' table.
// Confirmed is a one-way flag: once an order is confirmed its stock has
// been decremented and it can never be confirmed again.
type Order struct {
	ID           int64     `json:"id" db:"id"`
	Reference    string    `json:"reference" db:"reference"` // public UUID
	DepartmentID int64     `json:"departmentId" db:"department_id"`
	CreatedBy    int64     `json:"createdBy" db:"created_by"`
	Confirmed    bool      `json:"confirmed" db:"confirmed"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// OrderItem is the model for the 'order_items' table
type OrderItem struct {
	ID              int64 `json:"id" db:"id"`
	OrderID         int64 `json:"orderId" db:"order_id"`
	ItemID          int64 `json:"itemId" db:"item_id"`
	QuantityOrdered int   `json:"quantityOrdered" db:"quantity_ordered"`

	// ItemName is joined in for the order detail view.
	ItemName string `json:"itemName,omitempty" db:"-"`
}
