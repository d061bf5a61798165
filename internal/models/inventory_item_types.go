package models

import "time"

// InventoryItem is the model for the 'inventory_items' table.
// Quantity is a plain integer and is allowed to go negative when orders
// are confirmed against insufficient stock.
type InventoryItem struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"` // The owner (creator)
	Name       string    `json:"name" db:"name"`
	Quantity   int       `json:"quantity" db:"quantity"`
	CategoryID *int64    `json:"categoryId,omitempty" db:"category_id"` // NULL when the category was deleted
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	// CategoryName is joined in on reads so log snapshots can resolve it
	// without a second query. Nil when the item has no category.
	CategoryName *string `json:"categoryName,omitempty" db:"-"`
}
