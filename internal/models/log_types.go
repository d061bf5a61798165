package models

import "time"

// Audit actions
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// AuditLog is the model for the 'audit_logs' table. Append-only: one row
// per create/update/delete of an inventory item. Changes holds a JSON
// snapshot of {name, quantity, category} taken at the moment of the event,
// so the row stays meaningful after the item itself is gone.
type AuditLog struct {
	ID        int64     `json:"id" db:"id"`
	Action    string    `json:"action" db:"action"`
	ItemID    int64     `json:"itemId" db:"item_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Changes   string    `json:"changes" db:"changes"`
}

// InventoryLog is the model for the 'inventory_logs' table. Append-only:
// one row per actual quantity change, whichever code path performed it.
type InventoryLog struct {
	ID               int64     `json:"id" db:"id"`
	ItemID           int64     `json:"itemId" db:"item_id"`
	PreviousQuantity int       `json:"previousQuantity" db:"previous_quantity"`
	NewQuantity      int       `json:"newQuantity" db:"new_quantity"`
	ChangedBy        int64     `json:"changedBy" db:"changed_by"`
	Timestamp        time.Time `json:"timestamp" db:"timestamp"`
}
