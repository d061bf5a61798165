package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/models"
	"github.com/amirahs/stockroom-golang/internal/repository"
)

// snapshot is the point-in-time copy of an item's mutable fields embedded
// in every audit row. It captures the resolved category *name*, not the id,
// so the row stays readable after categories are renamed or deleted.
type snapshot struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Category *string `json:"category"`
}

// Auditor is the single mutation observer for inventory items. Every code
// path that creates, updates or deletes an item (direct edit, bulk edit,
// order confirmation) must call exactly one of its methods after the
// mutation has committed.
//
// Log writes are deliberately best-effort: a failed write never unwinds the
// inventory change. It is logged and reported to administrators instead
// (a missing log entry beats a lost inventory update).
type Auditor struct {
	logs     repository.LogRepository
	notifier *Notifier
}

func NewAuditor(logs repository.LogRepository, notifier *Notifier) *Auditor {
	return &Auditor{logs: logs, notifier: notifier}
}

// ItemCreated records a CREATE audit row.
func (a *Auditor) ItemCreated(ctx context.Context, item *models.InventoryItem, actorID int64) {
	a.writeAudit(ctx, models.ActionCreate, item, actorID)
}

// ItemUpdated records an UPDATE audit row and, when the quantity actually
// changed, exactly one inventory log row with the before/after values.
func (a *Auditor) ItemUpdated(ctx context.Context, prev, curr *models.InventoryItem, actorID int64) {
	a.writeAudit(ctx, models.ActionUpdate, curr, actorID)

	if prev.Quantity == curr.Quantity {
		return
	}
	err := a.logs.CreateInventoryLog(ctx, &models.InventoryLog{
		ItemID:           curr.ID,
		PreviousQuantity: prev.Quantity,
		NewQuantity:      curr.Quantity,
		ChangedBy:        actorID,
	})
	if err != nil {
		a.report(ctx, curr.ID, apperror.Wrap(apperror.CodeLogWrite, "inventory log", err))
	}
}

// ItemDeleted records a DELETE audit row with the item as it was.
func (a *Auditor) ItemDeleted(ctx context.Context, item *models.InventoryItem, actorID int64) {
	a.writeAudit(ctx, models.ActionDelete, item, actorID)
}

func (a *Auditor) writeAudit(ctx context.Context, action string, item *models.InventoryItem, actorID int64) {
	changes, err := json.Marshal(snapshot{
		Name:     item.Name,
		Quantity: item.Quantity,
		Category: item.CategoryName,
	})
	if err != nil {
		a.report(ctx, item.ID, apperror.Wrap(apperror.CodeLogWrite, "marshal snapshot", err))
		return
	}

	err = a.logs.CreateAuditLog(ctx, &models.AuditLog{
		Action:  action,
		ItemID:  item.ID,
		UserID:  actorID,
		Changes: string(changes),
	})
	if err != nil {
		a.report(ctx, item.ID, apperror.Wrap(apperror.CodeLogWrite, "audit log", err))
	}
}

func (a *Auditor) report(ctx context.Context, itemID int64, err error) {
	log.Printf("LOG WRITE FAILED (item %d): %v", itemID, err)
	if a.notifier != nil {
		a.notifier.NotifyAdmins(ctx,
			fmt.Sprintf("Audit trail write failed for item %d: %v. The inventory change itself was saved.", itemID, err),
			"/v1/admin/audit-logs")
	}
}
