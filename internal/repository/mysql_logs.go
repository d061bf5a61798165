package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amirahs/stockroom-golang/internal/models"
)

type MySQLLogRepository struct {
	db *sql.DB
}

func NewMySQLLogRepository(db *sql.DB) *MySQLLogRepository {
	return &MySQLLogRepository{db: db}
}

func (r *MySQLLogRepository) q(ctx context.Context) querier {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return r.db
}

func (r *MySQLLogRepository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	entry.Timestamp = time.Now()
	res, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO audit_logs (action, item_id, user_id, timestamp, changes)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.Action, entry.ItemID, entry.UserID, entry.Timestamp, entry.Changes)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	entry.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLLogRepository) CreateInventoryLog(ctx context.Context, entry *models.InventoryLog) error {
	entry.Timestamp = time.Now()
	res, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO inventory_logs (item_id, previous_quantity, new_quantity, changed_by, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ItemID, entry.PreviousQuantity, entry.NewQuantity, entry.ChangedBy, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("insert inventory log: %w", err)
	}
	entry.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLLogRepository) ListAuditLogs(ctx context.Context, page int) ([]models.AuditLog, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT id, action, item_id, user_id, timestamp, changes
		 FROM audit_logs
		 ORDER BY timestamp DESC, id DESC
		 LIMIT ? OFFSET ?`, LogsPageSize, pageOffset(page))
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	return collectAuditLogs(rows)
}

func (r *MySQLLogRepository) ListInventoryLogs(ctx context.Context, page int) ([]models.InventoryLog, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT id, item_id, previous_quantity, new_quantity, changed_by, timestamp
		 FROM inventory_logs
		 ORDER BY timestamp DESC, id DESC
		 LIMIT ? OFFSET ?`, LogsPageSize, pageOffset(page))
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	defer rows.Close()
	return collectInventoryLogs(rows)
}

func (r *MySQLLogRepository) ListAuditLogsByItem(ctx context.Context, itemID int64) ([]models.AuditLog, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT id, action, item_id, user_id, timestamp, changes
		 FROM audit_logs WHERE item_id = ? ORDER BY id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list audit logs by item: %w", err)
	}
	defer rows.Close()
	return collectAuditLogs(rows)
}

func (r *MySQLLogRepository) ListInventoryLogsByItem(ctx context.Context, itemID int64) ([]models.InventoryLog, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT id, item_id, previous_quantity, new_quantity, changed_by, timestamp
		 FROM inventory_logs WHERE item_id = ? ORDER BY id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs by item: %w", err)
	}
	defer rows.Close()
	return collectInventoryLogs(rows)
}

func pageOffset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * LogsPageSize
}

func collectAuditLogs(rows *sql.Rows) ([]models.AuditLog, error) {
	logs := []models.AuditLog{}
	for rows.Next() {
		var entry models.AuditLog
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.ItemID,
			&entry.UserID, &entry.Timestamp, &entry.Changes); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

func collectInventoryLogs(rows *sql.Rows) ([]models.InventoryLog, error) {
	logs := []models.InventoryLog{}
	for rows.Next() {
		var entry models.InventoryLog
		if err := rows.Scan(&entry.ID, &entry.ItemID, &entry.PreviousQuantity,
			&entry.NewQuantity, &entry.ChangedBy, &entry.Timestamp); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
