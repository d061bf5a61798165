package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amirahs/stockroom-golang/internal/models"
)

type MySQLNotificationRepository struct {
	db *sql.DB
}

func NewMySQLNotificationRepository(db *sql.DB) *MySQLNotificationRepository {
	return &MySQLNotificationRepository{db: db}
}

func (r *MySQLNotificationRepository) q(ctx context.Context) querier {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return r.db
}

func (r *MySQLNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	notification.CreatedAt = time.Now()
	res, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO notifications (user_id, message, link, is_read, created_at)
		 VALUES (?, ?, ?, 0, ?)`,
		notification.UserID, notification.Message, notification.Link, notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	notification.ID, err = res.LastInsertId()
	return err
}

// ListByUser returns the user's notifications, unread and newest first.
// Capped at 50 rows to keep the payload sane.
func (r *MySQLNotificationRepository) ListByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT id, user_id, message, link, is_read, created_at
		 FROM notifications
		 WHERE user_id = ?
		 ORDER BY is_read ASC, created_at DESC
		 LIMIT 50`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead updates the row only if it belongs to the given user, so one
// user can never touch another user's notifications.
func (r *MySQLNotificationRepository) MarkRead(ctx context.Context, id, userID int64) (bool, error) {
	res, err := r.q(ctx).ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

var _ NotificationRepository = (*MySQLNotificationRepository)(nil)
