package service

import (
	"context"
	"database/sql"
	"log"

	"github.com/amirahs/stockroom-golang/internal/models"
	"github.com/amirahs/stockroom-golang/internal/repository"
)

// Notifier pushes in-app notifications. It is the operator-visible channel
// for low-stock alerts and failed log writes.
type Notifier struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
}

func NewNotifier(notifications repository.NotificationRepository, users repository.UserRepository) *Notifier {
	return &Notifier{notifications: notifications, users: users}
}

func (n *Notifier) Notify(ctx context.Context, userID int64, message, link string) error {
	var nullLink sql.NullString
	if link != "" {
		nullLink = sql.NullString{String: link, Valid: true}
	}
	return n.notifications.Create(ctx, &models.Notification{
		UserID:  userID,
		Message: message,
		Link:    nullLink,
	})
}

// NotifyAdmins fans a message out to every administrator. Best-effort: a
// failure here only gets logged, there is nothing further up to report to.
func (n *Notifier) NotifyAdmins(ctx context.Context, message, link string) {
	adminIDs, err := n.users.ListAdminIDs(ctx)
	if err != nil {
		log.Printf("notify admins: listing admins failed: %v", err)
		return
	}
	for _, id := range adminIDs {
		if err := n.Notify(ctx, id, message, link); err != nil {
			log.Printf("notify admins: notifying user %d failed: %v", id, err)
		}
	}
}
