//go:generate go run go.uber.org/mock/mockgen -source=notification.go -destination=../mocks/mock_notification_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"messenger/domain"
	"messenger/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type INotificationRepository interface {
	SaveNotification(notification domain.Notification) error
	GetNotification(id uuid.UUID) (*domain.Notification, error)
	ListNotifications(userID uuid.UUID) ([]domain.Notification, error)
}

type NotificationRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewNotificationRepository(db *badger.DB, log *slog.Logger) *NotificationRepository {
	return &NotificationRepository{db: db, log: log}
}

// notificationKey is "notif:{user}:{created_at}:{id}", so an inbox scan is chronological.
func notificationKey(n domain.Notification) string {
	return fmt.Sprintf("%s%s:%s:%s", notificationPrefix, n.UserID, paddedNano(n.CreatedAt), n.ID)
}

// SaveNotification upserts; the key only depends on fields that never change.
func (r *NotificationRepository) SaveNotification(notification domain.Notification) error {
	key := notificationKey(notification)
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(notificationIndex+notification.ID.String()), []byte(key)); err != nil {
			return err
		}
		return setJSON(txn, key, notification)
	})
}

func (r *NotificationRepository) GetNotification(id uuid.UUID) (*domain.Notification, error) {
	var notification domain.Notification
	err := r.db.View(func(txn *badger.Txn) error {
		key, err := getString(txn, notificationIndex+id.String(), errors.ErrNotificationNotFound)
		if err != nil {
			return err
		}
		notification, err = getJSON[domain.Notification](txn, key, errors.ErrNotificationNotFound)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepository) ListNotifications(userID uuid.UUID) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := r.db.View(func(txn *badger.Txn) (err error) {
		notifications, err = scanJSON[domain.Notification](txn, fmt.Sprintf("%s%s:", notificationPrefix, userID))
		return err
	})
	return notifications, err
}
