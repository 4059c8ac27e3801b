package services

import (
	"log/slog"
	"messenger/domain"
	"messenger/observability"
	"messenger/repositories"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type INotificationService interface {
	Notify(userID uuid.UUID, notificationType domain.NotificationType) (*domain.Notification, error)
	List(userID uuid.UUID) ([]domain.Notification, error)
	UnreadCount(userID uuid.UUID) (int, error)
	MarkRead(id uuid.UUID) (*domain.Notification, error)
}

type NotificationService struct {
	log           *slog.Logger
	factory       domain.Factory
	notifications repositories.INotificationRepository
}

func NewNotificationService(log *slog.Logger, factory domain.Factory,
	notifications repositories.INotificationRepository) *NotificationService {
	return &NotificationService{log: log, factory: factory, notifications: notifications}
}

func (s *NotificationService) Notify(userID uuid.UUID, notificationType domain.NotificationType) (*domain.Notification, error) {
	notification := s.factory.NewNotification(userID, notificationType)
	if err := s.notifications.SaveNotification(*notification); err != nil {
		return nil, err
	}
	observability.NotificationsCreated.WithLabelValues(notificationType.String()).Inc()
	s.log.Debug("Notification created", "user_id", userID, "type", notificationType)
	return notification, nil
}

// List returns the inbox of userID, oldest first.
func (s *NotificationService) List(userID uuid.UUID) ([]domain.Notification, error) {
	return s.notifications.ListNotifications(userID)
}

func (s *NotificationService) UnreadCount(userID uuid.UUID) (int, error) {
	inbox, err := s.notifications.ListNotifications(userID)
	if err != nil {
		return 0, err
	}
	return lo.CountBy(inbox, func(n domain.Notification) bool { return !n.IsRead }), nil
}

// MarkRead is idempotent; an already read notification is not rewritten.
func (s *NotificationService) MarkRead(id uuid.UUID) (*domain.Notification, error) {
	notification, err := s.notifications.GetNotification(id)
	if err != nil {
		return nil, err
	}
	if notification.IsRead {
		return notification, nil
	}
	notification.MarkRead()
	if err = s.notifications.SaveNotification(*notification); err != nil {
		return nil, err
	}
	return notification, nil
}
