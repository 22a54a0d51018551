package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/messaging"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/model"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/repository"
)

// NotificationService is the dispatcher: Notify is called synchronously from
// every report mutation, so the stored record always reflects post-mutation
// state. Live streaming rides separately on the event consumer.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	sseHub           *messaging.SSEHub
}

func NewNotificationService(notificationRepo *repository.NotificationRepository, sseHub *messaging.SSEHub) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		sseHub:           sseHub,
	}
}

// Notify creates and stores an unread notification for the recipient.
func (s *NotificationService) Notify(recipient, message string, kind model.NotificationKind) model.Notification {
	notification := model.Notification{
		ID:             uuid.New(),
		UserIdentifier: recipient,
		Message:        message,
		Kind:           kind,
		IsRead:         false,
		Timestamp:      time.Now(),
	}
	s.notificationRepo.Create(notification)
	return notification
}

func (s *NotificationService) ListForUser(identifier string) *model.NotificationListResponse {
	notifications := s.notificationRepo.ForRecipient(identifier)
	if notifications == nil {
		notifications = []model.Notification{}
	}

	return &model.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   s.notificationRepo.UnreadCount(identifier),
	}
}

func (s *NotificationService) MarkAllRead(identifier string) {
	s.notificationRepo.MarkAllRead(identifier)
}

func (s *NotificationService) UnreadCount(identifier string) int {
	return s.notificationRepo.UnreadCount(identifier)
}

func (s *NotificationService) RegisterClient(identifier string) *messaging.SSEClient {
	return s.sseHub.RegisterClient(identifier)
}

func (s *NotificationService) UnregisterClient(client *messaging.SSEClient) {
	s.sseHub.UnregisterClient(client)
}
