package notifications

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

// Notifier is the outbound port used by the gamification flow. Delivery is
// best-effort: persistence and push failures are logged, never returned.
type Notifier interface {
	Notify(ctx context.Context, userID int64, notificationType, title, message string)
}

type Service interface {
	Notifier

	List(ctx context.Context, userID int64, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, userID int64, notificationID string) error
}

type service struct {
	repo Repository
	hub  *Hub
}

func NewService(repo Repository, hub *Hub) Service {
	return &service{repo: repo, hub: hub}
}

func (s *service) Notify(ctx context.Context, userID int64, notificationType, title, message string) {
	notification := &Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Insert(ctx, notification); err != nil {
		log.Printf("notifications: persisting notification for user %d failed: %v", userID, err)
	}

	if s.hub == nil {
		return
	}

	data, err := json.Marshal(notification)
	if err != nil {
		log.Printf("notifications: marshaling notification for user %d failed: %v", userID, err)
		return
	}
	envelope, err := json.Marshal(WSMessage{
		Type:      notification.Type,
		Data:      data,
		Timestamp: notification.CreatedAt,
	})
	if err != nil {
		log.Printf("notifications: marshaling envelope for user %d failed: %v", userID, err)
		return
	}

	s.hub.Push(userID, envelope)
}

func (s *service) List(ctx context.Context, userID int64, limit int) ([]Notification, error) {
	return s.repo.ListRecent(ctx, userID, limit)
}

func (s *service) MarkRead(ctx context.Context, userID int64, notificationID string) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}
