package services

import (
	"context"

	"github.com/theleywin/masheel-api/src/models"
	"github.com/theleywin/masheel-api/src/store"
)

type NotificationService struct {
	store *store.Store
}

func NewNotificationService(st *store.Store) *NotificationService {
	return &NotificationService{store: st}
}

func (s *NotificationService) List(ctx context.Context, accountID uint) ([]models.Notification, error) {
	return s.store.ListNotifications(ctx, accountID)
}

func (s *NotificationService) MarkRead(ctx context.Context, accountID, id uint) (*models.Notification, error) {
	return s.store.MarkNotificationRead(ctx, accountID, id)
}

func (s *NotificationService) Delete(ctx context.Context, accountID, id uint) error {
	return s.store.DeleteNotification(ctx, accountID, id)
}
