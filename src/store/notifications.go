package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/theleywin/masheel-api/src/lib"
	"github.com/theleywin/masheel-api/src/models"
)

func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	if err := s.conn(ctx).Create(n).Error; err != nil {
		return storageErr("create notification", err)
	}
	return nil
}

// ListNotifications returns the account's notifications, newest first, with
// the related account loaded.
func (s *Store) ListNotifications(ctx context.Context, recipientID uint) ([]models.Notification, error) {
	notifications := make([]models.Notification, 0)
	err := s.conn(ctx).Preload("RelatedAccount").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, storageErr("list notifications", err)
	}
	return notifications, nil
}

// MarkNotificationRead flags the notification as read. Notifications owned
// by another account are reported as not found.
func (s *Store) MarkNotificationRead(ctx context.Context, recipientID, id uint) (*models.Notification, error) {
	var n models.Notification
	err := s.conn(ctx).Where("id = ? AND recipient_id = ?", id, recipientID).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lib.NotFound("Notification not found")
		}
		return nil, storageErr("find notification", err)
	}
	if err := s.conn(ctx).Model(&n).Update("read", true).Error; err != nil {
		return nil, storageErr("update notification", err)
	}
	n.Read = true
	return &n, nil
}

func (s *Store) DeleteNotification(ctx context.Context, recipientID, id uint) error {
	result := s.conn(ctx).Where("id = ? AND recipient_id = ?", id, recipientID).Delete(&models.Notification{})
	if result.Error != nil {
		return storageErr("delete notification", result.Error)
	}
	if result.RowsAffected == 0 {
		return lib.NotFound("Notification not found")
	}
	return nil
}
