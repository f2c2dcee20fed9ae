package store

import (
	"context"

	"github.com/theleywin/masheel-api/src/models"
)

func (s *Store) CreateMessage(ctx context.Context, msg *models.Message) error {
	if err := s.conn(ctx).Create(msg).Error; err != nil {
		return storageErr("create message", err)
	}
	return nil
}
