package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/theleywin/masheel-api/src/lib"
	"github.com/theleywin/masheel-api/src/models"
)

// FindConnection returns the directed row sender → recipient.
func (s *Store) FindConnection(ctx context.Context, senderID, recipientID uint) (*models.Connection, error) {
	return s.findConnection(s.conn(ctx), senderID, recipientID)
}

// LockConnection is FindConnection with a row lock held until the enclosing
// transaction ends. SQLite has no row locks; its single writer connection
// already serializes transactions.
func (s *Store) LockConnection(ctx context.Context, senderID, recipientID uint) (*models.Connection, error) {
	return s.findConnection(s.conn(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), senderID, recipientID)
}

func (s *Store) findConnection(db *gorm.DB, senderID, recipientID uint) (*models.Connection, error) {
	var conn models.Connection
	err := db.Where("sender_id = ? AND recipient_id = ?", senderID, recipientID).First(&conn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lib.NotFound("Connection request not found")
		}
		return nil, storageErr("find connection", err)
	}
	return &conn, nil
}

// UpsertConnection creates the row sender → recipient with status, or
// overwrites the status of the existing row.
func (s *Store) UpsertConnection(ctx context.Context, senderID, recipientID uint, status models.ConnectionStatus) error {
	conn := models.Connection{
		SenderID:    senderID,
		RecipientID: recipientID,
		Status:      status,
	}
	err := s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sender_id"}, {Name: "recipient_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&conn).Error
	if err != nil {
		return storageErr("upsert connection", err)
	}
	return nil
}

// TransitionConnection moves the row sender → recipient from one status to
// another. It reports false when the row was not in the expected status,
// which is how a lost race shows up.
func (s *Store) TransitionConnection(ctx context.Context, senderID, recipientID uint, from, to models.ConnectionStatus) (bool, error) {
	result := s.conn(ctx).Model(&models.Connection{}).
		Where("sender_id = ? AND recipient_id = ? AND status = ?", senderID, recipientID, from).
		Update("status", to)
	if result.Error != nil {
		return false, storageErr("update connection", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// DeleteConnectionsBetween removes rows with status between a and b, in
// either direction, and returns how many were removed.
func (s *Store) DeleteConnectionsBetween(ctx context.Context, a, b uint, status models.ConnectionStatus) (int64, error) {
	result := s.conn(ctx).
		Where("((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)) AND status = ?",
			a, b, b, a, status).
		Delete(&models.Connection{})
	if result.Error != nil {
		return 0, storageErr("delete connection", result.Error)
	}
	return result.RowsAffected, nil
}

// ConnectionsOf returns every row the account takes part in, on either side,
// with both accounts loaded.
func (s *Store) ConnectionsOf(ctx context.Context, accountID uint) ([]models.Connection, error) {
	conns := make([]models.Connection, 0)
	err := s.conn(ctx).Preload("Sender").Preload("Recipient").
		Where("sender_id = ? OR recipient_id = ?", accountID, accountID).
		Order("id ASC").
		Find(&conns).Error
	if err != nil {
		return nil, storageErr("list connections", err)
	}
	return conns, nil
}

// CountConnectionsBetween counts rows with status between a and b in either
// direction.
func (s *Store) CountConnectionsBetween(ctx context.Context, a, b uint, status models.ConnectionStatus) (int64, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Connection{}).
		Where("((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)) AND status = ?",
			a, b, b, a, status).
		Count(&count).Error
	if err != nil {
		return 0, storageErr("count connections", err)
	}
	return count, nil
}

// PendingReceived returns pending requests addressed to the account, newest
// first, with senders loaded.
func (s *Store) PendingReceived(ctx context.Context, accountID uint) ([]models.Connection, error) {
	conns := make([]models.Connection, 0)
	err := s.conn(ctx).Preload("Sender").
		Where("recipient_id = ? AND status = ?", accountID, models.ConnectionStatusPending).
		Order("updated_at DESC, id DESC").
		Find(&conns).Error
	if err != nil {
		return nil, storageErr("list connection requests", err)
	}
	return conns, nil
}
