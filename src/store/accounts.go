package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/theleywin/masheel-api/src/lib"
	"github.com/theleywin/masheel-api/src/models"
)

// FindAccountByEmail returns the bare account row for email.
func (s *Store) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := s.conn(ctx).Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lib.NotFound("Account %s not found", email)
		}
		return nil, storageErr("find account", err)
	}
	return &account, nil
}

// FindProfileByEmail returns the account with experiences, requirement and
// recommendations loaded.
func (s *Store) FindProfileByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := s.conn(ctx).
		Preload("Experiences", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Requirement").
		Preload("Recommendations", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC, id DESC") }).
		Where("email = ?", email).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lib.NotFound("Account %s not found", email)
		}
		return nil, storageErr("find profile", err)
	}
	return &account, nil
}

// FindAccountWithMessages loads the account together with its outgoing and
// incoming messages, each in insertion order.
func (s *Store) FindAccountWithMessages(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	byID := func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }
	err := s.conn(ctx).
		Preload("OutgoingMessages", byID).
		Preload("IncomingMessages", byID).
		Where("email = ?", email).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lib.NotFound("Account %s not found", email)
		}
		return nil, storageErr("find account messages", err)
	}
	return &account, nil
}

func (s *Store) FindAccountsByIDs(ctx context.Context, ids []uint) ([]models.Account, error) {
	accounts := make([]models.Account, 0, len(ids))
	if len(ids) == 0 {
		return accounts, nil
	}
	if err := s.conn(ctx).Where("id IN ?", ids).Order("email ASC").Find(&accounts).Error; err != nil {
		return nil, storageErr("find accounts", err)
	}
	return accounts, nil
}

func (s *Store) AccountExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := s.conn(ctx).Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, storageErr("check account", err)
	}
	return count > 0, nil
}

// CreateAccount inserts the account and any nested experiences and
// requirement it carries.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	err := s.conn(ctx).Create(account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return lib.InvalidState("Account %s already exists", account.Email)
		}
		return storageErr("create account", err)
	}
	return nil
}

// UpdateAccountFields applies column updates to the account identified by email
func (s *Store) UpdateAccountFields(ctx context.Context, email string, fields map[string]any) error {
	result := s.conn(ctx).Model(&models.Account{}).Where("email = ?", email).Updates(fields)
	if result.Error != nil {
		return storageErr("update account", result.Error)
	}
	if result.RowsAffected == 0 {
		return lib.NotFound("Account %s not found", email)
	}
	return nil
}

func (s *Store) CreateRecommendation(ctx context.Context, rec *models.Recommendation) error {
	if err := s.conn(ctx).Create(rec).Error; err != nil {
		return storageErr("create recommendation", err)
	}
	return nil
}

func (s *Store) ListRecommendations(ctx context.Context, accountID uint) ([]models.Recommendation, error) {
	recs := make([]models.Recommendation, 0)
	err := s.conn(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, storageErr("list recommendations", err)
	}
	return recs, nil
}
