package store

import (
	"context"
	"fmt"

	"github.com/theleywin/masheel-api/src/models"
)

func allModels() []any {
	return []any{
		&models.Account{},
		&models.Experience{},
		&models.Requirement{},
		&models.Recommendation{},
		&models.Connection{},
		&models.Message{},
		&models.Notification{},
	}
}

// AutoMigrate creates or updates every table the API uses
func (s *Store) AutoMigrate(ctx context.Context) error {
	if err := s.conn(ctx).AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Reset drops every table and migrates again. Only meant for development.
func (s *Store) Reset(ctx context.Context) error {
	tables := allModels()
	// drop dependents before the accounts they reference
	for i := len(tables) - 1; i >= 0; i-- {
		if err := s.conn(ctx).Migrator().DropTable(tables[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return s.AutoMigrate(ctx)
}
