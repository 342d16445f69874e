package db

import (
	"fmt"

	"gorm.io/gorm"

	authadapters "mealscan_backend/internal/feature/auth/adapters"
	"mealscan_backend/internal/feature/auth/domain/entity"
	recordadapters "mealscan_backend/internal/feature/records/adapters"
)

// Migrate creates or updates the users, records and sessions tables.
// Users must come first: records reference them with cascading foreign keys.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return ErrNilDB
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&recordadapters.RecordModel{},
		&authadapters.SessionModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	// sessions.name held a display-name snapshot; AutoMigrate never drops columns
	if m := db.Migrator(); m.HasColumn(&authadapters.SessionModel{}, "name") {
		if err := m.DropColumn(&authadapters.SessionModel{}, "name"); err != nil {
			return fmt.Errorf("failed to drop sessions.name: %w", err)
		}
	}
	return nil
}
