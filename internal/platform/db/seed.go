package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mealscan_backend/internal/feature/auth/domain/entity"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "password123"

// Hasher hashes the seed password.
type Hasher interface {
	Hash(password string) (string, error)
}

// DefaultUsers are created on first boot, one per role.
var DefaultUsers = []entity.User{
	{Email: "student@mealscan.com", Name: "John Doe", Role: entity.RoleStudent},
	{Email: "mess@mealscan.com", Name: "Mess Contractor", Role: entity.RoleMessContractor},
	{Email: "canteen@mealscan.com", Name: "Canteen Contractor", Role: entity.RoleCanteenContractor},
}

// Seed inserts DefaultUsers when the users table is empty. It reports how many
// users were created; an already populated table yields 0 and no error.
func Seed(ctx context.Context, db *gorm.DB, hasher Hasher, log *zap.Logger) (int, error) {
	if db == nil {
		return 0, ErrNilDB
	}

	var count int64
	if err := db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	hash, err := hasher.Hash(DefaultPassword)
	if err != nil {
		return 0, err
	}

	users := make([]entity.User, len(DefaultUsers))
	copy(users, DefaultUsers)
	for i := range users {
		users[i].Password = hash
	}

	if err := db.WithContext(ctx).Create(&users).Error; err != nil {
		return 0, fmt.Errorf("failed to seed users: %w", err)
	}

	for _, u := range users {
		log.Info("seeded default user", zap.String("email", u.Email), zap.String("role", u.Role.String()))
	}
	return len(users), nil
}
