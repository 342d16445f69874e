// Package di provides factories that assemble the application's components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "mealscan_backend/internal/feature/auth/adapters"
	"mealscan_backend/internal/feature/auth/usecase"
	"mealscan_backend/internal/platform/session"
)

// sessionKeyPrefix namespaces session keys in Redis.
const sessionKeyPrefix = "session"

// NewSessionRepository returns the Redis session store when rdb is non-nil and
// the SQL sessions table otherwise.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, sessionKeyPrefix)
	}
	return authadapters.NewSessionGorm(db)
}
