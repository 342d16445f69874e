package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "mealscan_backend/internal/feature/auth/adapters"
	"mealscan_backend/internal/platform/cache"
)

// usersCacheNamespace prefixes the student directory cache keys.
const usersCacheNamespace = "users"

// NewUserStore wraps the SQL user repository in the read-through cache.
// With a nil rdb the cache passes every call straight through.
func NewUserStore(rdb *redis.Client, db *gorm.DB, ttl time.Duration) *cache.CachingUserRepository {
	return cache.NewCachingUserRepository(rdb, ttl, authadapters.NewUserGorm(db), usersCacheNamespace)
}
