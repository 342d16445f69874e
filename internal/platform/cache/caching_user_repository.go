// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mealscan_backend/internal/feature/auth/domain/entity"
	authusecase "mealscan_backend/internal/feature/auth/usecase"
	usersusecase "mealscan_backend/internal/feature/users/usecase"
)

// UserStore is the full user repository surface shared by the auth, users and stats features.
type UserStore interface {
	authusecase.UserRepository
	usersusecase.UserRepository
	CountByRole(ctx context.Context) (map[entity.Role]int64, error)
}

// CachingUserRepository decorates a UserStore with Redis caching of the role
// listings and role counts. Every mutation drops the whole namespace.
// Cached users carry no password hash.
type CachingUserRepository struct {
	UserStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure CachingUserRepository implements UserStore.
var _ UserStore = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "users".
// A nil rdb disables caching.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner UserStore, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserRepository{
		UserStore: inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// ListByRole retrieves users of a role, checking the cache first.
func (c *CachingUserRepository) ListByRole(ctx context.Context, role entity.Role) ([]entity.User, error) {
	var out []entity.User
	err := c.readThrough(ctx, c.roleKey(role), &out, func() (any, error) {
		users, err := c.UserStore.ListByRole(ctx, role)
		out = users
		return users, err
	})
	return out, err
}

// CountByRole retrieves the per-role user counts, checking the cache first.
func (c *CachingUserRepository) CountByRole(ctx context.Context) (map[entity.Role]int64, error) {
	var out map[entity.Role]int64
	err := c.readThrough(ctx, c.countsKey(), &out, func() (any, error) {
		counts, err := c.UserStore.CountByRole(ctx)
		out = counts
		return counts, err
	})
	return out, err
}

// readThrough decodes key into dst on a hit. On a miss it calls load, which must
// also fill dst, and stores the loaded value.
func (c *CachingUserRepository) readThrough(ctx context.Context, key string, dst any, load func() (any, error)) error {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		_, err := load()
		return err
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		if err := json.Unmarshal(b, dst); err == nil {
			return nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	v, err := load()
	if err != nil {
		return err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return nil
}

func (c *CachingUserRepository) Create(ctx context.Context, u *entity.User) error {
	return c.invalidateAfter(ctx, c.UserStore.Create(ctx, u))
}

func (c *CachingUserRepository) Update(ctx context.Context, id uint, name, email string) error {
	return c.invalidateAfter(ctx, c.UserStore.Update(ctx, id, name, email))
}

func (c *CachingUserRepository) UpdateRole(ctx context.Context, id uint, role entity.Role) error {
	return c.invalidateAfter(ctx, c.UserStore.UpdateRole(ctx, id, role))
}

func (c *CachingUserRepository) Delete(ctx context.Context, id uint) error {
	return c.invalidateAfter(ctx, c.UserStore.Delete(ctx, id))
}

func (c *CachingUserRepository) DeleteCascade(ctx context.Context, id uint) error {
	return c.invalidateAfter(ctx, c.UserStore.DeleteCascade(ctx, id))
}

// invalidateAfter drops the cache when the mutation succeeded and passes err through.
func (c *CachingUserRepository) invalidateAfter(ctx context.Context, err error) error {
	if err != nil || c.rdb == nil {
		return err
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*") // Best effort: don't fail if cache deletion fails
	return nil
}

func (c *CachingUserRepository) roleKey(role entity.Role) string {
	return fmt.Sprintf("%s:role:%s", c.namespace, role)
}

func (c *CachingUserRepository) countsKey() string {
	return c.namespace + ":counts"
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingUserRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
