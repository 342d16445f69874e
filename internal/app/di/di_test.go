package di

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mealscan_backend/internal/platform/config"
	"mealscan_backend/internal/platform/session"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestNewSessionRepository(t *testing.T) {
	t.Parallel()

	db := openDB(t)

	t.Run("redis when available", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })

		_, ok := NewSessionRepository(rdb, db).(*session.SessionRedis)
		assert.True(t, ok)
	})

	t.Run("sql otherwise", func(t *testing.T) {
		_, ok := NewSessionRepository(nil, db).(*session.SessionRedis)
		assert.False(t, ok)
		assert.NotNil(t, NewSessionRepository(nil, db))
	})
}

func TestNewApp(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Session: config.SessionConfig{IdleTimeout: time.Hour, CookieName: "MEALSCAN_SESSION", CookieSameSite: "Lax"},
		Auth:    config.AuthConfig{BcryptCost: 4},
		Cache:   config.CacheConfig{StudentsTTL: time.Minute},
	}
	app, err := NewApp(cfg, openDB(t), nil, zap.NewNop())
	require.NoError(t, err)

	assert.NotNil(t, app.Auth)
	assert.NotNil(t, app.Users)
	assert.NotNil(t, app.Credentials)
	assert.NotNil(t, app.AuthHandler)
	assert.NotNil(t, app.RecordHandler)
	assert.NotNil(t, app.UserHandler)
	assert.NotNil(t, app.StatsHandler)
	assert.NotNil(t, app.HealthHandler)
}

func TestOpenInfra(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	cfg := &config.Config{
		DB:    config.DBConfig{Driver: "sqlite", Path: ":memory:", LogLevel: "silent", AutoMigrate: true},
		Redis: config.RedisConfig{Enabled: true, Addr: mr.Addr()},
	}

	infra, err := OpenInfra(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = infra.Close() })

	assert.NotNil(t, infra.Redis)
	assert.True(t, infra.DB.Migrator().HasTable("users"))
}

func TestOpenInfra_RedisDownFallsBack(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := &config.Config{
		DB:    config.DBConfig{Driver: "sqlite", Path: ":memory:", LogLevel: "silent"},
		Redis: config.RedisConfig{Enabled: true, Addr: addr},
	}
	infra, err := OpenInfra(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = infra.Close() })

	assert.Nil(t, infra.Redis)
}
