package di

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"mealscan_backend/internal/platform/config"
	platformdb "mealscan_backend/internal/platform/db"
	platformredis "mealscan_backend/internal/platform/redis"
)

// Infra holds the external connections of a process.
type Infra struct {
	DB    *gorm.DB
	Redis *redis.Client // nil when Redis is disabled or unreachable
	log   *zap.Logger
}

// OpenInfra connects to the database, applies migrations when enabled and
// connects to Redis when enabled. An unreachable Redis is logged and skipped;
// sessions then live in SQL.
func OpenInfra(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Infra, error) {
	db, err := platformdb.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := platformdb.Migrate(db); err != nil {
			closeDB(db, log)
			return nil, err
		}
	}

	infra := &Infra{DB: db, log: log}
	if cfg.Redis.Enabled {
		rdb, err := platformredis.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn("redis unavailable, running without cache and with SQL sessions", zap.Error(err))
		} else {
			infra.Redis = rdb
		}
	}
	return infra, nil
}

// Close releases every connection.
func (i *Infra) Close() error {
	var firstErr error
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close redis: %w", err)
		}
	}
	if sqlDB, err := i.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close db: %w", err)
		}
	}
	return firstErr
}

func closeDB(db *gorm.DB, log *zap.Logger) {
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("failed to close db", zap.Error(err))
		}
	}
}
