package di

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"mealscan_backend/internal/feature/auth/credential"
	authhandler "mealscan_backend/internal/feature/auth/transport/handler"
	authusecase "mealscan_backend/internal/feature/auth/usecase"
	recordadapters "mealscan_backend/internal/feature/records/adapters"
	recordhandler "mealscan_backend/internal/feature/records/transport/handler"
	recordusecase "mealscan_backend/internal/feature/records/usecase"
	statshandler "mealscan_backend/internal/feature/stats/transport/handler"
	statsusecase "mealscan_backend/internal/feature/stats/usecase"
	userhandler "mealscan_backend/internal/feature/users/transport/handler"
	userusecase "mealscan_backend/internal/feature/users/usecase"
	"mealscan_backend/internal/platform/config"
	platformhandler "mealscan_backend/internal/platform/http/handler"
	"mealscan_backend/internal/platform/http/middleware"
)

// AuthService is the auth usecase as seen by the router and the operator CLI.
type AuthService interface {
	authhandler.AuthUsecase
	middleware.SessionResolver
	ResetPassword(ctx context.Context, email, password string) error
	ChangeRole(ctx context.Context, email, role string) error
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// App holds the usecases and handlers built from one configuration.
type App struct {
	Credentials *credential.Store

	Auth  AuthService
	Users userhandler.UserUsecase

	AuthHandler   *authhandler.AuthHandler
	RecordHandler *recordhandler.RecordHandler
	UserHandler   *userhandler.UserHandler
	StatsHandler  *statshandler.StatsHandler
	HealthHandler *platformhandler.HealthHandler
}

// NewApp wires repositories, usecases and handlers. rdb may be nil, in which
// case sessions live in SQL and the user cache is disabled.
func NewApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client, log *zap.Logger) (*App, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Repository
	users := NewUserStore(rdb, db, cfg.Cache.StudentsTTL)
	sessions := NewSessionRepository(rdb, db)
	records := recordadapters.NewRecordGorm(db)
	creds := credential.NewStore(cfg.Auth.BcryptCost)

	// Usecase
	authUC := authusecase.NewAuthUsecase(users, sessions, creds, cfg.Session.IdleTimeout)
	userUC := userusecase.NewUserUsecase(users, authUC)
	recordUC := recordusecase.NewRecordUsecase(records, users)
	statsUC := statsusecase.NewStatsUsecase(records, users, nil)

	// Handler
	cookie := authhandler.CookieConfig{
		Name:     cfg.Session.CookieName,
		Secure:   cfg.Session.CookieSecure,
		SameSite: authhandler.ParseSameSite(cfg.Session.CookieSameSite),
	}

	return &App{
		Credentials:   creds,
		Auth:          authUC,
		Users:         userUC,
		AuthHandler:   authhandler.NewAuthHandler(authUC, cookie, log.Named("auth")),
		RecordHandler: recordhandler.NewRecordHandler(recordUC, log.Named("records")),
		UserHandler:   userhandler.NewUserHandler(userUC, log.Named("users")),
		StatsHandler:  statshandler.NewStatsHandler(statsUC),
		HealthHandler: platformhandler.NewHealthHandler(sqlDB),
	}, nil
}
