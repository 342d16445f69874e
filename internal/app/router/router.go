// Package router builds the gin engine: middleware chain, routes and role policy.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mealscan_backend/internal/app/di"
	"mealscan_backend/internal/feature/auth/domain/entity"
	"mealscan_backend/internal/platform/config"
	"mealscan_backend/internal/platform/http/middleware"
	"mealscan_backend/internal/shared/ratelimiter"
)

var (
	contractors = middleware.Allow(entity.RoleMessContractor, entity.RoleCanteenContractor)
	students    = middleware.Allow(entity.RoleStudent)
)

// Policy is the role table of every authenticated route.
var Policy = middleware.Policy{
	middleware.Key(http.MethodPost, "/api/logout"):           middleware.AnyRole(),
	middleware.Key(http.MethodGet, "/api/me"):                middleware.AnyRole(),
	middleware.Key(http.MethodPut, "/api/me/password"):       middleware.AnyRole(),
	middleware.Key(http.MethodGet, "/api/records"):           middleware.AnyRole(),
	middleware.Key(http.MethodPost, "/api/records/upload"):   contractors,
	middleware.Key(http.MethodDelete, "/api/records/delete"): contractors,
	middleware.Key(http.MethodGet, "/api/bills"):             students,
	middleware.Key(http.MethodGet, "/api/users"):             contractors,
	middleware.Key(http.MethodPut, "/api/users/update"):      contractors,
	middleware.Key(http.MethodDelete, "/api/users/delete"):   contractors,
	middleware.Key(http.MethodGet, "/api/users/counts"):      contractors,
	middleware.Key(http.MethodGet, "/api/stats"):             contractors,
}

// NewRouter builds the engine for app.
func NewRouter(cfg *config.Config, app *di.App, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log.Named("http")),
		middleware.SecurityHeaders(),
		middleware.BodyLimit(cfg.Server.BodyLimitBytes),
	)
	if origins := cfg.Server.CORS.AllowOrigins; len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", app.HealthHandler.Health)
	r.HEAD("/healthz", app.HealthHandler.Health)

	// no session required
	loginLimiter := ratelimiter.NewKeyedLimiter(cfg.Auth.LoginRate, cfg.Auth.LoginBurst, 10*time.Minute)
	public := r.Group("/api", middleware.RateLimit(loginLimiter))
	{
		public.POST("/login", app.AuthHandler.Login)
		public.POST("/register", app.AuthHandler.Register)
	}

	api := r.Group("/api",
		middleware.RequireSession(app.Auth, cfg.Session.CookieName, log.Named("session")),
		middleware.Authorize(Policy),
	)
	{
		api.POST("/logout", app.AuthHandler.Logout)
		api.GET("/me", app.AuthHandler.Me)
		api.PUT("/me/password", app.AuthHandler.ChangePassword)

		api.GET("/records", app.RecordHandler.List)
		api.POST("/records/upload", app.RecordHandler.Upload)
		api.DELETE("/records/delete", app.RecordHandler.Delete)
		api.GET("/bills", app.RecordHandler.Bill)

		api.GET("/users", app.UserHandler.ListStudents)
		api.PUT("/users/update", app.UserHandler.Update)
		api.DELETE("/users/delete", app.UserHandler.Delete)
		api.GET("/users/counts", app.UserHandler.RecordCounts)

		api.GET("/stats", app.StatsHandler.Stats)
	}

	return r
}
