package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mealscan_backend/internal/feature/auth/domain/entity"
	authusecase "mealscan_backend/internal/feature/auth/usecase"
	"mealscan_backend/internal/platform/http/response"
)

// ContextSession is the gin context key holding the *entity.Session of the caller.
const ContextSession = "session"

// SessionResolver turns a session token into a live session.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*entity.Session, error)
}

// RequireSession reads the session cookie, resolves it and stores the session
// on the context. Missing, unknown and expired sessions get 401.
func RequireSession(resolver SessionResolver, cookieName string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		session, err := resolver.ResolveSession(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, authusecase.ErrSessionNotFound), errors.Is(err, authusecase.ErrSessionExpired):
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		default:
			log.Error("session lookup failed", zap.Error(err), zap.String("request_id", GetRequestID(c)))
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "internal server error")
			return
		}

		c.Set(ContextSession, session)
		c.Next()
	}
}

// CurrentSession returns the session stored by RequireSession.
func CurrentSession(c *gin.Context) (*entity.Session, bool) {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil, false
	}
	s, ok := v.(*entity.Session)
	return s, ok && s != nil
}
