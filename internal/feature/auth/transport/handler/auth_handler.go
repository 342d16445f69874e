// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mealscan_backend/internal/feature/auth/domain/entity"
	"mealscan_backend/internal/feature/auth/transport/http/dto"
	"mealscan_backend/internal/feature/auth/usecase"
	"mealscan_backend/internal/platform/http/middleware"
	"mealscan_backend/internal/platform/http/response"
	"mealscan_backend/internal/shared/apperr"
)

// AuthUsecase is the subset of the auth usecase the handlers call.
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.Session, *entity.User, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID uint) (*entity.User, error)
	ChangePassword(ctx context.Context, userID uint, keepSession, current, next string) error
}

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

// ParseSameSite maps "strict", "none" and "lax" (the default) to http.SameSite.
func ParseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// AuthHandler serves login, registration, logout and the caller's own account.
type AuthHandler struct {
	auth   AuthUsecase
	cookie CookieConfig
	log    *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth AuthUsecase, cookie CookieConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie, log: log}
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.Validation("invalid request body"))
		return
	}

	session, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Warn("login failed", zap.String("email", req.Email), zap.String("ip", c.ClientIP()), zap.Error(err))
		response.Fail(c, toAppErr(err, "failed to log in"))
		return
	}

	h.setSessionCookie(c, session.ID, 0)
	h.log.Info("login successful", zap.String("email", user.Email), zap.String("ip", c.ClientIP()))
	response.OK(c, gin.H{"user": dto.NewUserRes(user)})
}

// Register creates an account. It does not log the new user in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.Validation("invalid request body"))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		h.log.Warn("registration failed", zap.String("email", req.Email), zap.String("ip", c.ClientIP()), zap.Error(err))
		response.Fail(c, toAppErr(err, "failed to register"))
		return
	}

	h.log.Info("registration successful", zap.String("email", user.Email), zap.String("role", user.Role.String()))
	response.Created(c, gin.H{"message": "Registration successful", "user": dto.NewUserRes(user)})
}

// Logout destroys the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		response.Fail(c, apperr.Internal("failed to log out", err))
		return
	}
	h.setSessionCookie(c, "", -1)
	response.OK(c, gin.H{"message": "Logged out successfully"})
}

// Me returns the caller's account.
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Fail(c, apperr.Unauthorized("Unauthorized"))
		return
	}
	user, err := h.auth.Me(c.Request.Context(), session.UserID)
	if err != nil {
		response.Fail(c, toAppErr(err, "failed to load user"))
		return
	}
	response.OK(c, gin.H{"user": dto.NewUserRes(user)})
}

// ChangePassword replaces the caller's password. The current session survives;
// the caller's other sessions are closed.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Fail(c, apperr.Unauthorized("Unauthorized"))
		return
	}

	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.Validation("invalid request body"))
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), session.UserID, session.ID, req.CurrentPassword, req.NewPassword); err != nil {
		response.Fail(c, toAppErr(err, "failed to change password"))
		return
	}
	h.log.Info("password changed", zap.Uint("user_id", session.UserID))
	response.OK(c, gin.H{"message": "Password changed successfully"})
}

// setSessionCookie writes the session cookie. maxAge 0 makes it a browser-session
// cookie; the server enforces the idle timeout itself.
func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}

// toAppErr classifies usecase errors. Anything unknown is an internal failure
// reported with op as its message.
func toAppErr(err error, op string) error {
	switch {
	case usecase.IsValidationError(err):
		return apperr.Validation(err.Error())
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return apperr.Unauthorized("Invalid email or password")
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		return apperr.Conflict("Email already registered")
	case errors.Is(err, usecase.ErrCurrentPasswordIncorrect):
		return apperr.Validation("Current password is incorrect")
	case errors.Is(err, usecase.ErrUserNotFound):
		return apperr.NotFound("User not found")
	default:
		return apperr.Internal(op, err)
	}
}
