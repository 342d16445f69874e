// Package handler provides the HTTP handlers of the user directory.
package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mealscan_backend/internal/feature/auth/domain/entity"
	authusecase "mealscan_backend/internal/feature/auth/usecase"
	"mealscan_backend/internal/feature/users/transport/http/dto"
	"mealscan_backend/internal/feature/users/usecase"
	"mealscan_backend/internal/platform/http/middleware"
	"mealscan_backend/internal/platform/http/response"
	"mealscan_backend/internal/shared/apperr"
)

// UserUsecase is the subset of the users usecase the handlers call.
type UserUsecase interface {
	ListStudents(ctx context.Context, query string) ([]entity.User, error)
	Update(ctx context.Context, id uint, name, email string) error
	Delete(ctx context.Context, actorID, id uint) error
	RecordCounts(ctx context.Context, id uint) (entity.RecordCounts, error)
}

// UserHandler serves the contractor-facing student directory.
type UserHandler struct {
	uc  UserUsecase
	log *zap.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(uc UserUsecase, log *zap.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// ListStudents handles GET /api/users, optionally filtered by ?q=.
func (h *UserHandler) ListStudents(c *gin.Context) {
	students, err := h.uc.ListStudents(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Fail(c, apperr.Internal("failed to fetch students", err))
		return
	}
	response.OK(c, gin.H{"students": dto.NewStudentResList(students)})
}

// Update handles PUT /api/users/update?id=N.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.Validation("invalid request body"))
		return
	}

	if err := h.uc.Update(c.Request.Context(), id, req.Name, req.Email); err != nil {
		response.Fail(c, toAppErr(err, "failed to update user"))
		return
	}
	response.OK(c, gin.H{"message": "User updated successfully"})
}

// Delete handles DELETE /api/users/delete?id=N. The user's records go with it.
func (h *UserHandler) Delete(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Fail(c, apperr.Unauthorized("Unauthorized"))
		return
	}
	id, ok := queryID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), session.UserID, id); err != nil {
		response.Fail(c, toAppErr(err, "failed to delete user"))
		return
	}
	h.log.Info("user deleted", zap.Uint("user_id", id), zap.Uint("actor_id", session.UserID))
	response.OK(c, gin.H{"message": "User deleted successfully"})
}

// RecordCounts handles GET /api/users/counts?id=N.
func (h *UserHandler) RecordCounts(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	counts, err := h.uc.RecordCounts(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, toAppErr(err, "failed to count records"))
		return
	}
	response.OK(c, gin.H{"counts": counts})
}

// queryID parses ?id= and writes a 400 when it is not a positive number.
func queryID(c *gin.Context) (uint, bool) {
	raw := c.Query("id")
	if raw == "" {
		response.Fail(c, apperr.Validation(usecase.ErrInvalidUserID.Error()))
		return 0, false
	}
	n, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || n == 0 {
		response.Fail(c, apperr.Validation("invalid user id"))
		return 0, false
	}
	return uint(n), true
}

func toAppErr(err error, op string) error {
	switch {
	case errors.Is(err, usecase.ErrSelfDeletion):
		return apperr.Validation("Cannot delete your own account")
	case errors.Is(err, usecase.ErrNameEmailRequired), errors.Is(err, usecase.ErrInvalidUserID):
		return apperr.Validation(err.Error())
	case errors.Is(err, authusecase.ErrUserNotFound):
		return apperr.NotFound("User not found")
	case errors.Is(err, authusecase.ErrEmailAlreadyExists):
		return apperr.Conflict("Email already in use by another user")
	default:
		return apperr.Internal(op, err)
	}
}
