package usecase

import (
	"context"
	"fmt"
	"strings"

	"mealscan_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the user queries the directory needs.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	ListByRole(ctx context.Context, role entity.Role) ([]entity.User, error)
	Search(ctx context.Context, role entity.Role, term string) ([]entity.User, error)

	// Update returns ErrEmailAlreadyExists or ErrUserNotFound from the auth usecase.
	Update(ctx context.Context, id uint, name, email string) error

	// Delete removes the user row; referencing records go with it through the schema.
	Delete(ctx context.Context, id uint) error
	// DeleteCascade removes the user and every record referencing it atomically.
	DeleteCascade(ctx context.Context, id uint) error
	HasRecords(ctx context.Context, id uint) (bool, error)

	RecordCounts(ctx context.Context, id uint) (entity.RecordCounts, error)
}

// SessionRevoker closes all sessions of a user.
type SessionRevoker interface {
	RevokeUserSessions(ctx context.Context, userID uint) error
}

// userUsecase implements the student directory operations.
type userUsecase struct {
	users    UserRepository
	sessions SessionRevoker
}

// NewUserUsecase creates a userUsecase.
func NewUserUsecase(users UserRepository, sessions SessionRevoker) *userUsecase {
	return &userUsecase{users: users, sessions: sessions}
}

// ListStudents returns all students ordered by name, or only those whose name or
// email contains query when it is not blank.
func (u *userUsecase) ListStudents(ctx context.Context, query string) ([]entity.User, error) {
	if q := strings.TrimSpace(query); q != "" {
		return u.users.Search(ctx, entity.RoleStudent, q)
	}
	return u.users.ListByRole(ctx, entity.RoleStudent)
}

// Update changes a user's name and email.
func (u *userUsecase) Update(ctx context.Context, id uint, name, email string) error {
	if id == 0 {
		return ErrInvalidUserID
	}
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" {
		return ErrNameEmailRequired
	}
	return u.users.Update(ctx, id, name, email)
}

// Delete removes a user with all their records. actorID is the caller; a caller
// can never delete their own account.
func (u *userUsecase) Delete(ctx context.Context, actorID, id uint) error {
	if id == 0 {
		return ErrInvalidUserID
	}
	if id == actorID {
		return ErrSelfDeletion
	}
	if _, err := u.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := u.deleteUser(ctx, id); err != nil {
		return err
	}
	// revoke only after the delete commits
	if err := u.sessions.RevokeUserSessions(ctx, id); err != nil {
		return fmt.Errorf("user deleted, failed to revoke sessions: %w", err)
	}
	return nil
}

// deleteUser skips the cascade transaction for users without records. A record
// written after the check is still removed by the schema's ON DELETE CASCADE.
func (u *userUsecase) deleteUser(ctx context.Context, id uint) error {
	hasRecords, err := u.users.HasRecords(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check records: %w", err)
	}
	if hasRecords {
		return u.users.DeleteCascade(ctx, id)
	}
	return u.users.Delete(ctx, id)
}

// RecordCounts reports how many records reference the user.
func (u *userUsecase) RecordCounts(ctx context.Context, id uint) (entity.RecordCounts, error) {
	if id == 0 {
		return entity.RecordCounts{}, ErrInvalidUserID
	}
	if _, err := u.users.FindByID(ctx, id); err != nil {
		return entity.RecordCounts{}, err
	}
	return u.users.RecordCounts(ctx, id)
}
