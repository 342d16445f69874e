package usecase

import (
	"context"
	"time"

	"mealscan_backend/internal/feature/auth/domain/entity"
)

// SessionRepository abstracts the storage behind session tokens.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its token. It returns ErrSessionNotFound when absent.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Touch moves the idle deadline of a session to expiresAt.
	Touch(ctx context.Context, id string, expiresAt time.Time) error

	// Delete removes a session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteByUserID removes every session of userID except the one whose token is keep.
	// An empty keep removes all of them.
	DeleteByUserID(ctx context.Context, userID uint, keep string) error

	// DeleteExpired removes sessions whose deadline passed at now and returns how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
