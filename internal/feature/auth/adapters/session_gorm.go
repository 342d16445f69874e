package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"mealscan_backend/internal/feature/auth/domain/entity"
	"mealscan_backend/internal/feature/auth/usecase"
)

// sessionGorm stores sessions in the SQL database. It is used when Redis is disabled.
type sessionGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure sessionGorm implements SessionRepository.
var _ usecase.SessionRepository = (*sessionGorm)(nil)

// NewSessionGorm creates a sessionGorm bound to db.
func NewSessionGorm(db *gorm.DB) *sessionGorm {
	return &sessionGorm{db: db}
}

// Create persists a new session to the database.
func (r *sessionGorm) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(SessionModelFromEntity(session)).Error
}

// FindByID retrieves a session by its token.
func (r *sessionGorm) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var model SessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// Touch moves the idle deadline of the session.
func (r *sessionGorm) Touch(ctx context.Context, id string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("id = ?", id).
		Update("expires_at", expiresAt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

// Delete removes the session. Unknown tokens are ignored.
func (r *sessionGorm) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&SessionModel{}).Error
}

// DeleteByUserID removes all sessions of a user except keep.
func (r *sessionGorm) DeleteByUserID(ctx context.Context, userID uint, keep string) error {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if keep != "" {
		q = q.Where("id <> ?", keep)
	}
	return q.Delete(&SessionModel{}).Error
}

// DeleteExpired removes all sessions whose deadline is not after now.
func (r *sessionGorm) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&SessionModel{})
	return res.RowsAffected, res.Error
}
