// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"mealscan_backend/internal/feature/auth/domain/entity"
	"mealscan_backend/internal/feature/auth/usecase"
)

// userGorm is the GORM implementation of the user repositories.
// It works on both SQLite and PostgreSQL.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a userGorm bound to db.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts the user. It returns usecase.ErrEmailAlreadyExists on a duplicate email.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail returns usecase.ErrUserNotFound when no user has the email.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID returns usecase.ErrUserNotFound when no user has the id.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userGorm) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByRole returns users with the role ordered by name.
func (r *userGorm) ListByRole(ctx context.Context, role entity.Role) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("name ASC").Order("id ASC").
		Find(&users).Error
	return users, err
}

// ListAll returns every user ordered by role then name.
func (r *userGorm) ListAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).Order("role ASC").Order("name ASC").Find(&users).Error
	return users, err
}

// Search returns users with the role whose name or email contains term, case-insensitively.
func (r *userGorm) Search(ctx context.Context, role entity.Role, term string) ([]entity.User, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(term))) + "%"
	var users []entity.User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(email) LIKE ? ESCAPE '\\')", pattern, pattern).
		Order("name ASC").Order("id ASC").
		Find(&users).Error
	return users, err
}

// escapeLike escapes LIKE wildcards so term matches literally.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

// CountByRole returns the number of users per role. Roles without users are reported as zero.
func (r *userGorm) CountByRole(ctx context.Context) (map[entity.Role]int64, error) {
	var rows []struct {
		Role  entity.Role
		Count int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[entity.Role]int64, len(entity.Roles))
	for _, role := range entity.Roles {
		counts[role] = 0
	}
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}

// Update changes name and email. It returns usecase.ErrEmailAlreadyExists when the
// email belongs to a different user and usecase.ErrUserNotFound when id is unknown.
func (r *userGorm) Update(ctx context.Context, id uint, name, email string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner entity.User
		err := tx.Select("id").Where("email = ?", email).First(&owner).Error
		switch {
		case err == nil && owner.ID != id:
			return usecase.ErrEmailAlreadyExists
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		res := tx.Model(&entity.User{}).
			Where("id = ?", id).
			Updates(map[string]any{"name": name, "email": email})
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return usecase.ErrEmailAlreadyExists
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrUserNotFound
		}
		return nil
	})
}

func (r *userGorm) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.updateColumn(ctx, id, "password", hash)
}

func (r *userGorm) UpdateRole(ctx context.Context, id uint, role entity.Role) error {
	return r.updateColumn(ctx, id, "role", role)
}

func (r *userGorm) updateColumn(ctx context.Context, id uint, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// Delete removes the user row with a single statement. Records referencing the user
// go with it through the ON DELETE CASCADE foreign keys.
func (r *userGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// DeleteCascade removes every record the user consumed or authored, then the user,
// in one transaction. Any failure rolls both deletions back.
func (r *userGorm) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM records WHERE student_id = ? OR contractor_id = ?", id, id).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrUserNotFound
		}
		return nil
	})
}

// HasRecords reports whether any record references the user.
func (r *userGorm) HasRecords(ctx context.Context, id uint) (bool, error) {
	counts, err := r.RecordCounts(ctx, id)
	if err != nil {
		return false, err
	}
	return counts.TotalRecords > 0, nil
}

// RecordCounts counts the records where the user is the student and where they are the contractor.
func (r *userGorm) RecordCounts(ctx context.Context, id uint) (entity.RecordCounts, error) {
	var counts entity.RecordCounts
	db := r.db.WithContext(ctx)
	if err := db.Table("records").Where("student_id = ?", id).Count(&counts.StudentRecords).Error; err != nil {
		return entity.RecordCounts{}, err
	}
	if err := db.Table("records").Where("contractor_id = ?", id).Count(&counts.ContractorRecords).Error; err != nil {
		return entity.RecordCounts{}, err
	}
	counts.TotalRecords = counts.StudentRecords + counts.ContractorRecords
	return counts, nil
}
