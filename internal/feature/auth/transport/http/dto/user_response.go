package dto

import "mealscan_backend/internal/feature/auth/domain/entity"

// UserRes is the public view of an account. The password hash is never included.
type UserRes struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// NewUserRes converts a user entity for output.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role.String()}
}
