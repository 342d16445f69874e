// Package dto defines the request and response bodies of the user directory endpoints.
package dto

import "mealscan_backend/internal/feature/auth/domain/entity"

// StudentRes is one entry of the student directory.
type StudentRes struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewStudentResList converts users in order; never nil.
func NewStudentResList(users []entity.User) []StudentRes {
	out := make([]StudentRes, 0, len(users))
	for _, u := range users {
		out = append(out, StudentRes{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return out
}

// UpdateUserReq is the body of PUT /api/users/update.
type UpdateUserReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
