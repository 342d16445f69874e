package dto

// ChangePasswordReq is the body of PUT /api/me/password.
type ChangePasswordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
