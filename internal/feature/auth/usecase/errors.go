// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when an email is already registered to another user.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrInvalidCredentials is returned when the email/password pair does not verify.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrCurrentPasswordIncorrect is returned by ChangePassword when the old password does not verify.
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")

	// ErrSessionNotFound is returned when no session exists for a token.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when a session passed its idle deadline.
	ErrSessionExpired = errors.New("session has expired")
)

// Input validation errors. All of them are reported to clients as 400.
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidRole        = errors.New("invalid role, must be STUDENT, MESS_CONTRACTOR, or CANTEEN_CONTRACTOR")
)

// IsValidationError reports whether err is one of the input validation errors.
func IsValidationError(err error) bool {
	for _, v := range []error{ErrMissingCredentials, ErrInvalidEmail, ErrPasswordTooShort, ErrPasswordTooLong, ErrNameRequired, ErrInvalidRole} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
