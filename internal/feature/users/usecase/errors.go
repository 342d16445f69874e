// Package usecase implements the contractor-facing user directory.
package usecase

import "errors"

var (
	// ErrSelfDeletion is returned when a user tries to delete their own account.
	ErrSelfDeletion = errors.New("cannot delete your own account")

	// ErrNameEmailRequired is returned when an update leaves name or email blank.
	ErrNameEmailRequired = errors.New("name and email are required")

	// ErrInvalidUserID is returned when no user id is given.
	ErrInvalidUserID = errors.New("user id is required")
)
