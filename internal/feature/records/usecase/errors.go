// Package usecase implements meal record and billing business logic.
package usecase

import "errors"

var (
	// ErrRecordNotFound is returned when a record is absent or not owned by the caller.
	ErrRecordNotFound = errors.New("record not found")

	// ErrStudentNotFound is returned when an upload names an unknown student.
	ErrStudentNotFound = errors.New("student not found")

	// ErrNotContractor is returned when a non-contractor tries to log or delete meals.
	ErrNotContractor = errors.New("only contractors can manage records")
)

// Input validation errors. All of them are reported to clients as 400.
var (
	ErrTypeRequired    = errors.New("type parameter required (MESS or CANTEEN)")
	ErrInvalidType     = errors.New("invalid type, must be MESS or CANTEEN")
	ErrMissingFields   = errors.New("all fields are required")
	ErrInvalidCost     = errors.New("cost must be greater than 0")
	ErrCostPrecision   = errors.New("cost must have at most 2 decimal places")
	ErrInvalidDate     = errors.New("recordDate must be an ISO date (YYYY-MM-DD)")
	ErrInvalidPeriod   = errors.New("type, year and month are required")
	ErrInvalidMonth    = errors.New("month must be between 1 and 12")
	ErrInvalidRecordID = errors.New("record id is required")
)

// IsValidationError reports whether err is one of the input validation errors.
func IsValidationError(err error) bool {
	for _, v := range []error{
		ErrTypeRequired, ErrInvalidType, ErrMissingFields, ErrInvalidCost, ErrCostPrecision,
		ErrInvalidDate, ErrInvalidPeriod, ErrInvalidMonth, ErrInvalidRecordID,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
