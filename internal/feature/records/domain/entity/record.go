// Package entity defines the domain entities for meal records.
package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	authentity "mealscan_backend/internal/feature/auth/domain/entity"
)

// DateLayout is the ISO calendar date format used for record dates.
const DateLayout = "2006-01-02"

// RecordType is the venue a meal was served at.
type RecordType string

const (
	RecordTypeMess    RecordType = "MESS"
	RecordTypeCanteen RecordType = "CANTEEN"
)

// ParseRecordType parses s case-insensitively.
func ParseRecordType(s string) (RecordType, bool) {
	switch t := RecordType(strings.ToUpper(strings.TrimSpace(s))); t {
	case RecordTypeMess, RecordTypeCanteen:
		return t, true
	}
	return "", false
}

// RecordTypeForRole returns the venue a contractor role logs meals for.
func RecordTypeForRole(role authentity.Role) (RecordType, bool) {
	switch role {
	case authentity.RoleMessContractor:
		return RecordTypeMess, true
	case authentity.RoleCanteenContractor:
		return RecordTypeCanteen, true
	}
	return "", false
}

// Record is one meal served to a student by a contractor. Records are never updated in place.
type Record struct {
	ID           uint
	StudentID    uint
	ContractorID uint
	Type         RecordType
	MealType     string
	Items        string
	Cost         decimal.Decimal
	RecordDate   time.Time // calendar date at midnight UTC
	CreatedAt    time.Time
}

// RecordView is a Record joined with the current names of its student and contractor.
type RecordView struct {
	Record
	StudentName    string
	ContractorName string
}

// Date truncates t to its calendar date at midnight UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
