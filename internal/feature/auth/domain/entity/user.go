// Package entity defines the domain entities for the auth feature.
package entity

import (
	"strings"
	"time"
)

// Role is the account class of a user. It decides which endpoints the user may call.
type Role string

const (
	// RoleStudent consumes meals and reviews bills.
	RoleStudent Role = "STUDENT"
	// RoleMessContractor logs meals served at the mess.
	RoleMessContractor Role = "MESS_CONTRACTOR"
	// RoleCanteenContractor logs meals served at the canteen.
	RoleCanteenContractor Role = "CANTEEN_CONTRACTOR"
)

// Roles lists every valid role.
var Roles = []Role{RoleStudent, RoleMessContractor, RoleCanteenContractor}

// ParseRole parses s case-insensitively. It reports false for unknown roles.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// IsContractor reports whether r is one of the contractor roles.
func (r Role) IsContractor() bool {
	return r == RoleMessContractor || r == RoleCanteenContractor
}

// String returns the role name as stored.
func (r Role) String() string { return string(r) }

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is used to log in and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password, never the plaintext.
	Password string `gorm:"size:255;not null" json:"-"`

	// Name is the display name shown on records and bills.
	Name string `gorm:"size:255;not null"`

	// Role is the account class.
	Role Role `gorm:"size:50;not null;index"`

	// CreatedAt is the timestamp when the user registered.
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}

// RecordCounts summarizes how many meal records reference a user.
type RecordCounts struct {
	StudentRecords    int64 `json:"studentRecords"`
	ContractorRecords int64 `json:"contractorRecords"`
	TotalRecords      int64 `json:"totalRecords"`
}
