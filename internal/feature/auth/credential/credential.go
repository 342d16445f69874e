// Package credential hashes and verifies passwords with bcrypt.
package credential

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when no user exists for an email, so a failed
// login costs the same bcrypt work whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Store hashes passwords with a fixed bcrypt cost.
type Store struct {
	cost int
}

// NewStore returns a Store using cost, clamped to bcrypt's valid range.
func NewStore(cost int) *Store {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Store{cost: cost}
}

// Hash returns a salted bcrypt hash of password.
func (s *Store) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash. Any failure, including a
// malformed hash, yields false.
func (s *Store) Verify(password, hash string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// VerifyDummy performs a comparison against a fixed hash and always reports false.
func (s *Store) VerifyDummy(password string) bool {
	_ = s.Verify(password, dummyHash)
	return false
}
