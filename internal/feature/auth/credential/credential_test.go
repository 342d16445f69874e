package credential

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStore_HashAndVerify(t *testing.T) {
	t.Parallel()

	s := NewStore(bcrypt.MinCost)

	h1, err := s.Hash("password123")
	require.NoError(t, err)
	h2, err := s.Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", h1, "hash must not be the plaintext")
	assert.NotEqual(t, h1, h2, "salt should make hashes differ")
	assert.True(t, s.Verify("password123", h1))
	assert.True(t, s.Verify("password123", h2))
	assert.False(t, s.Verify("password124", h1))
}

func TestStore_VerifyFailsClosed(t *testing.T) {
	t.Parallel()

	s := NewStore(bcrypt.MinCost)

	assert.False(t, s.Verify("password123", ""))
	assert.False(t, s.Verify("password123", "not-a-bcrypt-hash"))
	assert.False(t, s.VerifyDummy("password123"))
}

func TestStore_HashTooLong(t *testing.T) {
	t.Parallel()

	s := NewStore(bcrypt.MinCost)
	_, err := s.Hash(strings.Repeat("x", 100))
	assert.Error(t, err, "bcrypt rejects passwords over 72 bytes")
}

func TestNewStore_ClampsCost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewStore(0).cost)
	assert.Equal(t, bcrypt.MaxCost, NewStore(99).cost)
	assert.Equal(t, 12, NewStore(12).cost)
}
