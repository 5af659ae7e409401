package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("correct-password")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-password", hash)

	assert.NoError(t, hasher.Compare(hash, "correct-password"))
	assert.ErrorIs(t, hasher.Compare(hash, "wrong-password"), ErrPasswordMismatch)
	assert.ErrorIs(t, hasher.Compare(hash, ""), ErrPasswordMismatch)
}

func TestHashRejectsShortPassword(t *testing.T) {
	hasher := NewBcryptHasher(4)

	_, err := hasher.Hash("short")
	assert.Error(t, err)
}

func TestHashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher(4)

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, hasher.Compare(first, "same-password"))
	assert.NoError(t, hasher.Compare(second, "same-password"))
}

func TestInvalidCostFallsBackToDefault(t *testing.T) {
	hasher := NewBcryptHasher(99)

	hash, err := hasher.Hash("correct-password")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "correct-password"))
}
