package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The constructor's result must satisfy the interface handlers consume.
var _ PasswordVerifier = NewBcryptVerifier()

func TestHashAndCompareRoundTrip(t *testing.T) {
	hash, err := HashPassword("TestPass123!")
	require.NoError(t, err)
	assert.NotEqual(t, "TestPass123!", hash)

	var verifier PasswordVerifier = NewBcryptVerifier()
	assert.NoError(t, verifier.Compare(hash, "TestPass123!"))
}

func TestCompareRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("TestPass123!")
	require.NoError(t, err)

	verifier := NewBcryptVerifier()
	assert.Error(t, verifier.Compare(hash, "WrongPass456!"))
	assert.Error(t, verifier.Compare("not-a-bcrypt-hash", "TestPass123!"))
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("TestPass123!")
	require.NoError(t, err)
	second, err := HashPassword("TestPass123!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
