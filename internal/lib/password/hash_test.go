package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	for _, pw := range []string{"admin123", "p@ssw0rd!@#$%^&*()", ""} {
		hash, err := Hash(pw, bcrypt.MinCost)
		require.NoError(t, err)
		assert.NotEqual(t, pw, hash)

		assert.NoError(t, Compare(hash, pw))
		assert.ErrorIs(t, Compare(hash, pw+"x"), ErrMismatch)
	}
}

func TestHash_CostFallback(t *testing.T) {
	hash, err := Hash("admin123", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestCompare_InvalidHash(t *testing.T) {
	err := Compare("not-a-hash", "admin123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}

func TestHash_TooLong(t *testing.T) {
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	_, err := Hash(string(long), bcrypt.MinCost)
	assert.Error(t, err)
}
