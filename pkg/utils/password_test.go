package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	passwords := []string{"pw1", "gumbledore", "", "with spaces and ünïcode"}

	for _, password := range passwords {
		t.Run(password, func(t *testing.T) {
			first, err := HashPassword(password)
			require.NoError(t, err)
			second, err := HashPassword(password)
			require.NoError(t, err)

			assert.NotEqual(t, password, first)
			assert.NotEqual(t, first, second, "each hash must use a fresh salt")
			assert.True(t, CheckPassword(first, password))
			assert.True(t, CheckPassword(second, password))
		})
	}
}

func TestCheckPasswordRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("pw1")
	require.NoError(t, err)

	assert.False(t, CheckPassword(hash, "pw2"))
	assert.False(t, CheckPassword(hash, ""))
	assert.False(t, CheckPassword("not-a-hash", "pw1"))
}

func TestHashPasswordTooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 100))
	assert.Error(t, err)
}
