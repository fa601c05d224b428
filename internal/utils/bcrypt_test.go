package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("p1")
	require.NoError(t, err)
	second, err := HashPassword("p1")
	require.NoError(t, err)

	assert.NotEqual(t, "p1", first)
	assert.NotEqual(t, first, second)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("p1")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("p1", hash))
	assert.False(t, CheckPasswordHash("p2", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("p1", "not-a-bcrypt-hash"))
}
