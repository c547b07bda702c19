package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
	assert.False(t, CheckPasswordHash("hunter22", "not-a-hash"))
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	first, err := HashPassword("hunter22")
	require.NoError(t, err)
	second, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
