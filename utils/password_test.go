package utils

import (
	"testing"

	"learninglife/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	config.LoadConfig()

	hashed, err := HashPassword("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, "pw1", hashed)
	assert.NotContains(t, hashed, "pw1")
}

func TestCheckPasswordRoundTrip(t *testing.T) {
	config.LoadConfig()

	hashed, err := HashPassword("pw1")
	require.NoError(t, err)

	assert.True(t, CheckPassword("pw1", hashed))
	assert.False(t, CheckPassword("pw2", hashed))
	assert.False(t, CheckPassword("", hashed))
}

func TestHashPasswordSaltsEachHash(t *testing.T) {
	config.LoadConfig()

	first, err := HashPassword("pw1")
	require.NoError(t, err)
	second, err := HashPassword("pw1")
	require.NoError(t, err)

	// Different salts, both still verify
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("pw1", first))
	assert.True(t, CheckPassword("pw1", second))
}
