package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("whiterabbit1")
	require.NoError(t, err)
	assert.NotEqual(t, "whiterabbit1", hash)

	assert.True(t, CheckPassword(hash, "whiterabbit1"))
	assert.False(t, CheckPassword(hash, "bluepill"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestPasswordHashIsSalted(t *testing.T) {
	a, err := HashPassword("same-password")
	require.NoError(t, err)
	b, err := HashPassword("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.True(t, CheckPassword(a, "same-password"))
	assert.True(t, CheckPassword(b, "same-password"))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "anything"))
	assert.False(t, CheckPassword("", "anything"))
}
