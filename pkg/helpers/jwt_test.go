package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTGenerateAndParse(t *testing.T) {
	m := NewJWTManager("test-secret", 30*time.Minute)

	token, exp, err := m.Generate(42, "neo@cyber.com", true)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "neo@cyber.com", claims.Subject)
	assert.True(t, claims.IsAdmin)
}

func TestJWTParseExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, _, err := m.Generate(1, "a@cyber.com", false)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestJWTParseWrongKey(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute)
	other := NewJWTManager("different-secret", time.Minute)

	token, _, err := m.Generate(1, "a@cyber.com", false)
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestJWTParseGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute)
	_, err := m.Parse("not.a.token")
	assert.Error(t, err)
}

func TestJWTGenerateWithoutSecret(t *testing.T) {
	m := NewJWTManager("", time.Minute)
	_, _, err := m.Generate(1, "a@cyber.com", false)
	assert.Error(t, err)
}
