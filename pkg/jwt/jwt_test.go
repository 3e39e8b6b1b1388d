package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRoundTrip(t *testing.T) {
	m := NewManager("test-signing-key", "routeview", time.Hour)

	token, err := m.Generate(42)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.NotEmpty(t, claims.ID)
	assert.Greater(t, claims.TTL(), 55*time.Minute)
}

func TestManagerRejectsWrongKey(t *testing.T) {
	m := NewManager("key-one", "routeview", time.Hour)
	other := NewManager("key-two", "routeview", time.Hour)

	token, err := m.Generate(1)
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestManagerRejectsWrongIssuer(t *testing.T) {
	m := NewManager("shared-key", "someone-else", time.Hour)
	validator := NewManager("shared-key", "routeview", time.Hour)

	token, err := m.Generate(1)
	require.NoError(t, err)

	_, err = validator.Validate(token)
	assert.Error(t, err)
}

func TestManagerRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-signing-key", "routeview", -time.Minute)

	token, err := m.Generate(1)
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestManagerRejectsGarbage(t *testing.T) {
	m := NewManager("test-signing-key", "routeview", time.Hour)
	_, err := m.Validate("not.a.token")
	assert.Error(t, err)
}
