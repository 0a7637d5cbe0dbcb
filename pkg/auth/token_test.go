package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	t.Run("Issued token parses back to the principal", func(t *testing.T) {
		svc := NewTokenService("secret", "ergasia", time.Hour)

		token, expiresAt, err := svc.Issue("principal-1")
		require.NoError(t, err)
		assert.True(t, expiresAt.After(time.Now()))

		sub, err := svc.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "principal-1", sub)
	})

	t.Run("Token signed with another secret is rejected", func(t *testing.T) {
		token, _, err := NewTokenService("other", "ergasia", time.Hour).Issue("principal-1")
		require.NoError(t, err)

		_, err = NewTokenService("secret", "ergasia", time.Hour).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		svc := NewTokenService("secret", "ergasia", time.Minute)
		svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, _, err := svc.Issue("principal-1")
		require.NoError(t, err)

		svc.now = time.Now
		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Issue fails without a secret", func(t *testing.T) {
		_, _, err := NewTokenService("", "ergasia", time.Hour).Issue("principal-1")
		assert.Error(t, err)
	})
}
