package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTokenParser_Parse(t *testing.T) {
	parser := NewTokenParser(testSecret)

	t.Run("valid token", func(t *testing.T) {
		raw := signToken(t, testSecret, jwt.MapClaims{"email": "rider@example.com", "role": "user"})
		claims, err := parser.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "rider@example.com", claims.UserID)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("user id claim preferred over email", func(t *testing.T) {
		raw := signToken(t, testSecret, jwt.MapClaims{"userId": "u-1", "email": "rider@example.com"})
		claims, err := parser.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
	})

	t.Run("expired token still accepted", func(t *testing.T) {
		raw := signToken(t, testSecret, jwt.MapClaims{
			"email": "rider@example.com",
			"exp":   time.Now().Add(-time.Hour).Unix(),
		})
		_, err := parser.Parse(raw)
		assert.NoError(t, err)
	})

	t.Run("wrong signature", func(t *testing.T) {
		raw := signToken(t, "another-secret", jwt.MapClaims{"email": "rider@example.com"})
		_, err := parser.Parse(raw)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := parser.Parse("")
		assert.True(t, errors.Is(err, ErrMissingToken))
	})

	t.Run("no identifier", func(t *testing.T) {
		raw := signToken(t, testSecret, jwt.MapClaims{"role": "user"})
		_, err := parser.Parse(raw)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("empty secret rejects every token", func(t *testing.T) {
		raw := signToken(t, "attacker-chosen-key", jwt.MapClaims{"userId": "victim"})
		claims, err := NewTokenParser("").Parse(raw)
		assert.Nil(t, claims)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("explicit unverified mode", func(t *testing.T) {
		raw := signToken(t, "whatever", jwt.MapClaims{"sub": "u-2"})
		claims, err := NewUnverifiedTokenParser().Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "u-2", claims.UserID)
	})
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer  abc "))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken(""))
}

func TestCredentials(t *testing.T) {
	creds := NewCredentials("u-1", "user", "old", "refresh")
	_, refreshed := creds.RefreshedToken()
	assert.False(t, refreshed)

	creds.SetAccessToken("new")
	token, refreshed := creds.RefreshedToken()
	assert.True(t, refreshed)
	assert.Equal(t, "new", token)
	assert.Equal(t, "new", creds.AccessToken())

	ctx := WithCredentials(context.Background(), creds)
	userID, ok := UserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u-1", userID)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}
