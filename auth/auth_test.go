package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong password", hash))
}

func TestIssueAndVerifyToken(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	token, err := svc.IssueToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestVerifyTokenExpired(t *testing.T) {
	svc := NewService([]byte("test-secret"), -time.Hour)

	token, err := svc.IssueToken(42)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	issuer := NewService([]byte("old-secret"), time.Hour)
	verifier := NewService([]byte("new-secret"), time.Hour)

	token, err := issuer.IssueToken(42)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenMalformed(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestTokenFromRequest(t *testing.T) {
	t.Run("Bearer header", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/notes", nil)
		req.Header.Set("Authorization", "Bearer abc123")

		token, ok := TokenFromRequest(req)
		require.True(t, ok)
		assert.Equal(t, "abc123", token)
	})

	t.Run("cookie fallback", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/notes", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})

		token, ok := TokenFromRequest(req)
		require.True(t, ok)
		assert.Equal(t, "cookie-token", token)
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/notes", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})

		token, ok := TokenFromRequest(req)
		require.True(t, ok)
		assert.Equal(t, "header-token", token)
	})

	t.Run("absent", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/notes", nil)

		_, ok := TokenFromRequest(req)
		assert.False(t, ok)
	})
}
