// Package auth covers password hashing and the signed identity token. The
// signing secret and token lifetime are injected at construction, never read
// from the environment here.
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CookieName is the cookie carrying the token when no Authorization header
// is present.
const CookieName = "token"

// bcrypt cost 12 lands around 100ms per hash on current hardware.
const bcryptCost = 12

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

func (s *Service) TTL() time.Duration { return s.ttl }

func (s *Service) IssueToken(userID int) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken returns the embedded user id, or ErrInvalidToken on signature
// mismatch, malformed payload, wrong algorithm, or expiry.
func (s *Service) VerifyToken(tokenStr string) (int, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

// TokenFromRequest prefers an Authorization: Bearer header and falls back to
// the token cookie.
func TokenFromRequest(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if tok := strings.TrimPrefix(authHeader, "Bearer "); tok != authHeader && tok != "" {
		return tok, true
	}
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, true
	}
	return "", false
}
