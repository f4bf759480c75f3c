package helpers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken returns n random bytes encoded as URL-safe base64.
func GenerateToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// SessionSigner wraps a user's stable session token in an HS256 envelope so
// that a forged or truncated cookie is rejected before any store lookup.
// Sessions do not expire, so no exp claim is set.
type SessionSigner struct {
	Secret []byte
}

func NewSessionSigner(secret string) *SessionSigner {
	return &SessionSigner{Secret: []byte(secret)}
}

type SessionClaims struct {
	Token string `json:"tok"`
	jwt.RegisteredClaims
}

func (s *SessionSigner) Sign(token string) (string, error) {
	claims := &SessionClaims{
		Token: token,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.Secret)
}

// Parse verifies the envelope and returns the session token inside it.
func (s *SessionSigner) Parse(cookie string) (string, error) {
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(cookie, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	})
	if err != nil {
		return "", err
	}
	if !tkn.Valid || claims.Token == "" {
		return "", errors.New("invalid session")
	}
	return claims.Token, nil
}
