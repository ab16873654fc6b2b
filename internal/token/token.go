// Package token issues and verifies the bearer tokens that protect the API.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalid = errors.New("invalid or expired token")
)

// Claims is the token payload: the subject user id plus the registered set.
type Claims struct {
	UserID int64 `json:"id_usuario"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager builds a Manager. ttl is the default token lifetime used by
// Issue; IssueWithTTL overrides it per call.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for userID with the manager's default lifetime.
func (m *Manager) Issue(userID int64) (string, error) {
	return m.IssueWithTTL(userID, m.ttl)
}

// IssueWithTTL signs a token for userID expiring after ttl.
func (m *Manager) IssueWithTTL(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Verify parses and validates a signed token, returning its claims.
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalid
	}
	if claims.UserID == 0 {
		return nil, ErrInvalid
	}
	return claims, nil
}
