package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any malformed, tampered or
// expired token.
var ErrInvalidToken = errors.New("invalid token")

// ErrNoSecret is returned by Issue when the manager was constructed without
// a signing secret.
var ErrNoSecret = errors.New("jwt signing secret is not configured")

// JWTManager issues and verifies stateless HS256 bearer tokens. Validity is
// signature plus expiry only; there is no server-side revocation.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{Secret: []byte(secret), TTL: ttl}
}

// UserClaim carries the authenticated user identity inside the token.
type UserClaim struct {
	ID string `json:"id"`
}

type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// Issue builds a signed token embedding the user id, expiring TTL after
// issuance.
func (m *JWTManager) Issue(userID string) (string, error) {
	if len(m.Secret) == 0 {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := &Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.Secret)
}

// Verify checks signature and expiry and returns the embedded claims.
func (m *JWTManager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
