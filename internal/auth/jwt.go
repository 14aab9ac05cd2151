package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/insightpulse/service-analytics/internal/domain/dashboard"
	"github.com/insightpulse/service-analytics/internal/models"
)

// DefaultTokenTTL is the fixed token lifetime. Tokens are stateless; there is
// no revocation list, they simply expire.
const DefaultTokenTTL = 24 * time.Hour

// JWTManager issues and validates HS256 bearer tokens carrying the username
// as subject.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	users  *UserStore
}

// NewJWTManager creates a manager with the shared signing secret. A zero ttl
// uses DefaultTokenTTL.
func NewJWTManager(secret string, ttl time.Duration, users *UserStore) *JWTManager {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl, users: users}
}

// Generate issues a signed token for the user.
func (m *JWTManager) Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and expiry, then re-resolves the subject
// against the account table. Malformed, expired, mis-signed tokens and
// unknown subjects all fail with ErrUnauthorized.
func (m *JWTManager) Validate(tokenString string) (*models.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dashboard.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", dashboard.ErrUnauthorized)
	}
	user, ok := m.users.Lookup(claims.Subject)
	if !ok {
		return nil, fmt.Errorf("%w: subject %q no longer resolves", dashboard.ErrUnauthorized, claims.Subject)
	}
	return user, nil
}
