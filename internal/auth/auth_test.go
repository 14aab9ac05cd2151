package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightpulse/service-analytics/internal/domain/dashboard"
	"github.com/insightpulse/service-analytics/internal/models"
)

func newTestUsers(t *testing.T) *UserStore {
	t.Helper()
	users, err := NewUserStore("", "")
	require.NoError(t, err)
	return users
}

func TestAuthenticate(t *testing.T) {
	users := newTestUsers(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"admin default password", "admin", DefaultAdminPassword, false},
		{"demo default password", "demo", DefaultDemoPassword, false},
		{"wrong password", "admin", "letmein", true},
		{"unknown user", "root", "admin123", true},
		{"case sensitive username", "Admin", "admin123", true},
		{"empty password", "admin", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := users.Authenticate(tt.username, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, dashboard.ErrUnauthorized)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.username, user.Username)
			assert.NotEmpty(t, user.Email)
		})
	}
}

func TestAuthenticateCustomPasswords(t *testing.T) {
	users, err := NewUserStore("s3cret", "other")
	require.NoError(t, err)

	_, err = users.Authenticate("admin", "s3cret")
	assert.NoError(t, err)

	_, err = users.Authenticate("admin", DefaultAdminPassword)
	assert.ErrorIs(t, err, dashboard.ErrUnauthorized)
}

func TestGenerateAndValidate(t *testing.T) {
	users := newTestUsers(t)
	manager := NewJWTManager("test-secret", time.Hour, users)

	user, err := users.Authenticate("admin", DefaultAdminPassword)
	require.NoError(t, err)

	token, err := manager.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)
	assert.Equal(t, "admin@example.com", got.Email)
}

func TestValidateExpiredToken(t *testing.T) {
	users := newTestUsers(t)
	manager := NewJWTManager("test-secret", time.Hour, users)

	now := time.Now().Add(-2 * time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = manager.Validate(expired)
	assert.ErrorIs(t, err, dashboard.ErrUnauthorized)
}

func TestValidateWrongSecret(t *testing.T) {
	users := newTestUsers(t)
	issuer := NewJWTManager("secret-a", time.Hour, users)
	verifier := NewJWTManager("secret-b", time.Hour, users)

	token, err := issuer.Generate(&models.User{Username: "admin"})
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, dashboard.ErrUnauthorized)
}

func TestValidateMalformedToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, newTestUsers(t))

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := manager.Validate(token)
		assert.ErrorIs(t, err, dashboard.ErrUnauthorized)
	}
}

func TestValidateUnknownSubject(t *testing.T) {
	users := newTestUsers(t)
	manager := NewJWTManager("test-secret", time.Hour, users)

	token, err := manager.Generate(&models.User{Username: "ghost"})
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, dashboard.ErrUnauthorized)
}

func TestDefaultTTLApplied(t *testing.T) {
	manager := NewJWTManager("test-secret", 0, newTestUsers(t))
	assert.Equal(t, DefaultTokenTTL, manager.ttl)
}
