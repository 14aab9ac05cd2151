// Package auth implements credential verification and bearer token issuance
// for the dashboard API.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/insightpulse/service-analytics/internal/domain/dashboard"
	"github.com/insightpulse/service-analytics/internal/models"
)

// Default demo credentials, overridable through configuration.
const (
	DefaultAdminPassword = "admin123"
	DefaultDemoPassword  = "demo123"
)

type account struct {
	user         models.User
	passwordHash []byte
}

// UserStore is the fixed, process-wide account table. Two accounts exist:
// admin and demo. Hashes are computed once at construction.
type UserStore struct {
	accounts map[string]account
}

// NewUserStore builds the account table. Empty passwords fall back to the
// defaults.
func NewUserStore(adminPassword, demoPassword string) (*UserStore, error) {
	if adminPassword == "" {
		adminPassword = DefaultAdminPassword
	}
	if demoPassword == "" {
		demoPassword = DefaultDemoPassword
	}

	s := &UserStore{accounts: make(map[string]account, 2)}
	entries := []struct {
		user     models.User
		password string
	}{
		{models.User{Username: "admin", Email: "admin@example.com", FullName: "Admin User"}, adminPassword},
		{models.User{Username: "demo", Email: "demo@example.com", FullName: "Demo User"}, demoPassword},
	}
	for _, e := range entries {
		hash, err := bcrypt.GenerateFromPassword([]byte(e.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", e.user.Username, err)
		}
		s.accounts[e.user.Username] = account{user: e.user, passwordHash: hash}
	}
	return s, nil
}

// Authenticate verifies a username/password pair. Lookup is a case-sensitive
// exact match; unknown user and wrong password both fail with ErrUnauthorized.
func (s *UserStore) Authenticate(username, password string) (*models.User, error) {
	acct, ok := s.accounts[username]
	if !ok {
		return nil, fmt.Errorf("%w: unknown user", dashboard.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid password", dashboard.ErrUnauthorized)
	}
	user := acct.user
	return &user, nil
}

// Lookup resolves a username without checking credentials. Used when
// re-resolving a token subject.
func (s *UserStore) Lookup(username string) (*models.User, bool) {
	acct, ok := s.accounts[username]
	if !ok {
		return nil, false
	}
	user := acct.user
	return &user, true
}
