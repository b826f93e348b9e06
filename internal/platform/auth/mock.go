package auth

import "context"

// MockVerifier returns a fixed user or error, for tests.
type MockVerifier struct {
	User  *User
	Error error
	// Users, when set, maps tokens to users so tests can act as several callers.
	Users map[string]*User
}

// Verify implements Verifier.
func (m *MockVerifier) Verify(_ context.Context, token string) (*User, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	if m.Users != nil {
		if u, ok := m.Users[token]; ok {
			return u, nil
		}
		return nil, ErrInvalidToken
	}
	return m.User, nil
}

// TestUser returns a verified consumer.
func TestUser() *User {
	return &User{
		UID:           "test-user-123",
		Email:         "test@example.com",
		EmailVerified: true,
		Role:          RoleConsumer,
	}
}

var _ Verifier = (*MockVerifier)(nil)
