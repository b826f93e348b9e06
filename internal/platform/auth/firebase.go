// Package auth verifies Firebase ID tokens and exposes the caller to
// handlers through the request context.
package auth

import (
	"context"
	"errors"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// Role is the CoudPouss user type stored in the "role" custom claim.
type Role string

// Known roles.
const (
	RoleConsumer     Role = "consumer"
	RoleProfessional Role = "professional"
)

// RoleClaim is the custom claim key carrying the Role.
const RoleClaim = "role"

// ParseRole maps a claim value to a Role, defaulting to RoleConsumer.
func ParseRole(v any) Role {
	if s, ok := v.(string); ok && Role(s) == RoleProfessional {
		return RoleProfessional
	}
	return RoleConsumer
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleConsumer || r == RoleProfessional
}

// User is the authenticated caller.
type User struct {
	UID           string
	Email         string
	EmailVerified bool
	Role          Role
}

// IsProfessional reports whether the caller signed up as a service provider.
func (u *User) IsProfessional() bool {
	return u != nil && u.Role == RoleProfessional
}

var (
	ErrNoToken      = errors.New("missing authorization header")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
	ErrUserDisabled = errors.New("user disabled")
	// ErrCertificateFetch means the public keys could not be fetched; callers
	// should answer 503 rather than 401.
	ErrCertificateFetch = errors.New("failed to fetch certificates")
)

// Verifier validates an ID token and returns the caller.
type Verifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}

// FirebaseVerifier implements Verifier with the Firebase Admin SDK.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier returns a verifier backed by client.
func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

// Verify checks signature, expiry and revocation of idToken.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*User, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, mapVerifyError(err)
	}
	return userFromClaims(token.UID, token.Claims), nil
}

func mapVerifyError(err error) error {
	switch {
	case fbauth.IsCertificateFetchFailed(err):
		return ErrCertificateFetch
	case fbauth.IsIDTokenExpired(err):
		return ErrTokenExpired
	case fbauth.IsIDTokenRevoked(err):
		return ErrTokenRevoked
	case fbauth.IsUserDisabled(err):
		return ErrUserDisabled
	default:
		return ErrInvalidToken
	}
}

func userFromClaims(uid string, claims map[string]any) *User {
	email, _ := claims["email"].(string)
	verified, _ := claims["email_verified"].(bool)
	return &User{
		UID:           uid,
		Email:         email,
		EmailVerified: verified,
		Role:          ParseRole(claims[RoleClaim]),
	}
}

// ExtractBearerToken returns the token of an "Authorization: Bearer" header.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

var _ Verifier = (*FirebaseVerifier)(nil)
