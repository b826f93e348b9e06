// Package account signs users up with Firebase Authentication and resolves
// which account a login form refers to.
package account

import (
	"context"
	"errors"

	"github.com/coudpouss/coudpouss-api/internal/phone"
	"github.com/coudpouss/coudpouss-api/internal/platform/auth"
	"github.com/coudpouss/coudpouss-api/internal/validate"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrPhoneTaken   = errors.New("mobile number already registered")
	ErrUserNotFound = errors.New("user not found")
)

// SignUpParams carries the raw sign-up form plus the chosen role.
type SignUpParams struct {
	Form validate.SignupForm
	Role auth.Role
}

// Account is a created sign-in identity.
type Account struct {
	UID              string
	Email            string
	PhoneCountryCode string
	Mobile           string
	Name             string
	Role             auth.Role
}

// LoginIdentity is the account a login identifier resolved to.
type LoginIdentity struct {
	UID      string
	Disabled bool
	phone.InputData
}

// Service defines account operations. Inputs are checked with the form
// validators before any backend call; rejected forms fail with *validate.Error.
type Service interface {
	SignUp(ctx context.Context, params SignUpParams) (*Account, error)
	PasswordResetLink(ctx context.Context, email string) (string, error)
	ResolveLogin(ctx context.Context, emailOrMobile string) (*LoginIdentity, error)
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return "email_taken"
	case errors.Is(err, ErrPhoneTaken):
		return "phone_taken"
	case errors.Is(err, ErrUserNotFound):
		return "not_found"
	case errors.Is(err, validate.ErrInvalid), errors.Is(err, phone.ErrInvalidContactInput):
		return "invalid_input"
	default:
		return "internal_error"
	}
}
