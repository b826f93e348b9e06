// Package profile stores CoudPouss user profiles in Firestore.
package profile

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("profile not found")
	ErrInvalidRole = errors.New("invalid role")
)

// Profile is the users/{uid} document.
type Profile struct {
	ID               string
	Role             string
	Name             string
	Email            string
	PhoneCountryCode string
	Mobile           string
	Address          string
	Bio              string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UpsertParams creates or merges a profile. Empty fields leave the stored
// value unchanged.
type UpsertParams struct {
	Role    string
	Name    string
	Email   string
	Mobile  string // raw input, parsed into country code and national number
	Address string
	Bio     string
}

// UpdateParams patches an existing profile. Nil fields are left unchanged;
// an empty Mobile, Address or Bio clears the stored value.
type UpdateParams struct {
	Name    *string
	Email   *string
	Mobile  *string
	Address *string
	Bio     *string
}

// Service defines profile operations.
//
// Implementations normalize input the same way: email is trimmed and
// lowercased, mobile numbers are split into country code and national
// number, and invalid values fail with a *validate.Error.
type Service interface {
	Upsert(ctx context.Context, userID string, params UpsertParams) (*Profile, error)
	Get(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error)
	Delete(ctx context.Context, userID string) error
}
