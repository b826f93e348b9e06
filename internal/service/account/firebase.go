package account

import (
	"context"
	"errors"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"github.com/coudpouss/coudpouss-api/internal/phone"
	"github.com/coudpouss/coudpouss-api/internal/platform/auth"
	"github.com/coudpouss/coudpouss-api/internal/platform/logging"
)

// AuthClient is the subset of *fbauth.Client the service uses.
type AuthClient interface {
	CreateUser(ctx context.Context, user *fbauth.UserToCreate) (*fbauth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
	SetCustomUserClaims(ctx context.Context, uid string, claims map[string]any) error
	PasswordResetLink(ctx context.Context, email string) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*fbauth.UserRecord, error)
	GetUserByPhoneNumber(ctx context.Context, phone string) (*fbauth.UserRecord, error)
}

// FirebaseService implements Service on Firebase Authentication.
type FirebaseService struct {
	client        AuthClient
	parser        *phone.Parser
	defaultRegion string
}

// NewFirebaseService returns a service using parser for login identifiers
// and defaultRegion for sign-up mobile numbers.
func NewFirebaseService(client AuthClient, parser *phone.Parser, defaultRegion string) *FirebaseService {
	if parser == nil {
		parser = phone.DefaultParser()
	}
	if defaultRegion == "" {
		defaultRegion = phone.DefaultRegion
	}
	return &FirebaseService{client: client, parser: parser, defaultRegion: defaultRegion}
}

// SignUp creates the user and stores the role as a custom claim. When the
// claim cannot be written the new user is deleted again.
func (s *FirebaseService) SignUp(ctx context.Context, params SignUpParams) (*Account, error) {
	ev := logging.AuditEvent{Action: "create", Resource: "account"}

	acct, err := newAccount(params, s.defaultRegion)
	if err != nil {
		return nil, logging.AuditOutcome(ctx, ev, err, categorizeError)
	}

	create := (&fbauth.UserToCreate{}).
		Email(acct.Email).
		EmailVerified(false).
		Password(params.Form.Password)
	if acct.Name != "" {
		create = create.DisplayName(acct.Name)
	}
	if e164 := acct.e164(); e164 != "" {
		create = create.PhoneNumber(e164)
	}

	rec, err := s.client.CreateUser(ctx, create)
	if err != nil {
		return nil, logging.AuditOutcome(ctx, ev, mapAuthError(err), categorizeError)
	}
	acct.UID = rec.UID
	ev.UserID, ev.ResourceID = rec.UID, rec.UID

	if err := s.client.SetCustomUserClaims(ctx, rec.UID, map[string]any{auth.RoleClaim: string(acct.Role)}); err != nil {
		if delErr := s.client.DeleteUser(ctx, rec.UID); delErr != nil {
			logging.LogError(ctx, "failed to roll back user after claims error", delErr,
				zap.String("uid", rec.UID))
		}
		return nil, logging.AuditOutcome(ctx, ev, fmt.Errorf("set role claim: %w", err), categorizeError)
	}

	ev.Details = map[string]any{"role": string(acct.Role), "phone": acct.Mobile != ""}
	return acct, logging.AuditOutcome(ctx, ev, nil, categorizeError)
}

// PasswordResetLink generates a reset link for a registered email.
func (s *FirebaseService) PasswordResetLink(ctx context.Context, email string) (string, error) {
	ev := logging.AuditEvent{Action: "password_reset", Resource: "account"}

	addr, err := resetEmail(email)
	if err != nil {
		return "", logging.AuditOutcome(ctx, ev, err, categorizeError)
	}
	link, err := s.client.PasswordResetLink(ctx, addr)
	if err != nil {
		return "", logging.AuditOutcome(ctx, ev, mapAuthError(err), categorizeError)
	}
	return link, logging.AuditOutcome(ctx, ev, nil, categorizeError)
}

// ResolveLogin finds the account an email or mobile identifier refers to.
func (s *FirebaseService) ResolveLogin(ctx context.Context, emailOrMobile string) (*LoginIdentity, error) {
	in, err := s.parser.BuildInputData(emailOrMobile)
	if err != nil {
		return nil, err
	}

	var rec *fbauth.UserRecord
	if in.IsEmail() {
		rec, err = s.client.GetUserByEmail(ctx, in.Email)
	} else {
		rec, err = s.client.GetUserByPhoneNumber(ctx, in.E164())
	}
	if err != nil {
		return nil, mapAuthError(err)
	}
	return &LoginIdentity{UID: rec.UID, Disabled: rec.Disabled, InputData: in}, nil
}

func mapAuthError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrEmailTaken), fbauth.IsEmailAlreadyExists(err):
		return ErrEmailTaken
	case errors.Is(err, ErrPhoneTaken), fbauth.IsPhoneNumberAlreadyExists(err):
		return ErrPhoneTaken
	case errors.Is(err, ErrUserNotFound), fbauth.IsUserNotFound(err):
		return ErrUserNotFound
	default:
		return err
	}
}

var _ Service = (*FirebaseService)(nil)
