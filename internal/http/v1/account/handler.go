package account

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/coudpouss/coudpouss-api/internal/phone"
	"github.com/coudpouss/coudpouss-api/internal/platform/auth"
	"github.com/coudpouss/coudpouss-api/internal/platform/logging"
	"github.com/coudpouss/coudpouss-api/internal/platform/respond"
	accountsvc "github.com/coudpouss/coudpouss-api/internal/service/account"
	"github.com/coudpouss/coudpouss-api/internal/validate"
)

// Register registers account endpoints. They are public: callers have no
// token before signing up or in.
func Register(api huma.API, svc accountsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID:   "sign-up",
		Method:        http.MethodPost,
		Path:          "/accounts",
		Summary:       "Create an account",
		Description:   "Validates the sign-up form and creates the sign-in identity with the chosen role.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *SignUpInput) (*SignUpOutput, error) {
		acct, err := svc.SignUp(ctx, accountsvc.SignUpParams{
			Form: validate.SignupForm{
				Email:           input.Body.Email,
				Password:        input.Body.Password,
				ConfirmPassword: input.Body.ConfirmPassword,
				MobileNo:        input.Body.MobileNo,
				Name:            input.Body.Name,
			},
			Role: auth.ParseRole(input.Body.Role),
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &SignUpOutput{Body: toHTTPAccount(acct)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "request-password-reset",
		Method:        http.MethodPost,
		Path:          "/accounts/password-reset",
		Summary:       "Request a password reset",
		Description:   "Accepts a reset request. The response does not reveal whether the account exists.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusAccepted,
	}, func(ctx context.Context, input *PasswordResetInput) (*struct{}, error) {
		_, err := svc.PasswordResetLink(ctx, input.Body.Email)
		switch {
		case err == nil:
			logging.LogInfo(ctx, "password reset link generated")
		case errors.Is(err, accountsvc.ErrUserNotFound):
			logging.LogInfo(ctx, "password reset for unknown account", zap.String("reason", "not_found"))
		default:
			return nil, mapServiceError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "resolve-login-identity",
		Method:      http.MethodPost,
		Path:        "/accounts/login-identity",
		Summary:     "Resolve a login identifier",
		Description: "Finds the account an email-or-mobile login field refers to.",
		Tags:        []string{"Accounts"},
	}, func(ctx context.Context, input *LoginIdentityInput) (*LoginIdentityOutput, error) {
		id, err := svc.ResolveLogin(ctx, input.Body.EmailOrMobile)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &LoginIdentityOutput{Body: LoginIdentity{
			UID:              id.UID,
			Disabled:         id.Disabled,
			Email:            id.Email,
			PhoneCountryCode: id.PhoneCountryCode,
			Mobile:           id.Mobile,
		}}, nil
	})
}

func mapServiceError(err error) error {
	if se, ok := respond.AsFormError(err); ok {
		return se
	}
	switch {
	case errors.Is(err, phone.ErrInvalidContactInput):
		return huma.Error422UnprocessableEntity("invalid contact input", &huma.ErrorDetail{
			Message:  validate.MsgInvalidEmailOrMobile,
			Location: "body." + validate.FieldEmailOrMobile,
		})
	case errors.Is(err, accountsvc.ErrEmailTaken):
		return huma.Error409Conflict("email already registered")
	case errors.Is(err, accountsvc.ErrPhoneTaken):
		return huma.Error409Conflict("mobile number already registered")
	case errors.Is(err, accountsvc.ErrUserNotFound):
		return huma.Error404NotFound("account not found")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPAccount(a *accountsvc.Account) Account {
	return Account{
		UID:              a.UID,
		Email:            a.Email,
		PhoneCountryCode: a.PhoneCountryCode,
		Mobile:           a.Mobile,
		Name:             a.Name,
		Role:             string(a.Role),
	}
}
