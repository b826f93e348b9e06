// Package validation exposes the form validators and phone normalizers so
// clients can check input before submitting it.
package validation

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/coudpouss/coudpouss-api/internal/phone"
	"github.com/coudpouss/coudpouss-api/internal/validate"
)

// Register registers validation endpoints. parser splits login identifiers
// and region is the fallback for /phone/parse.
func Register(api huma.API, parser *phone.Parser, region string) {
	if parser == nil {
		parser = phone.DefaultParser()
	}
	if region == "" {
		region = phone.DefaultRegion
	}

	huma.Register(api, huma.Operation{
		OperationID: "validate-login",
		Method:      http.MethodPost,
		Path:        "/validate/login",
		Summary:     "Validate login form",
		Description: "Checks the login form fields. The password is only checked for presence.",
		Tags:        []string{"Validation"},
	}, func(_ context.Context, input *LoginInput) (*FormOutput, error) {
		res := validate.ValidateLoginForm(input.Body.EmailOrMobile, input.Body.Password)
		return &FormOutput{Body: toFormResult(res)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "validate-signup",
		Method:      http.MethodPost,
		Path:        "/validate/signup",
		Summary:     "Validate sign-up form",
		Description: "Checks the sign-up form fields, including password strength and confirmation.",
		Tags:        []string{"Validation"},
	}, func(_ context.Context, input *SignupInput) (*FormOutput, error) {
		res := validate.ValidateSignupForm(input.Body.Form())
		return &FormOutput{Body: toFormResult(res)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "validate-reset-password",
		Method:      http.MethodPost,
		Path:        "/validate/reset-password",
		Summary:     "Validate password reset form",
		Tags:        []string{"Validation"},
	}, func(_ context.Context, input *ResetPasswordInput) (*FormOutput, error) {
		res := validate.ValidateResetPasswordForm(input.Body.Email)
		return &FormOutput{Body: toFormResult(res)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "validate-password",
		Method:      http.MethodPost,
		Path:        "/validate/password",
		Summary:     "Check password strength",
		Description: "Returns every failed strength rule in order: length, uppercase, lowercase, digit.",
		Tags:        []string{"Validation"},
	}, func(_ context.Context, input *PasswordInput) (*PasswordOutput, error) {
		res := validate.IsValidPassword(input.Body.Password)
		return &PasswordOutput{Body: PasswordResult{Valid: res.Valid, Errors: res.Errors}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "parse-phone",
		Method:      http.MethodPost,
		Path:        "/phone/parse",
		Summary:     "Normalize a phone number",
		Description: "Runs both phone normalizers on the input. They may disagree.",
		Tags:        []string{"Validation"},
	}, func(_ context.Context, input *PhoneParseInput) (*PhoneParseOutput, error) {
		r := strings.ToUpper(strings.TrimSpace(input.Body.Region))
		if r == "" {
			r = region
		}
		out := &PhoneParseOutput{}
		if parsed, ok := parser.ParseMobile(input.Body.Mobile); ok {
			out.Body.Parsed = &parsed
		}
		out.Body.Normalized = phone.NormalizePhone(input.Body.Mobile, r)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "resolve-identifier",
		Method:      http.MethodPost,
		Path:        "/auth/identifier",
		Summary:     "Build login identity",
		Description: "Turns an email-or-mobile field into the identity payload used to sign in.",
		Tags:        []string{"Validation"},
	}, func(_ context.Context, input *IdentifierInput) (*IdentifierOutput, error) {
		data, err := parser.BuildInputData(input.Body.EmailOrMobile)
		if err != nil {
			if errors.Is(err, phone.ErrInvalidContactInput) {
				return nil, huma.Error422UnprocessableEntity("invalid contact input", &huma.ErrorDetail{
					Message:  validate.MsgInvalidEmailOrMobile,
					Location: "body." + validate.FieldEmailOrMobile,
					Value:    input.Body.EmailOrMobile,
				})
			}
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &IdentifierOutput{Body: data}, nil
	})
}

// Form converts the request body into the validator input.
func (b SignupBody) Form() validate.SignupForm {
	return validate.SignupForm{
		Email:           b.Email,
		Password:        b.Password,
		ConfirmPassword: b.ConfirmPassword,
		MobileNo:        b.MobileNo,
		Name:            b.Name,
	}
}

func toFormResult(r validate.Result) FormResult {
	return FormResult{Valid: r.Valid, Errors: r.Errors}
}
