package phone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coudpouss/coudpouss-api/internal/validate"
)

// ErrInvalidContactInput is returned when a login identifier is neither an
// email address nor a parseable mobile number.
var ErrInvalidContactInput = errors.New("invalid contact input")

// InvalidContactInputError reports the rejected identifier.
type InvalidContactInputError struct {
	Input string
}

func (e *InvalidContactInputError) Error() string {
	if e == nil {
		return ErrInvalidContactInput.Error()
	}
	return fmt.Sprintf("%s: %q is neither an email nor a mobile number", ErrInvalidContactInput, e.Input)
}

// Unwrap enables errors.Is against ErrInvalidContactInput.
func (e *InvalidContactInputError) Unwrap() error {
	return ErrInvalidContactInput
}

// InputData identifies the account a login form refers to. Either Email is
// set, or PhoneCountryCode and Mobile are.
type InputData struct {
	Email            string `json:"email,omitempty"              doc:"Email address"                        example:"user@example.com"`
	PhoneCountryCode string `json:"phone_country_code,omitempty" doc:"Country calling code with leading +"  example:"+91"`
	Mobile           string `json:"mobile,omitempty"             doc:"National number, digits only"         example:"9876543210"`
}

// IsEmail reports whether the identity is an email address.
func (d InputData) IsEmail() bool {
	return d.Email != ""
}

// E164 returns the phone identity in E.164 form, or "" for email identities.
func (d InputData) E164() string {
	if d.IsEmail() {
		return ""
	}
	return d.PhoneCountryCode + d.Mobile
}

// BuildInputData derives the login identity from a raw email-or-mobile field.
func (p *Parser) BuildInputData(emailOrMobile string) (InputData, error) {
	trimmed := strings.TrimSpace(emailOrMobile)
	if validate.IsValidEmail(trimmed) {
		return InputData{Email: strings.ToLower(trimmed)}, nil
	}
	if parsed, ok := p.ParseMobile(trimmed); ok {
		return InputData{PhoneCountryCode: parsed.CountryCode, Mobile: parsed.Mobile}, nil
	}
	return InputData{}, &InvalidContactInputError{Input: emailOrMobile}
}

// BuildInputData derives the login identity with the default parser.
func BuildInputData(emailOrMobile string) (InputData, error) {
	return defaultParser.BuildInputData(emailOrMobile)
}
