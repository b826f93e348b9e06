package validate

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"
)

// Field names used as FormErrors keys. They match the JSON names of the
// request bodies the forms are submitted with.
const (
	FieldEmailOrMobile   = "emailOrMobile"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldMobileNo        = "mobileNo"
	FieldName            = "name"
)

// Field-level messages.
const (
	MsgRequired             = "This field is required"
	MsgInvalidEmailOrMobile = "Please enter a valid email or mobile number"
	MsgInvalidEmail         = "Please enter a valid email address"
	MsgInvalidMobile        = "Please enter a valid mobile number"
	MsgPasswordMismatch     = "Passwords do not match"
	MsgNameTooShort         = "Name must be at least 2 characters"
)

const minNameLength = 2

// ErrInvalid is the sentinel wrapped by every *Error.
var ErrInvalid = errors.New("validation failed")

// FormErrors maps a field name to a human-readable message. A missing key
// means the field is valid.
type FormErrors map[string]string

// Fields returns the invalid field names in sorted order.
func (fe FormErrors) Fields() []string {
	return slices.Sorted(maps.Keys(fe))
}

// Result is the outcome of a form validation.
type Result struct {
	Valid  bool       `json:"valid"`
	Errors FormErrors `json:"errors"`
}

// Err returns nil for a valid result and an *Error otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Fields: r.Errors}
}

// Error carries the field errors of a rejected form through service layers.
type Error struct {
	Fields FormErrors
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrInvalid.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalid.Error(), strings.Join(e.Fields.Fields(), ", "))
}

// Unwrap lets errors.Is match ErrInvalid.
func (e *Error) Unwrap() error {
	return ErrInvalid
}

// SignupForm holds the raw sign-up fields. MobileNo and Name are optional.
type SignupForm struct {
	Email           string
	Password        string
	ConfirmPassword string
	MobileNo        *string
	Name            *string
}

func newResult(errs FormErrors) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateLoginForm checks the login identifier and password. The password is
// only required here; strength rules apply at sign-up.
func ValidateLoginForm(emailOrMobile, password string) Result {
	errs := FormErrors{}
	switch {
	case isBlank(emailOrMobile):
		errs[FieldEmailOrMobile] = MsgRequired
	case !IsValidEmailOrMobile(strings.TrimSpace(emailOrMobile)):
		errs[FieldEmailOrMobile] = MsgInvalidEmailOrMobile
	}
	if password == "" {
		errs[FieldPassword] = MsgRequired
	}
	return newResult(errs)
}

// ValidateSignupForm checks a sign-up submission. Only the first password
// strength message is reported.
func ValidateSignupForm(form SignupForm) Result {
	errs := FormErrors{}

	switch {
	case isBlank(form.Email):
		errs[FieldEmail] = MsgRequired
	case !IsValidEmail(strings.TrimSpace(form.Email)):
		errs[FieldEmail] = MsgInvalidEmail
	}

	if form.MobileNo != nil && *form.MobileNo != "" && !IsValidMobile(*form.MobileNo) {
		errs[FieldMobileNo] = MsgInvalidMobile
	}

	if form.Password == "" {
		errs[FieldPassword] = MsgRequired
	} else if pr := IsValidPassword(form.Password); !pr.Valid {
		errs[FieldPassword] = pr.Errors[0]
	}

	switch {
	case form.ConfirmPassword == "":
		errs[FieldConfirmPassword] = MsgRequired
	case form.ConfirmPassword != form.Password:
		errs[FieldConfirmPassword] = MsgPasswordMismatch
	}

	if form.Name != nil && *form.Name != "" &&
		utf8.RuneCountInString(strings.TrimSpace(*form.Name)) < minNameLength {
		errs[FieldName] = MsgNameTooShort
	}

	return newResult(errs)
}

// ValidateResetPasswordForm checks the email of a password reset request.
func ValidateResetPasswordForm(email string) Result {
	errs := FormErrors{}
	switch {
	case isBlank(email):
		errs[FieldEmail] = MsgRequired
	case !IsValidEmail(strings.TrimSpace(email)):
		errs[FieldEmail] = MsgInvalidEmail
	}
	return newResult(errs)
}
