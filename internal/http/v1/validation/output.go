package validation

import (
	"github.com/coudpouss/coudpouss-api/internal/phone"
)

// FormResult is the outcome of a form validation.
type FormResult struct {
	Valid  bool              `json:"valid"  doc:"Whether every field passed"`
	Errors map[string]string `json:"errors" doc:"Field name to message, empty when valid"`
}

// FormOutput wraps a form validation result.
type FormOutput struct {
	Body FormResult
}

// PasswordResult lists failed strength rules in a fixed order.
type PasswordResult struct {
	Valid  bool     `json:"valid"  doc:"Whether the password is strong enough"`
	Errors []string `json:"errors" doc:"Failed rules: length, uppercase, lowercase, digit"`
}

// PasswordOutput for POST /validate/password
type PasswordOutput struct {
	Body PasswordResult
}

// PhoneParseResult carries both normalizations of the same input.
type PhoneParseResult struct {
	Parsed     *phone.NormalizedPhone `json:"parsed"     doc:"Whitelist-based split, null when the input is not recognized"`
	Normalized phone.Contact          `json:"normalized" doc:"Metadata-based normalization, empty fields when parsing failed"`
}

// PhoneParseOutput for POST /phone/parse
type PhoneParseOutput struct {
	Body PhoneParseResult
}

// IdentifierOutput for POST /auth/identifier
type IdentifierOutput struct {
	Body phone.InputData
}
