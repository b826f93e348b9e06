package validate

import "unicode"

const minPasswordLength = 8

// Password strength messages, in the order they are reported.
const (
	MsgPasswordTooShort    = "Password must be at least 8 characters long"
	MsgPasswordNoUppercase = "Password must contain at least one uppercase letter"
	MsgPasswordNoLowercase = "Password must contain at least one lowercase letter"
	MsgPasswordNoDigit     = "Password must contain at least one number"
)

// PasswordResult is the outcome of a password strength check.
type PasswordResult struct {
	Valid  bool
	Errors []string
}

// IsValidPassword checks s against the strength rules. Each rule adds at most
// one message and the order is fixed: length, uppercase, lowercase, digit.
func IsValidPassword(s string) PasswordResult {
	var upper, lower, digit bool
	length := 0
	for _, r := range s {
		length++
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	errs := make([]string, 0, 4)
	if length < minPasswordLength {
		errs = append(errs, MsgPasswordTooShort)
	}
	if !upper {
		errs = append(errs, MsgPasswordNoUppercase)
	}
	if !lower {
		errs = append(errs, MsgPasswordNoLowercase)
	}
	if !digit {
		errs = append(errs, MsgPasswordNoDigit)
	}
	return PasswordResult{Valid: len(errs) == 0, Errors: errs}
}
