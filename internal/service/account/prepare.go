package account

import (
	"strings"

	"github.com/coudpouss/coudpouss-api/internal/phone"
	"github.com/coudpouss/coudpouss-api/internal/platform/auth"
	"github.com/coudpouss/coudpouss-api/internal/validate"
)

// newAccount validates the sign-up form and returns the account to create.
// The mobile number is normalized with the phone metadata library for
// defaultRegion.
func newAccount(params SignUpParams, defaultRegion string) (*Account, error) {
	if res := validate.ValidateSignupForm(params.Form); !res.Valid {
		return nil, res.Err()
	}

	acct := &Account{
		Email: strings.ToLower(strings.TrimSpace(params.Form.Email)),
		Role:  params.Role,
	}
	if !acct.Role.Valid() {
		acct.Role = auth.RoleConsumer
	}
	if params.Form.Name != nil {
		acct.Name = strings.TrimSpace(*params.Form.Name)
	}
	if params.Form.MobileNo != nil && strings.TrimSpace(*params.Form.MobileNo) != "" {
		contact := phone.NormalizePhone(*params.Form.MobileNo, defaultRegion)
		if contact.IsZero() {
			return nil, &validate.Error{Fields: validate.FormErrors{
				validate.FieldMobileNo: validate.MsgInvalidMobile,
			}}
		}
		acct.PhoneCountryCode = contact.PhoneCountryCode
		acct.Mobile = contact.Mobile
	}
	return acct, nil
}

func (a *Account) e164() string {
	if a.Mobile == "" {
		return ""
	}
	return a.PhoneCountryCode + a.Mobile
}

// resetEmail validates the reset form and returns the normalized address.
func resetEmail(email string) (string, error) {
	if res := validate.ValidateResetPasswordForm(email); !res.Valid {
		return "", res.Err()
	}
	return strings.ToLower(strings.TrimSpace(email)), nil
}
