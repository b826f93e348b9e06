package account

// SignUpInput for POST /accounts
type SignUpInput struct {
	Body struct {
		Email           string  `json:"email"              doc:"Email address"     example:"user@example.com"`
		Password        string  `json:"password"           doc:"Password"          example:"Abcdef12"`
		ConfirmPassword string  `json:"confirmPassword"    doc:"Password repeated" example:"Abcdef12"`
		MobileNo        *string `json:"mobileNo,omitempty" doc:"Mobile number"     example:"+91 98765 43210"`
		Name            *string `json:"name,omitempty"     doc:"Display name"      example:"Asha"`
		Role            string  `json:"role,omitempty"     doc:"Account type, defaults to consumer" enum:"consumer,professional" example:"consumer"`
	}
}

// PasswordResetInput for POST /accounts/password-reset
type PasswordResetInput struct {
	Body struct {
		Email string `json:"email" doc:"Email address of the account" example:"user@example.com"`
	}
}

// LoginIdentityInput for POST /accounts/login-identity
type LoginIdentityInput struct {
	Body struct {
		EmailOrMobile string `json:"emailOrMobile" doc:"Email address or mobile number" example:"9876543210"`
	}
}
