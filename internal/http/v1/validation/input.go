package validation

// LoginInput for POST /validate/login
type LoginInput struct {
	Body struct {
		EmailOrMobile string `json:"emailOrMobile" doc:"Email address or mobile number" example:"user@example.com"`
		Password      string `json:"password"      doc:"Password"                       example:"Abcdef12"`
	}
}

// SignupInput for POST /validate/signup
type SignupInput struct {
	Body SignupBody
}

// SignupBody is the sign-up form. Optional fields may be omitted.
type SignupBody struct {
	Email           string  `json:"email"              doc:"Email address"      example:"user@example.com"`
	Password        string  `json:"password"           doc:"Password"           example:"Abcdef12"`
	ConfirmPassword string  `json:"confirmPassword"    doc:"Password repeated"  example:"Abcdef12"`
	MobileNo        *string `json:"mobileNo,omitempty" doc:"Mobile number"      example:"+91 98765 43210"`
	Name            *string `json:"name,omitempty"     doc:"Display name"       example:"Asha"`
}

// ResetPasswordInput for POST /validate/reset-password
type ResetPasswordInput struct {
	Body struct {
		Email string `json:"email" doc:"Email address" example:"user@example.com"`
	}
}

// PasswordInput for POST /validate/password
type PasswordInput struct {
	Body struct {
		Password string `json:"password" doc:"Candidate password" example:"abc"`
	}
}

// PhoneParseInput for POST /phone/parse
type PhoneParseInput struct {
	Body struct {
		Mobile string `json:"mobile"           doc:"Free-form phone number"                      example:"+91 98765-43210"`
		Region string `json:"region,omitempty" doc:"ISO 3166 region for numbers without a +" example:"IN" maxLength:"2"`
	}
}

// IdentifierInput for POST /auth/identifier
type IdentifierInput struct {
	Body struct {
		EmailOrMobile string `json:"emailOrMobile" doc:"Email address or mobile number" example:"9876543210"`
	}
}
