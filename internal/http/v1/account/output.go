package account

// SignUpOutput for POST /accounts (201 Created)
type SignUpOutput struct {
	Body Account
}

// LoginIdentityOutput for POST /accounts/login-identity
type LoginIdentityOutput struct {
	Body LoginIdentity
}
