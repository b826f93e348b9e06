package account

// Account is a created sign-in identity.
type Account struct {
	UID              string `json:"uid"                          doc:"Identity provider user ID"           example:"Xb3kQ9"`
	Email            string `json:"email"                        doc:"Email address"                       example:"user@example.com"`
	PhoneCountryCode string `json:"phone_country_code,omitempty" doc:"Country calling code with leading +" example:"+91"`
	Mobile           string `json:"mobile,omitempty"             doc:"National number"                     example:"9876543210"`
	Name             string `json:"name,omitempty"               doc:"Display name"                        example:"Asha"`
	Role             string `json:"role"                         doc:"Account type"                        example:"consumer"`
}

// LoginIdentity is the account a login identifier refers to.
type LoginIdentity struct {
	UID              string `json:"uid"                          doc:"Identity provider user ID"           example:"Xb3kQ9"`
	Disabled         bool   `json:"disabled"                     doc:"Whether sign-in is disabled"`
	Email            string `json:"email,omitempty"              doc:"Email address"                       example:"user@example.com"`
	PhoneCountryCode string `json:"phone_country_code,omitempty" doc:"Country calling code with leading +" example:"+91"`
	Mobile           string `json:"mobile,omitempty"             doc:"National number"                     example:"9876543210"`
}
