package profile

// ProfileUpsertInput for PUT /profile
type ProfileUpsertInput struct {
	Body struct {
		Name    string `json:"name,omitempty"    maxLength:"100" doc:"Display name"                    example:"Asha Rao"`
		Email   string `json:"email,omitempty"   maxLength:"254" doc:"Contact email"                   example:"asha@example.com"`
		Mobile  string `json:"mobile,omitempty"  maxLength:"32"  doc:"Mobile number, free form"        example:"+91 98765 43210"`
		Address string `json:"address,omitempty" maxLength:"500" doc:"Service address"                 example:"12 MG Road, Bengaluru"`
		Bio     string `json:"bio,omitempty"     maxLength:"2000" doc:"Short introduction"             example:"Plumber with 10 years of experience"`
	}
}

// ProfileGetInput for GET /profile (no body needed)
type ProfileGetInput struct{}

// ProfileUpdateInput for PATCH /profile
type ProfileUpdateInput struct {
	Body struct {
		Name    *string `json:"name,omitempty"    maxLength:"100"  doc:"Display name"                          example:"Asha Rao"`
		Email   *string `json:"email,omitempty"   maxLength:"254"  doc:"Contact email"                         example:"asha@example.com"`
		Mobile  *string `json:"mobile,omitempty"  maxLength:"32"   doc:"Mobile number, empty string clears it" example:"9876543210"`
		Address *string `json:"address,omitempty" maxLength:"500"  doc:"Service address, empty string clears it"`
		Bio     *string `json:"bio,omitempty"     maxLength:"2000" doc:"Short introduction, empty string clears it"`
	}
}

// ProfileDeleteInput for DELETE /profile (no body needed)
type ProfileDeleteInput struct{}
