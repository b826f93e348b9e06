package profile

// ProfileUpsertOutput for PUT /profile
type ProfileUpsertOutput struct {
	Body Profile
}

// ProfileGetOutput for GET /profile
type ProfileGetOutput struct {
	Body Profile
}

// ProfileUpdateOutput for PATCH /profile
type ProfileUpdateOutput struct {
	Body Profile
}
