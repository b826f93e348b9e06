package profile

import (
	"github.com/coudpouss/coudpouss-api/internal/platform/timeutil"
)

// Profile represents a user profile response.
type Profile struct {
	ID               string        `json:"id"                         doc:"User ID"                             example:"user-123"`
	Role             string        `json:"role"                       doc:"Account type"                        example:"consumer" enum:"consumer,professional"`
	Name             string        `json:"name"                       doc:"Display name"                        example:"Asha Rao"`
	Email            string        `json:"email"                      doc:"Contact email"                       example:"asha@example.com"`
	PhoneCountryCode string        `json:"phoneCountryCode,omitempty" doc:"Country calling code with leading +" example:"+91"`
	Mobile           string        `json:"mobile,omitempty"           doc:"National number"                     example:"9876543210"`
	Address          string        `json:"address,omitempty"          doc:"Service address"                     example:"12 MG Road, Bengaluru"`
	Bio              string        `json:"bio,omitempty"              doc:"Short introduction"`
	CreatedAt        timeutil.Time `json:"createdAt"                  doc:"Creation timestamp"                  example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt        timeutil.Time `json:"updatedAt"                  doc:"Last update timestamp"               example:"2024-01-15T10:30:00.000Z"`
}
