package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/coudpouss/coudpouss-api/internal/platform/auth"
	"github.com/coudpouss/coudpouss-api/internal/platform/respond"
	"github.com/coudpouss/coudpouss-api/internal/platform/timeutil"
	profilesvc "github.com/coudpouss/coudpouss-api/internal/service/profile"
)

// Register registers profile endpoints.
func Register(api huma.API, svc profilesvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "upsert-profile",
		Method:      http.MethodPut,
		Path:        "/profile",
		Summary:     "Create or merge the current user's profile",
		Description: "Creates the profile on first call and merges non-empty fields afterwards. The role is taken from the token.",
		Tags:        []string{"Profile"},
		Security:    auth.BearerSecurity,
	}, func(ctx context.Context, input *ProfileUpsertInput) (*ProfileUpsertOutput, error) {
		user := auth.UserFromContext(ctx)

		profile, err := svc.Upsert(ctx, user.UID, profilesvc.UpsertParams{
			Role:    string(user.Role),
			Name:    input.Body.Name,
			Email:   input.Body.Email,
			Mobile:  input.Body.Mobile,
			Address: input.Body.Address,
			Bio:     input.Body.Bio,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileUpsertOutput{Body: toHTTPProfile(profile)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get current user's profile",
		Description: "Retrieves the profile for the authenticated user.",
		Tags:        []string{"Profile"},
		Security:    auth.BearerSecurity,
	}, func(ctx context.Context, _ *ProfileGetInput) (*ProfileGetOutput, error) {
		user := auth.UserFromContext(ctx)

		profile, err := svc.Get(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileGetOutput{Body: toHTTPProfile(profile)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPatch,
		Path:        "/profile",
		Summary:     "Update current user's profile",
		Description: "Updates fields on the authenticated user's profile. Only provided fields are updated.",
		Tags:        []string{"Profile"},
		Security:    auth.BearerSecurity,
	}, func(ctx context.Context, input *ProfileUpdateInput) (*ProfileUpdateOutput, error) {
		user := auth.UserFromContext(ctx)
		if !hasProfileUpdateFields(input) {
			return nil, huma.Error422UnprocessableEntity("at least one field must be provided")
		}

		profile, err := svc.Update(ctx, user.UID, profilesvc.UpdateParams{
			Name:    input.Body.Name,
			Email:   input.Body.Email,
			Mobile:  input.Body.Mobile,
			Address: input.Body.Address,
			Bio:     input.Body.Bio,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileUpdateOutput{Body: toHTTPProfile(profile)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-profile",
		Method:        http.MethodDelete,
		Path:          "/profile",
		Summary:       "Delete current user's profile",
		Description:   "Permanently deletes the authenticated user's profile.",
		Tags:          []string{"Profile"},
		DefaultStatus: http.StatusNoContent,
		Security:      auth.BearerSecurity,
	}, func(ctx context.Context, _ *ProfileDeleteInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.Delete(ctx, user.UID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func hasProfileUpdateFields(input *ProfileUpdateInput) bool {
	return input.Body.Name != nil ||
		input.Body.Email != nil ||
		input.Body.Mobile != nil ||
		input.Body.Address != nil ||
		input.Body.Bio != nil
}

func mapServiceError(err error) error {
	if se, ok := respond.AsFormError(err); ok {
		return se
	}
	switch {
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("profile not found")
	case errors.Is(err, profilesvc.ErrInvalidRole):
		return huma.Error422UnprocessableEntity("invalid role")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPProfile(p *profilesvc.Profile) Profile {
	return Profile{
		ID:               p.ID,
		Role:             p.Role,
		Name:             p.Name,
		Email:            p.Email,
		PhoneCountryCode: p.PhoneCountryCode,
		Mobile:           p.Mobile,
		Address:          p.Address,
		Bio:              p.Bio,
		CreatedAt:        timeutil.NewTime(p.CreatedAt),
		UpdatedAt:        timeutil.NewTime(p.UpdatedAt),
	}
}
