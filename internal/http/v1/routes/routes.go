// Package routes registers every v1 operation on a huma API.
package routes

import (
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/coudpouss/coudpouss-api/internal/http/v1/account"
	"github.com/coudpouss/coudpouss-api/internal/http/v1/chat"
	"github.com/coudpouss/coudpouss-api/internal/http/v1/display"
	"github.com/coudpouss/coudpouss-api/internal/http/v1/profile"
	"github.com/coudpouss/coudpouss-api/internal/http/v1/validation"
	"github.com/coudpouss/coudpouss-api/internal/phone"
	"github.com/coudpouss/coudpouss-api/internal/platform/auth"
	accountsvc "github.com/coudpouss/coudpouss-api/internal/service/account"
	chatsvc "github.com/coudpouss/coudpouss-api/internal/service/chat"
	profilesvc "github.com/coudpouss/coudpouss-api/internal/service/profile"
)

// Deps holds the services and settings the handlers need.
type Deps struct {
	Verifier      auth.Verifier
	Phone         *phone.Parser
	DefaultRegion string
	Accounts      accountsvc.Service
	Profiles      profilesvc.Service
	Chats         chatsvc.Service
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, deps Deps) {
	prefix := apiPrefix(api)

	// Protected operations declare auth.BearerSecurity; the rest pass through.
	api.UseMiddleware(auth.NewAuthMiddleware(api, deps.Verifier))

	validation.Register(api, deps.Phone, deps.DefaultRegion)
	display.Register(api)
	account.Register(api, deps.Accounts)
	profile.Register(api, deps.Profiles)
	chat.Register(api, deps.Chats, prefix)
}

func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}
