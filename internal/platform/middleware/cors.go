package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// Headers browsers may send to and read from the API.
var (
	corsAllowedHeaders = []string{
		"Accept",
		"Authorization",
		"Content-Type",
		"Last-Event-ID",
		"X-Request-Id",
		"traceparent",
	}
	corsExposedHeaders = []string{"Link", "Location", "X-Request-Id"}
)

// CORS applies cross-origin rules for the mobile web client. With no origins
// every origin is allowed, which is the default for local development.
func CORS(origins ...string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: corsAllowedHeaders,
		ExposedHeaders: corsExposedHeaders,
		MaxAge:         300,
	})
}
