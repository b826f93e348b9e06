// Package health serves the liveness and readiness probes.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/coudpouss/coudpouss-api/internal/platform/logging"
)

// Response is the payload for the health endpoints.
type Response struct {
	Status string   `json:"status"`
	Failed []string `json:"failed,omitempty"`
}

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// checkTimeout bounds each readiness check.
var checkTimeout = 2 * time.Second

// Handler is a plain HTTP handler for the liveness endpoint.
func Handler(w http.ResponseWriter, _ *http.Request) {
	write(w, http.StatusOK, Response{Status: "healthy"})
}

// Ready returns a handler that runs every check and answers 503 listing the
// names of the failing ones.
func Ready(checks map[string]Check) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		var failed []string
		for _, name := range names {
			ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
			err := checks[name](ctx)
			cancel()
			if err != nil {
				logging.LogWarn(r.Context(), "readiness check failed",
					zap.String("check", name), zap.Error(err))
				failed = append(failed, name)
			}
		}
		if len(failed) > 0 {
			write(w, http.StatusServiceUnavailable, Response{Status: "unavailable", Failed: failed})
			return
		}
		write(w, http.StatusOK, Response{Status: "ready"})
	}
}

func write(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
