package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func headerHas(value, target string) bool {
	for part := range strings.SplitSeq(value, ",") {
		if strings.EqualFold(strings.TrimSpace(part), target) {
			return true
		}
	}
	return false
}

func TestCORSSimpleRequestExposesHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://localhost/v1/chats", nil)
	req.Header.Set("Origin", "http://app.example.com")
	resp := httptest.NewRecorder()

	CORS()(okHandler).ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
	exposed := resp.Header().Get("Access-Control-Expose-Headers")
	for _, h := range corsExposedHeaders {
		if !headerHas(exposed, h) {
			t.Fatalf("expected %q exposed, got %q", h, exposed)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	tests := []struct {
		name    string
		headers string
	}{
		{"content type", "Content-Type"},
		{"request id", "X-Request-ID"},
		{"traceparent", "traceparent"},
		{"authorization", "Authorization"},
		{"sse resume", "Last-Event-ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

			req := httptest.NewRequest(http.MethodOptions, "http://localhost/v1/profile", nil)
			req.Header.Set("Origin", "http://app.example.com")
			req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
			req.Header.Set("Access-Control-Request-Headers", tt.headers)
			resp := httptest.NewRecorder()

			CORS()(next).ServeHTTP(resp, req)

			if called {
				t.Fatal("preflight should not reach the next handler")
			}
			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.Code)
			}
			if got := resp.Header().Get("Access-Control-Allow-Headers"); !headerHas(got, tt.headers) {
				t.Fatalf("expected %q allowed, got %q", tt.headers, got)
			}
		})
	}
}

func TestCORSRestrictedOrigins(t *testing.T) {
	h := CORS("https://app.coudpouss.com")(okHandler)

	req := httptest.NewRequest(http.MethodGet, "http://localhost/health", nil)
	req.Header.Set("Origin", "https://app.coudpouss.com")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://app.coudpouss.com" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "http://localhost/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin for foreign origin, got %q", got)
	}
}

func TestVaryAddsAccept(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Custom", "value")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("body"))
	})
	resp := httptest.NewRecorder()
	Vary()(next).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/v1/accounts", nil))

	if resp.Code != http.StatusCreated || resp.Body.String() != "body" {
		t.Fatalf("downstream response altered: %d %q", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Vary"); got != "Accept" {
		t.Fatalf("expected Vary: Accept, got %q", got)
	}
	if resp.Header().Get("X-Custom") != "value" {
		t.Fatal("expected X-Custom preserved")
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{"missing", "", false},
		{"valid", "req-123", true},
		{"control chars", "bad\nid", false},
		{"too long", strings.Repeat("a", maxRequestIDLength+1), false},
		{"max length", strings.Repeat("b", maxRequestIDLength), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = chimiddleware.GetReqID(r.Context())
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set("X-Request-Id", tt.incoming)
			}
			resp := httptest.NewRecorder()

			RequestID()(next).ServeHTTP(resp, req)

			header := resp.Header().Get("X-Request-Id")
			if header != seen {
				t.Fatalf("header %q does not match context %q", header, seen)
			}
			if tt.reuse {
				if seen != tt.incoming {
					t.Fatalf("expected incoming ID reused, got %q", seen)
				}
				return
			}
			if _, err := uuid.Parse(seen); err != nil {
				t.Fatalf("expected generated UUID, got %q", seen)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := Security("/api-docs")(okHandler)

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/profile", nil))
	want := map[string]string{
		"Cache-Control":           "no-store",
		"Content-Security-Policy": "frame-ancestors 'none'",
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Permissions-Policy":      permissionsPolicy,
	}
	for k, v := range want {
		if got := resp.Header().Get(k); got != v {
			t.Errorf("%s: expected %q, got %q", k, v, got)
		}
	}

	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api-docs/index.html", nil))
	if got := resp.Header().Get("X-Frame-Options"); got != "" {
		t.Fatalf("expected docs path skipped, got X-Frame-Options %q", got)
	}
}
