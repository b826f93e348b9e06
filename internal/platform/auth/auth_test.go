package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
)

type whoamiOutput struct {
	Body struct {
		UID  string `json:"uid"`
		Role string `json:"role"`
	}
}

func newTestRouter(verifier Verifier, secured bool) *chi.Mux {
	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(NewAuthMiddleware(api, verifier))

	op := huma.Operation{OperationID: "whoami", Method: http.MethodGet, Path: "/whoami"}
	if secured {
		op.Security = BearerSecurity
	}
	huma.Register(api, op, func(ctx context.Context, _ *struct{}) (*whoamiOutput, error) {
		out := &whoamiOutput{}
		if u := UserFromContext(ctx); u != nil {
			out.Body.UID = u.UID
			out.Body.Role = string(u.Role)
		}
		return out, nil
	})
	return router
}

func serve(router http.Handler, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"Bearer abc", "abc", nil},
		{"bearer   xyz", "xyz", nil},
		{"", "", ErrNoToken},
		{"Bearer", "", ErrInvalidToken},
		{"Basic abc", "", ErrInvalidToken},
		{"Bearer a b", "", ErrInvalidToken},
	}
	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if !errors.Is(err, tt.wantErr) || got != tt.want {
			t.Errorf("ExtractBearerToken(%q) = %q, %v; want %q, %v", tt.header, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestUserFromClaims(t *testing.T) {
	got := userFromClaims("uid-1", map[string]any{
		"email":          "pro@example.com",
		"email_verified": true,
		RoleClaim:        "professional",
	})
	want := &User{UID: "uid-1", Email: "pro@example.com", EmailVerified: true, Role: RoleProfessional}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("user mismatch (-want +got):\n%s", diff)
	}
	if !got.IsProfessional() {
		t.Fatal("expected professional")
	}

	if u := userFromClaims("uid-2", map[string]any{RoleClaim: 7}); u.Role != RoleConsumer {
		t.Fatalf("expected consumer default, got %q", u.Role)
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleConsumer.Valid() || !RoleProfessional.Valid() || Role("admin").Valid() {
		t.Fatal("unexpected role validity")
	}
	var nilUser *User
	if nilUser.IsProfessional() {
		t.Fatal("nil user is not professional")
	}
}

func TestMiddlewareSkipsUnsecuredOperations(t *testing.T) {
	rec := serve(newTestRouter(&MockVerifier{Error: ErrInvalidToken}, false), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMiddlewareAuthenticates(t *testing.T) {
	pro := &User{UID: "pro-1", Role: RoleProfessional}
	rec := serve(newTestRouter(&MockVerifier{Users: map[string]*User{"tok": pro}}, true), "Bearer tok")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		UID  string `json:"uid"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.UID != "pro-1" || body.Role != "professional" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestMiddlewareRejections(t *testing.T) {
	tests := []struct {
		name       string
		verifier   *MockVerifier
		header     string
		wantStatus int
		wantHeader string
	}{
		{"missing header", &MockVerifier{User: TestUser()}, "", http.StatusUnauthorized, "WWW-Authenticate"},
		{"wrong scheme", &MockVerifier{User: TestUser()}, "Basic abc", http.StatusUnauthorized, "WWW-Authenticate"},
		{"expired", &MockVerifier{Error: ErrTokenExpired}, "Bearer t", http.StatusUnauthorized, "WWW-Authenticate"},
		{"revoked", &MockVerifier{Error: ErrTokenRevoked}, "Bearer t", http.StatusUnauthorized, "WWW-Authenticate"},
		{"disabled", &MockVerifier{Error: ErrUserDisabled}, "Bearer t", http.StatusUnauthorized, "WWW-Authenticate"},
		{"unknown token", &MockVerifier{Users: map[string]*User{}}, "Bearer t", http.StatusUnauthorized, "WWW-Authenticate"},
		{"cert fetch", &MockVerifier{Error: ErrCertificateFetch}, "Bearer t", http.StatusServiceUnavailable, "Retry-After"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newTestRouter(tt.verifier, true), tt.header)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if rec.Header().Get(tt.wantHeader) == "" {
				t.Fatalf("expected %s header", tt.wantHeader)
			}
		})
	}
}

func TestCategorizeAuthError(t *testing.T) {
	if got := categorizeAuthError(errors.New("other")); got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
	if got := categorizeAuthError(ErrCertificateFetch); got != "certificate_fetch_failed" {
		t.Fatalf("unexpected category %q", got)
	}
}

func TestWithUser(t *testing.T) {
	if UserFromContext(context.Background()) != nil {
		t.Fatal("expected no user")
	}
	u := TestUser()
	if UserFromContext(WithUser(context.Background(), u)) != u {
		t.Fatal("expected stored user")
	}
}
