package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/coudpouss/coudpouss-api/internal/http/health"
	"github.com/coudpouss/coudpouss-api/internal/http/v1/routes"
	"github.com/coudpouss/coudpouss-api/internal/platform/auth"
	"github.com/coudpouss/coudpouss-api/internal/platform/config"
	accountsvc "github.com/coudpouss/coudpouss-api/internal/service/account"
	chatsvc "github.com/coudpouss/coudpouss-api/internal/service/chat"
	profilesvc "github.com/coudpouss/coudpouss-api/internal/service/profile"
)

func testConfig() config.Config {
	return config.Config{
		Port:         config.DefaultPort,
		DocsPath:     config.DefaultDocsPath,
		MaxBodyBytes: config.DefaultMaxBodyBytes,
	}
}

func testServer(checks map[string]health.Check) (http.Handler, huma.API) {
	cfg := testConfig()
	router := newRouter(cfg, checks)
	api := newAPI(router, cfg.DocsPath, "test")
	routes.Register(api, routes.Deps{
		Verifier: &auth.MockVerifier{User: auth.TestUser()},
		Accounts: accountsvc.NewMockService(),
		Profiles: profilesvc.NewMockProfileService(),
		Chats:    chatsvc.NewMockChatService(),
	})
	huma.Get(api, "/panic", func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		panic("boom")
	})
	return router, api
}

func serve(h http.Handler, req *http.Request, id string) *httptest.ResponseRecorder {
	req.Header.Set(chimiddleware.RequestIDHeader, id)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func decodeProblem(t *testing.T, resp *httptest.ResponseRecorder) huma.ErrorModel {
	t.Helper()
	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected application/problem+json content type, got %q", ct)
	}
	var problem huma.ErrorModel
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal problem: %v", err)
	}
	return problem
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(nil)
	resp := serve(srv, httptest.NewRequest(http.MethodGet, "/health", nil), "test-health-req")

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 got %d", resp.Code)
	}
	var body health.Response
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body.Status != "healthy" {
		t.Fatalf("expected status 'healthy', got %s", body.Status)
	}
	if resp.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected security headers on /health")
	}
}

func TestReadyReflectsChecks(t *testing.T) {
	srv, _ := testServer(map[string]health.Check{
		"firestore": func(context.Context) error { return errors.New("down") },
	})
	resp := serve(srv, httptest.NewRequest(http.MethodGet, "/ready", nil), "test-ready-req")
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}

	srv, _ = testServer(map[string]health.Check{
		"firestore": func(context.Context) error { return nil },
	})
	resp = serve(srv, httptest.NewRequest(http.MethodGet, "/ready", nil), "test-ready-ok")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestNotFoundReturnsProblemDetails(t *testing.T) {
	srv, _ := testServer(nil)
	resp := serve(srv, httptest.NewRequest(http.MethodGet, "/missing", nil), "test-404-req")

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	problem := decodeProblem(t, resp)
	if problem.Status != http.StatusNotFound || problem.Title != "Not Found" {
		t.Fatalf("unexpected problem: %+v", problem)
	}
}

func TestMethodNotAllowedReturnsProblemDetails(t *testing.T) {
	srv, _ := testServer(nil)
	resp := serve(srv, httptest.NewRequest(http.MethodPost, "/health", nil), "test-405-req")

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", resp.Code)
	}
	if allow := resp.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("expected Allow header to list GET, got %q", allow)
	}
	problem := decodeProblem(t, resp)
	if !strings.Contains(problem.Detail, "POST") {
		t.Fatalf("expected detail to mention POST, got %s", problem.Detail)
	}
}

func TestRecovererReturnsProblemDetails(t *testing.T) {
	srv, _ := testServer(nil)
	resp := serve(srv, httptest.NewRequest(http.MethodGet, "/panic", nil), "test-500-req")

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
	problem := decodeProblem(t, resp)
	if problem.Status != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", problem.Status)
	}
}

func TestRequestBodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 64
	router := newRouter(cfg, nil)
	api := newAPI(router, cfg.DocsPath, "test")
	routes.Register(api, routes.Deps{Verifier: &auth.MockVerifier{}})

	body := `{"emailOrMobile":"` + strings.Repeat("a", 200) + `@example.com","password":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/validate/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := serve(router, req, "test-413-req")
	if resp.Code == http.StatusOK {
		t.Fatalf("expected oversized body to be rejected, got %d", resp.Code)
	}
}

func TestAcceptNegotiation(t *testing.T) {
	srv, _ := testServer(nil)
	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"unknown falls back to JSON", "text/plain", "application/json"},
		{"wildcard all", "*/*", "application/json"},
		{"application wildcard", "application/*", "application/json"},
		{"no accept header", "", "application/json"},
		{"cbor", "application/cbor", "application/cbor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/display/number", strings.NewReader(`{"value":1234.5}`))
			req.Header.Set("Content-Type", "application/json")
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			resp := serve(srv, req, "test-accept-req")

			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", resp.Code)
			}
			if ct := resp.Header().Get("Content-Type"); ct != tt.want {
				t.Fatalf("expected %s, got %q", tt.want, ct)
			}
		})
	}
}

func TestOpenAPIDocumentsCBORAndBearer(t *testing.T) {
	_, api := testServer(nil)
	spec := api.OpenAPI()

	op := spec.Paths["/validate/login"].Post
	if op == nil || op.RequestBody == nil {
		t.Fatal("expected request body on POST /validate/login")
	}
	for _, ct := range []string{"application/json", "application/cbor"} {
		if _, ok := op.RequestBody.Content[ct]; !ok {
			t.Fatalf("expected %s in request body content", ct)
		}
		if _, ok := op.Responses["200"].Content[ct]; !ok {
			t.Fatalf("expected %s in 200 response content", ct)
		}
	}

	scheme := spec.Components.SecuritySchemes[auth.SecurityScheme]
	if scheme == nil || scheme.Scheme != "bearer" {
		t.Fatalf("expected bearer security scheme, got %+v", scheme)
	}
	if get := spec.Paths["/profile"].Get; get == nil || len(get.Security) == 0 {
		t.Fatal("expected GET /profile to require bearer auth")
	}
}

func TestAddCBORContentSkipsNilContent(t *testing.T) {
	api := humachi.New(chi.NewRouter(), huma.DefaultConfig("Test API", "1.0.0"))
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, addCBORContent)

	huma.Get(api, "/no-body", func(_ context.Context, _ *struct{}) (*struct{}, error) {
		return nil, nil
	})

	if op := api.OpenAPI().Paths["/no-body"].Get; op.RequestBody != nil {
		t.Fatal("expected no request body for GET")
	}
}

func TestNewServer(t *testing.T) {
	srv := newServer(":8080", http.NotFoundHandler())

	if srv.Addr != ":8080" {
		t.Errorf("unexpected addr %q", srv.Addr)
	}
	if srv.ReadTimeout != 5*time.Second {
		t.Errorf("expected ReadTimeout 5s, got %v", srv.ReadTimeout)
	}
	if srv.ReadHeaderTimeout != 2*time.Second {
		t.Errorf("expected ReadHeaderTimeout 2s, got %v", srv.ReadHeaderTimeout)
	}
	if srv.WriteTimeout != 0 {
		t.Errorf("expected no WriteTimeout for event streams, got %v", srv.WriteTimeout)
	}
	if srv.IdleTimeout != 60*time.Second {
		t.Errorf("expected IdleTimeout 60s, got %v", srv.IdleTimeout)
	}
	if srv.MaxHeaderBytes != 64<<10 {
		t.Errorf("expected MaxHeaderBytes 64KB, got %d", srv.MaxHeaderBytes)
	}
}

func TestServerShutdownOnSignal(t *testing.T) {
	srv := newServer("127.0.0.1:0", http.HandlerFunc(health.Handler))

	listenErr := make(chan error, 1)
	started := make(chan struct{})

	go func() {
		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			listenErr <- err
			return
		}
		close(started)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case <-started:
	case err := <-listenErr:
		t.Fatalf("server failed to start: %v", err)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for server to start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}

	select {
	case err := <-listenErr:
		t.Fatalf("unexpected listen error after shutdown: %v", err)
	default:
	}
}

func TestVersionVariable(t *testing.T) {
	if Version != "dev" {
		t.Errorf("expected default Version 'dev', got %q", Version)
	}
}
