package respond

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
)

func decodeProblem(t *testing.T, resp *httptest.ResponseRecorder) problem {
	t.Helper()
	var p problem
	var err error
	switch ct := resp.Header().Get("Content-Type"); ct {
	case contentTypeProblemJSON:
		err = json.Unmarshal(resp.Body.Bytes(), &p)
	case contentTypeProblemCBOR:
		err = cbor.Unmarshal(resp.Body.Bytes(), &p)
	default:
		t.Fatalf("unexpected content type %q", ct)
	}
	if err != nil {
		t.Fatalf("failed to decode problem: %v", err)
	}
	return p
}

func TestNotFoundHandler(t *testing.T) {
	for _, accept := range []string{"", "application/cbor"} {
		router := chi.NewRouter()
		router.NotFound(NotFoundHandler())

		req := httptest.NewRequest(http.MethodGet, "/v1/nowhere", nil)
		req.Header.Set("Accept", accept)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusNotFound {
			t.Fatalf("accept %q: expected 404, got %d", accept, resp.Code)
		}
		p := decodeProblem(t, resp)
		if p.Title != "Not Found" || p.Detail != msgNotFound || p.Status != http.StatusNotFound {
			t.Fatalf("accept %q: unexpected problem %+v", accept, p)
		}
		if !strings.HasSuffix(p.Schema, errorSchemaPath) {
			t.Fatalf("expected $schema, got %q", p.Schema)
		}
		if link := resp.Header().Get("Link"); !strings.Contains(link, errorSchemaPath) || !strings.Contains(link, "describedBy") {
			t.Fatalf("expected describedBy link, got %q", link)
		}
	}
}

func TestMethodNotAllowedHandlerListsAllow(t *testing.T) {
	router := chi.NewRouter()
	router.MethodNotAllowed(MethodNotAllowedHandler())
	router.Get("/profile", func(w http.ResponseWriter, _ *http.Request) {})
	router.Patch("/profile", func(w http.ResponseWriter, _ *http.Request) {})

	req := httptest.NewRequest(http.MethodPost, "/profile", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
	allow := resp.Header().Get("Allow")
	if !strings.Contains(allow, http.MethodGet) || !strings.Contains(allow, http.MethodPatch) {
		t.Fatalf("expected GET and PATCH in Allow, got %q", allow)
	}
	if p := decodeProblem(t, resp); !strings.Contains(p.Detail, http.MethodPost) {
		t.Fatalf("expected detail to mention POST, got %q", p.Detail)
	}
}

func TestRecovererWritesProblem(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Recoverer())
	api := humachi.New(router, huma.DefaultConfig("Test", "test"))
	huma.Get(api, "/panic", func(context.Context, *struct{}) (*struct{}, error) {
		panic("boom")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if p := decodeProblem(t, resp); p.Detail != msgInternalServer {
		t.Fatalf("unexpected detail %q", p.Detail)
	}
}

func TestRecovererKeepsPartialResponse(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Recoverer())
	router.Get("/partial", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("partial"))
		panic("late")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/partial", nil))

	if resp.Code != http.StatusOK || resp.Body.String() != "partial" {
		t.Fatalf("expected untouched partial response, got %d %q", resp.Code, resp.Body.String())
	}
}

func TestRecovererRePanicsAbortHandler(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Recoverer())
	router.Get("/abort", func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	})

	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, http.ErrAbortHandler) {
			t.Fatalf("expected ErrAbortHandler to propagate, got %v", err)
		}
	}()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abort", nil))
	t.Fatal("expected panic")
}

func TestAcceptsCBOR(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{"", false},
		{"application/json", false},
		{"application/cbor", true},
		{"application/problem+cbor", true},
		{"application/cbor, */*;q=0.1", true},
		{"application/json, application/cbor;q=0.5", false},
		{"application/cbor;q=0", false},
		{"*/*", false},
		{"not a media type", false},
	}
	for _, tt := range tests {
		if got := acceptsCBOR(tt.accept); got != tt.want {
			t.Errorf("acceptsCBOR(%q) = %v, want %v", tt.accept, got, tt.want)
		}
	}
}

func TestResponseWriterUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}
	rw.Flush()
	if !rw.wroteHeader {
		t.Fatal("expected flush to mark header written")
	}
	if rw.Unwrap() != rec {
		t.Fatal("expected Unwrap to return the recorder")
	}
}
