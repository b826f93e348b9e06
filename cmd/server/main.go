package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/coudpouss/coudpouss-api/internal/http/health"
	"github.com/coudpouss/coudpouss-api/internal/http/v1/routes"
	"github.com/coudpouss/coudpouss-api/internal/phone"
	"github.com/coudpouss/coudpouss-api/internal/platform/auth"
	"github.com/coudpouss/coudpouss-api/internal/platform/config"
	"github.com/coudpouss/coudpouss-api/internal/platform/firebase"
	applog "github.com/coudpouss/coudpouss-api/internal/platform/logging"
	appmiddleware "github.com/coudpouss/coudpouss-api/internal/platform/middleware"
	"github.com/coudpouss/coudpouss-api/internal/platform/respond"
	accountsvc "github.com/coudpouss/coudpouss-api/internal/service/account"
	chatsvc "github.com/coudpouss/coudpouss-api/internal/service/chat"
	profilesvc "github.com/coudpouss/coudpouss-api/internal/service/profile"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const apiTitle = "CoudPouss API"

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(context.Background(), "config load failed", err)
	}
	if cfg.FirebaseProjectID != "" {
		applog.SetProjectID(cfg.FirebaseProjectID)
	}

	ctx := context.Background()
	clients, err := firebase.InitializeClients(ctx, firebase.Config{
		ProjectID:                    cfg.FirebaseProjectID,
		GoogleApplicationCredentials: cfg.GoogleApplicationCredentials,
	})
	if err != nil {
		applog.LogFatal(ctx, "firebase init failed", err)
	}
	defer func() {
		if err := clients.Close(); err != nil {
			applog.LogError(context.Background(), "firebase close error", err)
		}
	}()
	if firebase.UsingEmulators() {
		applog.LogInfo(ctx, "using Firebase emulators")
	}

	parser := phone.NewParser(phone.WithDefaultCountryCode(cfg.PhoneDefaultCountryCode))
	router := newRouter(cfg, map[string]health.Check{"firestore": clients.PingFirestore})
	api := newAPI(router, cfg.DocsPath, Version)
	routes.Register(api, routes.Deps{
		Verifier:      auth.NewFirebaseVerifier(clients.Auth),
		Phone:         parser,
		DefaultRegion: cfg.PhoneDefaultRegion,
		Accounts:      accountsvc.NewFirebaseService(clients.Auth, parser, cfg.PhoneDefaultRegion),
		Profiles:      profilesvc.NewFirestoreStore(clients.Firestore, parser),
		Chats:         chatsvc.NewFirestoreStore(clients.Firestore),
	})

	srv := newServer(cfg.Addr(), router)

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", srv.Addr), zap.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		applog.LogInfo(ctx, "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(ctx, "server exited")
}

// newRouter builds the chi router with the base middleware stack and the
// probe endpoints, which stay outside the huma API.
func newRouter(cfg config.Config, checks map[string]health.Check) chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(cfg.DocsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.AllowedOrigins...),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; only run behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(cfg.MaxBodyBytes),
		applog.RequestLogger(),
		applog.AccessLogger("/health", "/ready"),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler)
	router.Get("/ready", health.Ready(checks))
	return router
}

// newAPI mounts a huma API on router with CBOR documented next to JSON and
// the bearer scheme used by protected operations.
func newAPI(router chi.Router, docsPath, version string) huma.API {
	cfg := huma.DefaultConfig(apiTitle, version)
	cfg.DocsPath = docsPath
	if cfg.Components.SecuritySchemes == nil {
		cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}
	cfg.Components.SecuritySchemes[auth.SecurityScheme] = &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
		Description:  "Firebase ID token",
	}
	api := humachi.New(router, cfg)
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, addCBORContent)
	return api
}

// addCBORContent documents application/cbor wherever application/json is
// accepted or returned.
func addCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}

// newServer applies the connection limits. WriteTimeout stays zero so chat
// event streams are not cut off.
func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}
