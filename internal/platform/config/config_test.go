package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{
		Port:                    DefaultPort,
		PhoneDefaultCountryCode: "+91",
		PhoneDefaultRegion:      "IN",
		DocsPath:                "/api-docs",
		MaxBodyBytes:            DefaultMaxBodyBytes,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{
		"PORT":                       "9090",
		"FIREBASE_PROJECT_ID":        "coudpouss-prod",
		"PHONE_DEFAULT_COUNTRY_CODE": "+33",
		"PHONE_DEFAULT_REGION":       "fr",
		"API_DOCS_PATH":              "docs",
		"CORS_ALLOWED_ORIGINS":       "https://a.example.com, ,https://b.example.com",
		"MAX_BODY_BYTES":             "2048",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{
		Port:                    "9090",
		FirebaseProjectID:       "coudpouss-prod",
		PhoneDefaultCountryCode: "+33",
		PhoneDefaultRegion:      "FR",
		DocsPath:                "/docs",
		AllowedOrigins:          []string{"https://a.example.com", "https://b.example.com"},
		MaxBodyBytes:            2048,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	for _, env := range []map[string]string{
		{"PORT": "http"},
		{"MAX_BODY_BYTES": "-1"},
		{"MAX_BODY_BYTES": "lots"},
	} {
		if _, err := FromEnv(lookupFrom(env)); err == nil {
			t.Errorf("expected error for %v", env)
		}
	}
}

func TestLoadReadsDotenvWithoutOverriding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("PHONE_DEFAULT_REGION=GB\nPORT=7000\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("PORT", "7100")
	// Registers cleanup; Load sets the variable through os.Setenv.
	t.Setenv("PHONE_DEFAULT_REGION", "")
	if err := os.Unsetenv("PHONE_DEFAULT_REGION"); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PhoneDefaultRegion != "GB" {
		t.Fatalf("expected region from dotenv, got %q", cfg.PhoneDefaultRegion)
	}
	if cfg.Port != "7100" {
		t.Fatalf("expected existing PORT to win, got %q", cfg.Port)
	}
}

func TestLoadIgnoresMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}
