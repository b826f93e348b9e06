// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the server configuration. It is read once at startup and passed
// to constructors explicitly.
type Config struct {
	Port                         string
	FirebaseProjectID            string
	GoogleApplicationCredentials string
	PhoneDefaultCountryCode      string
	PhoneDefaultRegion           string
	DocsPath                     string
	AllowedOrigins               []string
	MaxBodyBytes                 int64
}

// Defaults applied when a variable is unset or empty.
const (
	DefaultPort                    = "8080"
	DefaultPhoneDefaultCountryCode = "+91"
	DefaultPhoneDefaultRegion      = "IN"
	DefaultDocsPath                = "/api-docs"
	DefaultMaxBodyBytes            = 1 << 20
)

// Load reads the given dotenv files (".env" when none are given) into the
// process environment without overriding variables that are already set,
// then builds a Config. Missing dotenv files are not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, typically os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		Port:                         get("PORT", DefaultPort),
		FirebaseProjectID:            get("FIREBASE_PROJECT_ID", ""),
		GoogleApplicationCredentials: get("GOOGLE_APPLICATION_CREDENTIALS", ""),
		PhoneDefaultCountryCode:      get("PHONE_DEFAULT_COUNTRY_CODE", DefaultPhoneDefaultCountryCode),
		PhoneDefaultRegion:           strings.ToUpper(get("PHONE_DEFAULT_REGION", DefaultPhoneDefaultRegion)),
		DocsPath:                     get("API_DOCS_PATH", DefaultDocsPath),
		MaxBodyBytes:                 DefaultMaxBodyBytes,
	}

	if origins := get("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		for o := range strings.SplitSeq(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	if raw := get("MAX_BODY_BYTES", ""); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_BODY_BYTES: invalid value %q", raw)
		}
		cfg.MaxBodyBytes = n
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT: invalid value %q", cfg.Port)
	}
	if !strings.HasPrefix(cfg.DocsPath, "/") {
		cfg.DocsPath = "/" + cfg.DocsPath
	}
	return cfg, nil
}

// Addr is the listen address for http.Server.
func (c Config) Addr() string {
	return ":" + c.Port
}
