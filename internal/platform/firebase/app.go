// Package firebase builds the Firebase Admin clients used by the services.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Config selects the Firebase project and credentials.
type Config struct {
	ProjectID                    string
	GoogleApplicationCredentials string // path to a service account JSON file, optional
}

// Clients bundles the Auth and Firestore clients of one Firebase app.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// UsingEmulators reports whether the Auth or Firestore emulator is configured
// through the standard environment variables.
func UsingEmulators() bool {
	return os.Getenv("FIRESTORE_EMULATOR_HOST") != "" || os.Getenv("FIREBASE_AUTH_EMULATOR_HOST") != ""
}

// InitializeClients creates the Firebase app and its Auth and Firestore
// clients. Without explicit credentials, Application Default Credentials are
// used.
func InitializeClients(ctx context.Context, cfg Config) (*Clients, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firebase: project ID is required")
	}

	var opts []option.ClientOption
	if cfg.GoogleApplicationCredentials != "" {
		creds, err := os.ReadFile(cfg.GoogleApplicationCredentials)
		if err != nil {
			return nil, fmt.Errorf("firebase: read credentials: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: new app: %w", err)
	}
	ac, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: auth client: %w", err)
	}
	fc, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: firestore client: %w", err)
	}
	return &Clients{Auth: ac, Firestore: fc}, nil
}

// PingFirestore reads at most one document from the users collection to
// confirm Firestore is reachable.
func (c *Clients) PingFirestore(ctx context.Context) error {
	if c == nil || c.Firestore == nil {
		return fmt.Errorf("firebase: firestore client not initialized")
	}
	it := c.Firestore.Collection("users").Limit(1).Documents(ctx)
	defer it.Stop()
	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("firebase: ping firestore: %w", err)
	}
	return nil
}

// Close releases the Firestore connection.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
