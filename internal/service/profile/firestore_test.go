package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/coudpouss/coudpouss-api/internal/phone"
	"github.com/coudpouss/coudpouss-api/internal/testutil"
)

func newTestStore(t *testing.T) *FirestoreStore {
	t.Helper()
	return NewFirestoreStore(testutil.NewFirestoreClient(t), phone.NewParser())
}

func TestFirestoreUpsertCreatesThenMerges(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Upsert(ctx, "user-1", UpsertParams{
		Name:   "Asha Rao",
		Email:  "ASHA@example.com",
		Mobile: "+91 98765 43210",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if first.Email != "asha@example.com" || first.PhoneCountryCode != "+91" || first.Mobile != "9876543210" {
		t.Fatalf("unexpected normalization %+v", first)
	}
	if first.Role != "consumer" {
		t.Fatalf("expected default role, got %q", first.Role)
	}
	if first.CreatedAt.IsZero() || first.UpdatedAt.IsZero() {
		t.Fatal("expected server timestamps")
	}

	second, err := store.Upsert(ctx, "user-1", UpsertParams{Bio: "Gardener", Role: "professional"})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.Name != "Asha Rao" || second.Bio != "Gardener" || second.Role != "professional" {
		t.Fatalf("expected merged profile, got %+v", second)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	if second.UpdatedAt.Before(first.UpdatedAt) {
		t.Fatal("expected updated_at to advance")
	}
}

func TestFirestoreGetNotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFirestoreUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Update(ctx, "missing", UpdateParams{Bio: strPtr("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Upsert(ctx, "user-2", UpsertParams{Name: "Ravi", Mobile: "9876543210"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	p, err := store.Update(ctx, "user-2", UpdateParams{Name: strPtr("Ravi Kumar"), Mobile: strPtr("")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Name != "Ravi Kumar" || p.Mobile != "" || p.PhoneCountryCode != "" {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestFirestoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Upsert(ctx, "user-3", UpsertParams{Name: "Meera"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.Delete(ctx, "user-3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "user-3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
