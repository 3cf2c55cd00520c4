package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tonguers/loja/internal/domain"
	"github.com/tonguers/loja/internal/storage/memory"
)

func TestStore_RoundTrip(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	if _, err := store.Get(ctx, "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "v" {
		t.Fatalf("expected v, got %q", value)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", store.Len())
	}

	if err := store.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d records", store.Len())
	}
}

func TestStore_FailWith(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	boom := errors.New("boom")

	store.FailWith(boom)
	if err := store.Set(ctx, "k", "v"); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if err := store.Remove(ctx, "k"); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}

	store.FailWith(nil)
	if err := store.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set after clearing injection: %v", err)
	}
}
