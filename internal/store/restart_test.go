package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tonguers/loja/internal/domain"
	"github.com/tonguers/loja/internal/storage/sqlite"
	"github.com/tonguers/loja/internal/store"
)

// TestRestartScenario exercises the full lifecycle across a process
// restart boundary: session and notifications come back from the SQLite
// file, the cart does not.
func TestRestartScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loja.db")
	ctx := context.Background()

	backend, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := backend.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	session := store.NewSession(ctx, backend)
	cart := store.NewCart()
	notifications := store.NewNotifications(ctx, backend, session)

	if _, err := session.Register(ctx, "ana@example.com", "secret123", "Ana"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := notifications.Add(ctx, domain.NotificationDraft{
		Type:  domain.NotificationOrder,
		Title: "Order placed",
	}); err != nil {
		t.Fatalf("Add notification: %v", err)
	}

	cart.Add(domain.Product{Name: "Sneakers", Price: "$49.90"})
	cart.Add(domain.Product{Name: "Backpack", Price: "$30.10"})
	if got := cart.Subtotal(); got != "80.00" {
		t.Fatalf("expected subtotal 80.00, got %s", got)
	}

	if err := backend.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// "Restart": fresh stores over the same database file.
	backend, err = sqlite.New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer backend.Close()
	if err := backend.Migrate(ctx); err != nil {
		t.Fatalf("Migrate on reopen: %v", err)
	}

	session = store.NewSession(ctx, backend)
	cart = store.NewCart()
	notifications = store.NewNotifications(ctx, backend, session)

	current := session.Current()
	if current == nil || current.Email != "ana@example.com" {
		t.Fatalf("expected restored session for ana, got %v", current)
	}
	if len(cart.Items()) != 0 {
		t.Fatal("expected empty cart after restart")
	}
	items := notifications.Items()
	if len(items) != 1 || items[0].Title != "Order placed" {
		t.Fatalf("expected restored notifications, got %v", items)
	}
}
