package fixtures_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/tonguers/loja/internal/domain"
	"github.com/tonguers/loja/internal/fixtures"
)

func TestProducts(t *testing.T) {
	products := fixtures.Products(25)
	if len(products) != 25 {
		t.Fatalf("expected 25 products, got %d", len(products))
	}

	seen := make(map[string]bool)
	for _, p := range products {
		if p.ID == "" || p.Name == "" || p.Image == "" {
			t.Fatalf("incomplete product: %+v", p)
		}
		if seen[p.ID] {
			t.Fatalf("duplicate product id %s", p.ID)
		}
		seen[p.ID] = true

		if !strings.HasPrefix(p.Price, "$") {
			t.Fatalf("expected $-prefixed price, got %q", p.Price)
		}
		if _, err := strconv.ParseFloat(strings.TrimPrefix(p.Price, "$"), 64); err != nil {
			t.Fatalf("unparseable price %q: %v", p.Price, err)
		}
	}
}

func TestNotificationDrafts(t *testing.T) {
	known := map[domain.NotificationType]bool{
		domain.NotificationOrder:     true,
		domain.NotificationPromotion: true,
		domain.NotificationSystem:    true,
		domain.NotificationSecurity:  true,
	}

	drafts := fixtures.NotificationDrafts(20)
	if len(drafts) != 20 {
		t.Fatalf("expected 20 drafts, got %d", len(drafts))
	}
	for _, d := range drafts {
		if !known[d.Type] {
			t.Fatalf("unknown notification type %q", d.Type)
		}
		if d.Title == "" || d.Message == "" {
			t.Fatalf("incomplete draft: %+v", d)
		}
	}
}
