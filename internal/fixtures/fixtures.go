// Package fixtures generates the demo data the storefront screens show:
// a random product catalog and sample notifications. Nothing here is
// persisted until a store persists it.
package fixtures

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/tonguers/loja/internal/domain"
)

var notificationTitles = map[domain.NotificationType]string{
	domain.NotificationOrder:     "Order update",
	domain.NotificationPromotion: "Limited-time offer",
	domain.NotificationSystem:    "Heads up",
	domain.NotificationSecurity:  "Security alert",
}

// Products returns n random catalog entries with $-formatted prices.
func Products(n int) []domain.Product {
	products := make([]domain.Product, n)
	for i := range products {
		products[i] = domain.Product{
			ID:    gofakeit.UUID(),
			Name:  gofakeit.ProductName(),
			Price: fmt.Sprintf("$%.2f", gofakeit.Price(1, 1000)),
			Image: gofakeit.ImageURL(640, 480),
		}
	}
	return products
}

// NotificationDrafts returns n random notification drafts across the
// known types, ready to feed store.Notifications.Add.
func NotificationDrafts(n int) []domain.NotificationDraft {
	types := []domain.NotificationType{
		domain.NotificationOrder,
		domain.NotificationPromotion,
		domain.NotificationSystem,
		domain.NotificationSecurity,
	}

	drafts := make([]domain.NotificationDraft, n)
	for i := range drafts {
		typ := types[gofakeit.Number(0, len(types)-1)]
		drafts[i] = domain.NotificationDraft{
			Type:    typ,
			Title:   notificationTitles[typ],
			Message: gofakeit.Sentence(10),
		}
	}
	return drafts
}
