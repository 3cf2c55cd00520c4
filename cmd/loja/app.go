package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tonguers/loja/internal/domain"
	"github.com/tonguers/loja/internal/storage/redis"
	"github.com/tonguers/loja/internal/storage/sqlite"
	"github.com/tonguers/loja/internal/store"
)

// app wires a persistence backend and the three stores for one CLI run.
// The cart is memory-only, so it always starts empty; session and
// notifications come back from whatever backend is selected.
type app struct {
	dbPath    string
	redisAddr string

	backend       domain.Backend
	closeBackend  func() error
	session       *store.Session
	cart          *store.Cart
	notifications *store.Notifications
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if a.redisAddr != "" {
		st := redis.New(a.redisAddr, os.Getenv("LOJA_REDIS_PASSWORD"), 0)
		a.backend = st
		a.closeBackend = st.Close
	} else {
		st, err := sqlite.New(a.dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return fmt.Errorf("migrate store: %w", err)
		}
		a.backend = st
		a.closeBackend = st.Close
	}

	a.session = store.NewSession(ctx, a.backend)
	a.cart = store.NewCart()
	a.notifications = store.NewNotifications(ctx, a.backend, a.session)
	return nil
}

func (a *app) teardown() error {
	if a.closeBackend == nil {
		return nil
	}
	return a.closeBackend()
}
