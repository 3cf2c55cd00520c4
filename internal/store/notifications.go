package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/tonguers/loja/internal/domain"
)

// notificationsKeyPrefix + email is the persisted partition for one user.
const notificationsKeyPrefix = "notifications/"

// Notifications owns the signed-in user's notification feed, newest first.
// The persisted partition is keyed by the session's email: switching
// accounts swaps the visible list, and logging out empties the in-memory
// view without deleting what was persisted.
type Notifications struct {
	backend domain.Backend
	session *Session

	mu    sync.Mutex
	email string // partition currently loaded; "" when logged out
	items []domain.Notification

	bc broadcaster
}

// NewNotifications creates the store bound to the session and loads the
// current user's partition, if any. It follows session changes from then
// on.
func NewNotifications(ctx context.Context, backend domain.Backend, session *Session) *Notifications {
	n := &Notifications{backend: backend, session: session}
	n.syncPartition(ctx)
	// Session callbacks carry no context of their own; partition reloads
	// triggered by login/logout run against the background context.
	session.Subscribe(func() {
		n.syncPartition(context.Background())
	})
	return n
}

// syncPartition aligns the in-memory view with the session's identity.
func (n *Notifications) syncPartition(ctx context.Context) {
	user := n.session.Current()

	n.mu.Lock()
	if user == nil {
		if n.email == "" {
			n.mu.Unlock()
			return
		}
		n.email = ""
		n.items = nil
		n.mu.Unlock()
		n.bc.notify()
		return
	}
	if user.Email == n.email {
		n.mu.Unlock()
		return
	}

	items, err := n.loadPartition(ctx, user.Email)
	if err != nil {
		// Best effort: an unreadable partition shows as empty.
		slog.Warn("loading notifications failed, starting empty", "email", user.Email, "error", err)
		items = nil
	}
	n.email = user.Email
	n.items = items
	n.mu.Unlock()
	n.bc.notify()
}

// Items returns a copy of the visible feed, newest first.
func (n *Notifications) Items() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	items := make([]domain.Notification, len(n.items))
	copy(items, n.items)
	return items
}

// UnreadCount reports how many visible notifications are unread.
func (n *Notifications) UnreadCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, item := range n.items {
		if !item.Read {
			count++
		}
	}
	return count
}

// Subscribe registers fn to run after every feed change. The returned
// function cancels the subscription.
func (n *Notifications) Subscribe(fn func()) (cancel func()) {
	return n.bc.subscribe(fn)
}

// Add prepends a new unread notification with a generated ID and a
// "Just now" age label, and persists the updated feed. It fails with
// domain.ErrNoActiveSession when nobody is signed in.
func (n *Notifications) Add(ctx context.Context, draft domain.NotificationDraft) (*domain.Notification, error) {
	note, err := n.add(ctx, draft)
	if err != nil {
		return nil, err
	}
	n.bc.notify()
	return note, nil
}

func (n *Notifications) add(ctx context.Context, draft domain.NotificationDraft) (*domain.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.email == "" {
		return nil, domain.ErrNoActiveSession
	}

	note := domain.Notification{
		ID:      uuid.NewString(),
		Type:    draft.Type,
		Title:   draft.Title,
		Message: draft.Message,
		TimeAgo: "Just now",
	}

	updated := make([]domain.Notification, 0, len(n.items)+1)
	updated = append(updated, note)
	updated = append(updated, n.items...)

	if err := n.savePartition(ctx, updated); err != nil {
		return nil, err
	}
	n.items = updated
	return &note, nil
}

// MarkRead flags one notification as read and persists the feed. Unknown
// or already-read IDs are no-ops.
func (n *Notifications) MarkRead(ctx context.Context, id string) error {
	changed, err := n.mark(ctx, func(item *domain.Notification) bool {
		return item.ID == id
	})
	if err != nil {
		return err
	}
	if changed {
		n.bc.notify()
	}
	return nil
}

// MarkAllRead flags every visible notification as read and persists the
// feed.
func (n *Notifications) MarkAllRead(ctx context.Context) error {
	changed, err := n.mark(ctx, func(*domain.Notification) bool {
		return true
	})
	if err != nil {
		return err
	}
	if changed {
		n.bc.notify()
	}
	return nil
}

func (n *Notifications) mark(ctx context.Context, match func(*domain.Notification) bool) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	updated := make([]domain.Notification, len(n.items))
	copy(updated, n.items)

	changed := false
	for i := range updated {
		if !updated[i].Read && match(&updated[i]) {
			updated[i].Read = true
			changed = true
		}
	}
	if !changed {
		return false, nil
	}

	if n.email != "" {
		if err := n.savePartition(ctx, updated); err != nil {
			return false, err
		}
	}
	n.items = updated
	return true, nil
}

// Clear empties the feed and persists the empty partition.
func (n *Notifications) Clear(ctx context.Context) error {
	changed, err := n.clear(ctx)
	if err != nil {
		return err
	}
	if changed {
		n.bc.notify()
	}
	return nil
}

func (n *Notifications) clear(ctx context.Context) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.items) == 0 {
		return false, nil
	}
	if n.email != "" {
		if err := n.savePartition(ctx, nil); err != nil {
			return false, err
		}
	}
	n.items = nil
	return true, nil
}

func (n *Notifications) loadPartition(ctx context.Context, email string) ([]domain.Notification, error) {
	raw, err := n.backend.Get(ctx, notificationsKeyPrefix+email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load notifications: %w", domain.ErrStorageFailure, err)
	}
	var items []domain.Notification
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: decode notifications: %w", domain.ErrStorageFailure, err)
	}
	return items, nil
}

// savePartition rewrites the whole partition; mutations are never
// incremental.
func (n *Notifications) savePartition(ctx context.Context, items []domain.Notification) error {
	if items == nil {
		items = []domain.Notification{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encode notifications: %w", domain.ErrStorageFailure, err)
	}
	if err := n.backend.Set(ctx, notificationsKeyPrefix+n.email, string(raw)); err != nil {
		return fmt.Errorf("%w: save notifications: %w", domain.ErrStorageFailure, err)
	}
	return nil
}
