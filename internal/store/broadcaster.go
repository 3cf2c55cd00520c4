package store

import "sync"

// broadcaster fans out change notifications to subscribers. Callbacks run
// after the owning store has released its state lock, so a subscriber may
// read the store's accessors directly. Copy-before-notify keeps the
// subscriber lock out of callback execution.
type broadcaster struct {
	mu   sync.Mutex
	next uint64
	subs map[uint64]func()
}

// subscribe registers fn and returns a cancel function. Cancelling twice
// is harmless.
func (b *broadcaster) subscribe(fn func()) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[uint64]func())
	}
	b.next++
	id := b.next
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

func (b *broadcaster) notify() {
	b.mu.Lock()
	subs := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
