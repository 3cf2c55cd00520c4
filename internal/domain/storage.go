package domain

import "context"

// Backend is the device-local key-value store the state stores persist to.
// Get returns ErrNotFound for absent keys. Each implementation (SQLite,
// Redis, in-memory) owns its own setup, keeping the whole backend
// swappable. No operation spans more than one key.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
