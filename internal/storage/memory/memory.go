// Package memory provides an in-process persistence backend, used in tests
// and wherever no durable state is wanted.
package memory

import (
	"context"
	"sync"

	"github.com/tonguers/loja/internal/domain"
)

// Store implements domain.Backend with a plain map.
type Store struct {
	mu      sync.RWMutex
	records map[string]string
	failErr error
}

// New creates an empty Store.
func New() *Store {
	return &Store{records: make(map[string]string)}
}

// FailWith makes every subsequent operation return err until called again
// with nil. Tests use it to exercise storage-failure paths.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return "", s.failErr
	}
	value, ok := s.records[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.records[key] = value
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	delete(s.records, key)
	return nil
}
